package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KromaEnergia/painel-usinas/internal/app"
	"github.com/KromaEnergia/painel-usinas/internal/auth"
	"github.com/KromaEnergia/painel-usinas/internal/cache"
	"github.com/KromaEnergia/painel-usinas/internal/cliente"
	"github.com/KromaEnergia/painel-usinas/internal/comissao"
	"github.com/KromaEnergia/painel-usinas/internal/exportacao"
	"github.com/KromaEnergia/painel-usinas/internal/models"
	"github.com/KromaEnergia/painel-usinas/internal/observability"
	"github.com/KromaEnergia/painel-usinas/internal/relatorio"
	"github.com/KromaEnergia/painel-usinas/internal/remoto"
	"github.com/KromaEnergia/painel-usinas/internal/setor"
	"github.com/KromaEnergia/painel-usinas/internal/snapshot"
	"github.com/KromaEnergia/painel-usinas/internal/usina"
	"github.com/KromaEnergia/painel-usinas/internal/usuario"
	"github.com/KromaEnergia/painel-usinas/internal/utils/db"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal("Erro na configuração: ", err)
	}
	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Fuso das datas da API
	if loc, err := cfg.Fuso(); err != nil {
		logger.Warn("fuso inválido, usando horário local", slog.String("fuso", cfg.FusoHorario), slog.Any("error", err))
	} else {
		models.Fuso = loc
	}

	metrics := observability.NewMetrics()

	// API remota e snapshot
	api := remoto.NewClient(remoto.Config{
		BaseURL:        cfg.APIBaseURL,
		Timeout:        cfg.APITimeout,
		MaxTentativas:  cfg.APIMaxTentativas,
		BackoffInicial: cfg.APIBackoffInicial,
	}, logger, remoto.ComObservador(metrics))
	// a carga compartilhada cobre todas as tentativas do cliente mais uma folga para o backoff
	prazoCarga := cfg.APITimeout*time.Duration(max(cfg.APIMaxTentativas, 1)) + 10*time.Second
	store := snapshot.NewStore(api, cfg.SnapshotTTL, logger).
		ComObservador(metrics).
		ComTimeoutCarga(prazoCarga)

	// Cache de comissões (opcional)
	var c *cache.Cache
	if cfg.RedisAddr != "" {
		client, err := cache.Conectar(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Warn("redis indisponível, cache desligado", slog.Any("error", err))
		} else {
			defer client.Close()
			c = cache.New(client, cfg.CacheTTL)
			store.AoInvalidar(c.Incrementar)
		}
	}

	// Histórico de exportações (opcional)
	var historico exportacao.Historico
	database, err := db.ConnectDataBase(cfg.PGDSN)
	switch {
	case errors.Is(err, db.ErrSemDSN):
		logger.Info("PG_DSN vazio, histórico de exportações desligado")
	case err != nil:
		logger.Warn("postgres indisponível, histórico de exportações desligado", slog.Any("error", err))
	default:
		if err := exportacao.Migrate(database); err != nil {
			log.Fatal("Erro no AutoMigrate: ", err)
		}
		historico = exportacao.NewRepository(database)
	}

	emissor, err := auth.NewEmissor(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		log.Fatal(err)
	}

	// Handlers
	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		Emissor:           emissor,
		Metrics:           metrics,
		Saude:             store,
		AuthHandler:       auth.NewHandler(api, emissor, logger),
		ClienteHandler:    cliente.NewHandler(cliente.NewRepository(api, store), store, cfg.PaginaTamanho),
		SetorHandler:      setor.NewHandler(setor.NewRepository(api, store), store),
		UsuarioHandler:    usuario.NewHandler(usuario.NewRepository(api, store), store),
		UsinaHandler:      usina.NewHandler(usina.NewRepository(api, store), store),
		ComissaoHandler:   comissao.NewHandler(comissao.NewServico(api, c, logger), store, historico, logger),
		RelatorioHandler:  relatorio.NewHandler(store),
		ExportacaoHandler: exportacao.NewHandler(historico, logger),
	})

	// Primeira carga em segundo plano; falha aqui só adia para a primeira requisição
	go func() {
		if _, err := store.Recarregar(ctx); err != nil {
			logger.Warn("carga inicial do snapshot falhou", slog.Any("error", err))
		}
	}()

	srv := &http.Server{
		Addr:              cfg.AppAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	go func() {
		logger.Info("servidor rodando", slog.String("addr", cfg.AppAddr), slog.String("api", cfg.APIBaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Erro no servidor: ", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("encerramento forçado", slog.Any("error", err))
	}
	logger.Info("servidor encerrado")
}
