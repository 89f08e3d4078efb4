package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KromaEnergia/painel-usinas/internal/auth"
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
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.kroma.com/v1/ ")
	t.Setenv("JWT_SECRET", "segredo")
	t.Setenv("CORS_ORIGENS", "http://localhost:3000,https://painel.kroma.com")
	t.Setenv("PAGINA_TAMANHO", "0")

	cfg, err := LoadConfig("arquivo-que-nao-existe.env")
	require.NoError(t, err)
	assert.Equal(t, "https://api.kroma.com/v1", cfg.APIBaseURL)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, 30*time.Second, cfg.SnapshotTTL)
	assert.Equal(t, 3, cfg.APIMaxTentativas)
	assert.Equal(t, 200*time.Millisecond, cfg.APIBackoffInicial)
	assert.Equal(t, []string{"http://localhost:3000", "https://painel.kroma.com"}, cfg.CORSOrigens)
	assert.Equal(t, 10, cfg.PaginaTamanho)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.IsProduction())

	loc, err := cfg.Fuso()
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", loc.String())
}

func TestLoadConfigExigeSegredo(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.kroma.com")
	t.Setenv("JWT_SECRET", "")
	_, err := LoadConfig("arquivo-que-nao-existe.env")
	assert.Error(t, err)
}

type snapsFake struct{ est snapshot.Estado }

func (s snapsFake) Atual(context.Context) (snapshot.Estado, error) { return s.est, nil }

type remotoFake struct{}

func (remotoFake) ListarComissoes(context.Context, time.Time, time.Time) ([]models.LinhaComissao, error) {
	return nil, nil
}

func (remotoFake) Login(_ context.Context, email, _ string) (models.Usuario, error) {
	if email == "admin@kroma.com" {
		return models.Usuario{ID: 1, Nome: "Admin", Papel: models.PapelAdmin}, nil
	}
	return models.Usuario{}, &remoto.Erro{Operacao: "login", Causa: remoto.ErrNegocio, Mensagem: "Senha incorreta"}
}

func (remotoFake) Criar(context.Context, string, any) (remoto.Resposta, error) {
	return remoto.Resposta{ID: 1}, nil
}

func (remotoFake) Atualizar(context.Context, string, string, any) (remoto.Resposta, error) {
	return remoto.Resposta{}, nil
}

func (remotoFake) Deletar(context.Context, string, string) (remoto.Resposta, error) {
	return remoto.Resposta{}, nil
}

type saudeFake struct{ err error }

func (s saudeFake) UltimoErro() (error, time.Time) { return s.err, time.Time{} }

type ambiente struct {
	handler http.Handler
	emissor *auth.Emissor
}

func novoAmbiente(t *testing.T, saude Saude) ambiente {
	t.Helper()
	cfg := &Config{AppEnv: "test", ExportLimiteMinuto: 1, PaginaTamanho: 10, CORSOrigens: []string{"https://painel.kroma.com"}}
	logger := NewLogger(cfg)
	emissor, err := auth.NewEmissor("segredo", time.Hour)
	require.NoError(t, err)

	usuarios := []models.Usuario{
		{ID: 1, Nome: "Admin", Papel: models.PapelAdmin},
		{ID: 2, Nome: "Ana", Papel: models.PapelConsultor, SetorID: 10},
	}
	setores := []models.Setor{{ID: 10, Nome: "Norte"}}
	snaps := snapsFake{est: snapshot.Estado{Snapshot: snapshot.New(1, time.Now(), nil, setores, usuarios, nil)}}
	api := remotoFake{}

	h := NewRouter(RouterParams{
		Logger:            logger,
		Config:            cfg,
		Emissor:           emissor,
		Metrics:           observability.NewMetrics(),
		Saude:             saude,
		AuthHandler:       auth.NewHandler(api, emissor, logger),
		ClienteHandler:    cliente.NewHandler(cliente.NewRepository(api, nil), snaps, cfg.PaginaTamanho),
		SetorHandler:      setor.NewHandler(setor.NewRepository(api, nil), snaps),
		UsuarioHandler:    usuario.NewHandler(usuario.NewRepository(api, nil), snaps),
		UsinaHandler:      usina.NewHandler(usina.NewRepository(api, nil), snaps),
		ComissaoHandler:   comissao.NewHandler(comissao.NewServico(api, nil, logger), snaps, nil, logger),
		RelatorioHandler:  relatorio.NewHandler(snaps),
		ExportacaoHandler: exportacao.NewHandler(nil, logger),
	})
	return ambiente{handler: h, emissor: emissor}
}

func (a ambiente) fazer(t *testing.T, metodo, alvo, corpo string, c *auth.Capacidade) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(metodo, alvo, strings.NewReader(corpo))
	if c != nil {
		tok, err := a.emissor.GerarToken(*c)
		require.NoError(t, err)
		r.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, r)
	return rec
}

func TestRotas(t *testing.T) {
	a := novoAmbiente(t, nil)
	admin := auth.ResolverCapacidade(models.Usuario{ID: 1, Nome: "Admin", Papel: models.PapelAdmin})
	ana := auth.ResolverCapacidade(models.Usuario{ID: 2, Nome: "Ana", Papel: models.PapelConsultor, SetorID: 10})

	casos := []struct {
		nome   string
		metodo string
		alvo   string
		corpo  string
		cap    *auth.Capacidade
		status int
	}{
		{"healthz público", http.MethodGet, "/healthz", "", nil, http.StatusOK},
		{"metrics público", http.MethodGet, "/metrics", "", nil, http.StatusOK},
		{"clientes exige token", http.MethodGet, "/clientes", "", nil, http.StatusUnauthorized},
		{"clientes consultor", http.MethodGet, "/clientes", "", &ana, http.StatusOK},
		{"setores consultor", http.MethodGet, "/setores", "", &ana, http.StatusOK},
		{"criar setor consultor", http.MethodPost, "/setores", `{"name":"Sul"}`, &ana, http.StatusForbidden},
		{"criar setor admin", http.MethodPost, "/setores", `{"name":"Sul"}`, &admin, http.StatusCreated},
		{"remover usina admin", http.MethodDelete, "/usinas/3", "", &admin, http.StatusOK},
		{"opções", http.MethodGet, "/opcoes/consultores?setor=10", "", &admin, http.StatusOK},
		{"histórico só admin", http.MethodGet, "/exportacoes", "", &ana, http.StatusForbidden},
		{"histórico desabilitado", http.MethodGet, "/exportacoes", "", &admin, http.StatusServiceUnavailable},
		{"relatórios", http.MethodGet, "/relatorios", "", &ana, http.StatusOK},
		{"comissões", http.MethodGet, "/comissoes", "", &ana, http.StatusOK},
		{"me", http.MethodGet, "/auth/me", "", &ana, http.StatusOK},
		{"rota inexistente", http.MethodGet, "/nada", "", &admin, http.StatusNotFound},
	}
	for _, tc := range casos {
		t.Run(tc.nome, func(t *testing.T) {
			rec := a.fazer(t, tc.metodo, tc.alvo, tc.corpo, tc.cap)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}
}

func TestLoginPeloRoteador(t *testing.T) {
	a := novoAmbiente(t, nil)

	rec := a.fazer(t, http.MethodPost, "/auth/login", `{"email":"admin@kroma.com","password":"x"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp auth.LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Capacidade.GerenciaCadastros)

	r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+resp.AccessToken)
	me := httptest.NewRecorder()
	a.handler.ServeHTTP(me, r)
	assert.Equal(t, http.StatusOK, me.Code)

	rec = a.fazer(t, http.MethodPost, "/auth/login", `{"email":"ana@kroma.com","password":"x"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCabecalhos(t *testing.T) {
	a := novoAmbiente(t, nil)
	rec := a.fazer(t, http.MethodGet, "/healthz", "", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))

	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.Header.Set("X-Request-ID", "abc-123")
	r.Header.Set("Origin", "https://painel.kroma.com")
	rec = httptest.NewRecorder()
	a.handler.ServeHTTP(rec, r)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "https://painel.kroma.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthzDegradado(t *testing.T) {
	a := novoAmbiente(t, saudeFake{err: errors.New("API fora")})
	rec := a.fazer(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"degradado"`)
	assert.Contains(t, rec.Body.String(), "API fora")
}

func TestExportacaoLimitada(t *testing.T) {
	a := novoAmbiente(t, nil)
	ana := auth.ResolverCapacidade(models.Usuario{ID: 2, Nome: "Ana", Papel: models.PapelConsultor, SetorID: 10})

	rec := a.fazer(t, http.MethodGet, "/comissoes/exportar", "", &ana)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nenhum dado para exportar")

	rec = a.fazer(t, http.MethodGet, "/comissoes/exportar", "", &ana)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
