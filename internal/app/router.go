package app

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"github.com/gorilla/mux"

	"github.com/KromaEnergia/painel-usinas/internal/auth"
	"github.com/KromaEnergia/painel-usinas/internal/cliente"
	"github.com/KromaEnergia/painel-usinas/internal/comissao"
	"github.com/KromaEnergia/painel-usinas/internal/exportacao"
	"github.com/KromaEnergia/painel-usinas/internal/observability"
	"github.com/KromaEnergia/painel-usinas/internal/relatorio"
	"github.com/KromaEnergia/painel-usinas/internal/setor"
	"github.com/KromaEnergia/painel-usinas/internal/usina"
	"github.com/KromaEnergia/painel-usinas/internal/usuario"
)

// Saude informa a última falha de recarga do snapshot (*snapshot.Store).
type Saude interface {
	UltimoErro() (error, time.Time)
}

// RouterParams agrupa as dependências do roteador.
type RouterParams struct {
	Logger  *slog.Logger
	Config  *Config
	Emissor *auth.Emissor
	Metrics *observability.Metrics
	Saude   Saude

	AuthHandler       *auth.Handler
	ClienteHandler    *cliente.Handler
	SetorHandler      *setor.Handler
	UsuarioHandler    *usuario.Handler
	UsinaHandler      *usina.Handler
	ComissaoHandler   *comissao.Handler
	RelatorioHandler  *relatorio.Handler
	ExportacaoHandler *exportacao.Handler
}

// NewRouter monta as rotas do painel.
func NewRouter(p RouterParams) http.Handler {
	r := mux.NewRouter()
	r.Use(p.Metrics.Middleware)

	autenticado := auth.MiddlewareAutenticacao(p.Emissor)
	protegido := func(f http.HandlerFunc) http.Handler { return autenticado(f) }
	admin := func(f http.HandlerFunc) http.Handler { return autenticado(auth.RequireAdmin(f)) }

	limite := 10
	if p.Config != nil && p.Config.ExportLimiteMinuto > 0 {
		limite = p.Config.ExportLimiteMinuto
	}
	// limite por usuário autenticado
	limitarExportacao := httprate.Limit(limite, time.Minute, httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
		c, _ := auth.CapacidadeDe(r.Context())
		return c.UsuarioID.String(), nil
	}))

	// Públicas
	r.HandleFunc("/healthz", healthz(p.Saude)).Methods("GET")
	r.Handle("/metrics", p.Metrics.Handler()).Methods("GET")
	r.HandleFunc("/auth/login", p.AuthHandler.Login).Methods("POST")

	// Sessão
	r.Handle("/auth/me", protegido(p.AuthHandler.Me)).Methods("GET")

	// Rotas de clientes
	r.Handle("/clientes", protegido(p.ClienteHandler.List)).Methods("GET")
	r.Handle("/clientes", protegido(p.ClienteHandler.Create)).Methods("POST")
	r.Handle("/clientes/{id}", protegido(p.ClienteHandler.Get)).Methods("GET")
	r.Handle("/clientes/{id}", protegido(p.ClienteHandler.Update)).Methods("PUT")
	r.Handle("/clientes/{id}", protegido(p.ClienteHandler.Delete)).Methods("DELETE")

	// Rotas de setores
	r.Handle("/setores", protegido(p.SetorHandler.List)).Methods("GET")
	r.Handle("/setores", admin(p.SetorHandler.Create)).Methods("POST")
	r.Handle("/setores/{id}", admin(p.SetorHandler.Update)).Methods("PUT")
	r.Handle("/setores/{id}", admin(p.SetorHandler.Delete)).Methods("DELETE")

	// Rotas de usuários
	r.Handle("/usuarios", protegido(p.UsuarioHandler.List)).Methods("GET")
	r.Handle("/usuarios", admin(p.UsuarioHandler.Create)).Methods("POST")
	r.Handle("/usuarios/{id}", admin(p.UsuarioHandler.Update)).Methods("PUT")
	r.Handle("/usuarios/{id}", admin(p.UsuarioHandler.Delete)).Methods("DELETE")
	r.Handle("/opcoes/consultores", protegido(p.UsuarioHandler.Consultores)).Methods("GET")

	// Rotas de usinas
	r.Handle("/usinas", protegido(p.UsinaHandler.List)).Methods("GET")
	r.Handle("/usinas", admin(p.UsinaHandler.Create)).Methods("POST")
	r.Handle("/usinas/{id}", admin(p.UsinaHandler.Update)).Methods("PUT")
	r.Handle("/usinas/{id}", admin(p.UsinaHandler.Delete)).Methods("DELETE")

	// Comissões, exportação e relatórios
	r.Handle("/comissoes", protegido(p.ComissaoHandler.Painel)).Methods("GET")
	r.Handle("/comissoes/exportar", autenticado(limitarExportacao(http.HandlerFunc(p.ComissaoHandler.Exportar)))).Methods("GET")
	r.Handle("/exportacoes", admin(p.ExportacaoHandler.List)).Methods("GET")
	r.Handle("/relatorios", protegido(p.RelatorioHandler.Gerar)).Methods("GET")

	return Encadear(r, MiddlewareStack(MiddlewareConfig{Logger: p.Logger, Config: p.Config}))
}

func healthz(s Saude) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{"status": "ok"}
		if s != nil {
			if err, em := s.UltimoErro(); err != nil {
				resp["status"] = "degradado"
				resp["ultimoErro"] = err.Error()
				resp["ultimoErroEm"] = em
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
