package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const ctxCapacidade ctxKey = "capacidade"

// ComCapacidade injeta a Capacidade no contexto (usado pelo middleware e pelos testes).
func ComCapacidade(ctx context.Context, c Capacidade) context.Context {
	return context.WithValue(ctx, ctxCapacidade, c)
}

// CapacidadeDe devolve a Capacidade da sessão corrente.
func CapacidadeDe(ctx context.Context) (Capacidade, bool) {
	c, ok := ctx.Value(ctxCapacidade).(Capacidade)
	return c, ok
}

// MiddlewareAutenticacao exige Bearer token válido.
func MiddlewareAutenticacao(e *Emissor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			h := r.Header.Get("Authorization")
			if h == "" || !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "Token ausente", http.StatusUnauthorized)
				return
			}
			claims, err := e.ValidarToken(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				http.Error(w, "Token inválido", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(ComCapacidade(r.Context(), claims.Capacidade)))
		})
	}
}

// RequireAdmin bloqueia quem não gerencia cadastros.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := CapacidadeDe(r.Context())
		if !ok || !c.GerenciaCadastros {
			http.Error(w, "Acesso negado (somente admin)", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
