package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/KromaEnergia/painel-usinas/internal/models"
	"github.com/KromaEnergia/painel-usinas/internal/remoto"
)

// Autenticador confere as credenciais na API remota (*remoto.Client).
type Autenticador interface {
	Login(ctx context.Context, email, senha string) (models.Usuario, error)
}

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int64      `json:"expires_in"`
	Capacidade  Capacidade `json:"capacidade"`
}

// Handler de /auth.
type Handler struct {
	Autenticador Autenticador
	Emissor      *Emissor
	Logger       *slog.Logger
	validate     *validator.Validate
}

func NewHandler(a Autenticador, e *Emissor, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{Autenticador: a, Emissor: e, Logger: logger, validate: validator.New()}
}

// Login trata POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	// 1) corpo
	var req LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "Informe e-mail e senha válidos", http.StatusBadRequest)
		return
	}

	// 2) credenciais na API
	u, err := h.Autenticador.Login(r.Context(), req.Email, req.Senha)
	if err != nil {
		var e *remoto.Erro
		if errors.As(err, &e) && (e.Status == http.StatusUnauthorized || errors.Is(err, remoto.ErrNegocio)) {
			http.Error(w, "Credenciais inválidas", http.StatusUnauthorized)
			return
		}
		h.Logger.Error("auth: login falhou", slog.String("email", req.Email), slog.Any("erro", err))
		http.Error(w, remoto.MensagemUsuario(err), http.StatusBadGateway)
		return
	}
	if u.Inativo() {
		http.Error(w, "Usuário inativo", http.StatusForbidden)
		return
	}

	// 3) capacidade e token
	c := ResolverCapacidade(u)
	tok, err := h.Emissor.GerarToken(c)
	if err != nil {
		h.Logger.Error("auth: gerar token", slog.Any("erro", err))
		http.Error(w, "Erro ao gerar token", http.StatusInternalServerError)
		return
	}
	h.Logger.Info("auth: login", slog.String("usuario_id", c.UsuarioID.String()), slog.String("papel", string(c.Papel)))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(LoginResponse{
		AccessToken: tok,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.Emissor.TTL().Seconds()),
		Capacidade:  c,
	})
}

// Me trata GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	c, ok := CapacidadeDe(r.Context())
	if !ok {
		http.Error(w, "Token ausente", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}
