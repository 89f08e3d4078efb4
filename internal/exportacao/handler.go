package exportacao

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

// Historico é o armazenamento das exportações (Repository em produção).
type Historico interface {
	Salvar(ctx context.Context, reg *Registro) error
	Recentes(ctx context.Context, limite int) ([]Registro, error)
}

// Handler expõe o histórico para o admin.
type Handler struct {
	Repo   Historico
	Logger *slog.Logger
}

func NewHandler(repo Historico, logger *slog.Logger) *Handler {
	return &Handler{Repo: repo, Logger: logger}
}

// List trata GET /exportacoes?limite=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		http.Error(w, "Histórico de exportações desabilitado", http.StatusServiceUnavailable)
		return
	}
	limite, _ := strconv.Atoi(r.URL.Query().Get("limite"))
	regs, err := h.Repo.Recentes(r.Context(), limite)
	if err != nil {
		h.Logger.Error("listar exportações", slog.Any("error", err))
		http.Error(w, "Erro ao buscar exportações", http.StatusInternalServerError)
		return
	}
	if regs == nil {
		regs = []Registro{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(regs)
}
