package relatorio

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/KromaEnergia/painel-usinas/internal/auth"
	"github.com/KromaEnergia/painel-usinas/internal/filtro"
	"github.com/KromaEnergia/painel-usinas/internal/models"
	"github.com/KromaEnergia/painel-usinas/internal/remoto"
	"github.com/KromaEnergia/painel-usinas/internal/snapshot"
)

type Snapshots interface {
	Atual(ctx context.Context) (snapshot.Estado, error)
}

type Handler struct {
	Snapshots Snapshots
	Agora     func() time.Time
}

func NewHandler(snaps Snapshots) *Handler {
	return &Handler{Snapshots: snaps, Agora: func() time.Time { return time.Now().In(models.Fuso) }}
}

// Gerar trata GET /relatorios
func (h *Handler) Gerar(w http.ResponseWriter, r *http.Request) {
	c, ok := auth.CapacidadeDe(r.Context())
	if !ok {
		http.Error(w, "Token ausente", http.StatusUnauthorized)
		return
	}
	estado := filtro.DoPedido(r.URL.Query(), h.Agora(), c)
	if estado.Status != filtro.Todos && !models.StatusAprovacao(estado.Status).Valido() {
		http.Error(w, "Status inválido", http.StatusBadRequest)
		return
	}

	est, err := h.Snapshots.Atual(r.Context())
	if err != nil {
		http.Error(w, remoto.MensagemUsuario(err), http.StatusBadGateway)
		return
	}
	snap := est.Snapshot
	clientes := filtro.FiltrarClientes(snap.Clientes, estado, c)

	rel := Montar(clientes, estado, filtro.UsuariosVisiveis(snap.Usuarios, c), snap.Setores)
	rel.Aviso = est.Aviso

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rel)
}
