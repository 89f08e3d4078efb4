// Package setor expõe o cadastro de setores.
package setor

import (
	"context"
	"net/http"
	"strings"

	"github.com/KromaEnergia/painel-usinas/internal/cadastro"
	"github.com/KromaEnergia/painel-usinas/internal/models"
	"github.com/KromaEnergia/painel-usinas/internal/remoto"
	"github.com/KromaEnergia/painel-usinas/internal/snapshot"
)

// SetorDTO é o corpo aceito em POST/PUT /setores.
type SetorDTO struct {
	Nome      string `json:"name" validate:"required,max=255"`
	Descricao string `json:"description" validate:"max=1000"`
}

func NewRepository(api cadastro.API, inv cadastro.Invalidador) *cadastro.Repository {
	return cadastro.NewRepository(api, remoto.ColecaoSetores, inv)
}

type Snapshots interface {
	Atual(ctx context.Context) (snapshot.Estado, error)
}

// Handler de /setores. Mutações são restritas ao admin no roteador.
type Handler struct {
	cadastro.Mutacoes[SetorDTO]
	Snapshots Snapshots
}

func NewHandler(repo *cadastro.Repository, snaps Snapshots) *Handler {
	return &Handler{
		Mutacoes: cadastro.Mutacoes[SetorDTO]{
			Repo: repo,
			Nome: "Setor",
			Preparar: func(dto *SetorDTO, _ bool) error {
				dto.Nome = strings.TrimSpace(dto.Nome)
				dto.Descricao = strings.TrimSpace(dto.Descricao)
				if dto.Nome == "" {
					return &cadastro.ErrValidacao{Campos: map[string]string{"name": "obrigatório"}}
				}
				return nil
			},
		},
		Snapshots: snaps,
	}
}

// List trata GET /setores
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	est, err := h.Snapshots.Atual(r.Context())
	if err != nil {
		http.Error(w, remoto.MensagemUsuario(err), http.StatusBadGateway)
		return
	}
	cadastro.JSON(w, http.StatusOK, cadastro.Lista[models.Setor]{Itens: est.Snapshot.Setores, Aviso: est.Aviso})
}
