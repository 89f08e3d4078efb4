// Package usina expõe o cadastro de usinas e o valor de comissão pago por contrato.
package usina

import (
	"context"
	"net/http"
	"strings"

	"github.com/KromaEnergia/painel-usinas/internal/cadastro"
	"github.com/KromaEnergia/painel-usinas/internal/models"
	"github.com/KromaEnergia/painel-usinas/internal/projecao"
	"github.com/KromaEnergia/painel-usinas/internal/remoto"
	"github.com/KromaEnergia/painel-usinas/internal/snapshot"
)

type UsinaDTO struct {
	Nome      string  `json:"name" validate:"required,max=255"`
	Descricao string  `json:"description" validate:"max=1000"`
	Comissao  float64 `json:"commission_value" validate:"gte=0"`
}

func NewRepository(api cadastro.API, inv cadastro.Invalidador) *cadastro.Repository {
	return cadastro.NewRepository(api, remoto.ColecaoUsinas, inv)
}

type Snapshots interface {
	Atual(ctx context.Context) (snapshot.Estado, error)
}

// ItemUsina é a usina com a comissão já formatada.
type ItemUsina struct {
	models.Usina
	ComissaoFormatada projecao.Valor `json:"comissao"`
}

type Handler struct {
	cadastro.Mutacoes[UsinaDTO]
	Snapshots Snapshots
}

func NewHandler(repo *cadastro.Repository, snaps Snapshots) *Handler {
	return &Handler{
		Mutacoes: cadastro.Mutacoes[UsinaDTO]{
			Repo:     repo,
			Nome:     "Usina",
			Feminino: true,
			Preparar: func(dto *UsinaDTO, _ bool) error {
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

// List trata GET /usinas
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	est, err := h.Snapshots.Atual(r.Context())
	if err != nil {
		http.Error(w, remoto.MensagemUsuario(err), http.StatusBadGateway)
		return
	}
	itens := make([]ItemUsina, 0, len(est.Snapshot.Usinas))
	for _, u := range est.Snapshot.Usinas {
		itens = append(itens, ItemUsina{Usina: u, ComissaoFormatada: projecao.Moeda(float64(u.Comissao))})
	}
	cadastro.JSON(w, http.StatusOK, cadastro.Lista[ItemUsina]{Itens: itens, Aviso: est.Aviso})
}
