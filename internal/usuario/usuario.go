// Package usuario expõe o cadastro de usuários e as opções do filtro de consultor.
package usuario

import (
	"context"
	"net/http"
	"strings"

	"github.com/KromaEnergia/painel-usinas/internal/auth"
	"github.com/KromaEnergia/painel-usinas/internal/cadastro"
	"github.com/KromaEnergia/painel-usinas/internal/filtro"
	"github.com/KromaEnergia/painel-usinas/internal/models"
	"github.com/KromaEnergia/painel-usinas/internal/remoto"
	"github.com/KromaEnergia/painel-usinas/internal/snapshot"
)

// UsuarioDTO é o corpo de POST/PUT /usuarios. A senha só é repassada à API, nunca lida de volta.
type UsuarioDTO struct {
	Nome    string       `json:"name" validate:"required,max=255"`
	Email   string       `json:"email" validate:"required,email"`
	Senha   string       `json:"password,omitempty" validate:"omitempty,min=6"`
	Papel   models.Papel `json:"role" validate:"required,oneof=admin supervisor user"`
	SetorID models.ID    `json:"sector_id" validate:"required_unless=Papel admin"`
	Ativo   *bool        `json:"active,omitempty"`
}

func preparar(dto *UsuarioDTO, criando bool) error {
	dto.Nome = strings.TrimSpace(dto.Nome)
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	if criando {
		if dto.Senha == "" {
			return &cadastro.ErrValidacao{Campos: map[string]string{"password": "obrigatório"}}
		}
		if dto.Ativo == nil {
			ativo := true
			dto.Ativo = &ativo
		}
	}
	return nil
}

func NewRepository(api cadastro.API, inv cadastro.Invalidador) *cadastro.Repository {
	return cadastro.NewRepository(api, remoto.ColecaoUsuarios, inv)
}

type Snapshots interface {
	Atual(ctx context.Context) (snapshot.Estado, error)
}

// Handler de /usuarios e /opcoes/consultores.
type Handler struct {
	cadastro.Mutacoes[UsuarioDTO]
	Snapshots Snapshots
}

func NewHandler(repo *cadastro.Repository, snaps Snapshots) *Handler {
	return &Handler{
		Mutacoes:  cadastro.Mutacoes[UsuarioDTO]{Repo: repo, Nome: "Usuário", Preparar: preparar},
		Snapshots: snaps,
	}
}

// usuarios devolve a lista do snapshot e a capacidade da sessão.
func (h *Handler) usuarios(w http.ResponseWriter, r *http.Request) ([]models.Usuario, auth.Capacidade, string, bool) {
	c, ok := auth.CapacidadeDe(r.Context())
	if !ok {
		http.Error(w, "Token ausente", http.StatusUnauthorized)
		return nil, c, "", false
	}
	est, err := h.Snapshots.Atual(r.Context())
	if err != nil {
		http.Error(w, remoto.MensagemUsuario(err), http.StatusBadGateway)
		return nil, c, "", false
	}
	return est.Snapshot.Usuarios, c, est.Aviso, true
}

// List trata GET /usuarios (supervisor vê o próprio setor, consultor só a si mesmo)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	usuarios, c, aviso, ok := h.usuarios(w, r)
	if !ok {
		return
	}
	cadastro.JSON(w, http.StatusOK, cadastro.Lista[models.Usuario]{Itens: filtro.UsuariosVisiveis(usuarios, c), Aviso: aviso})
}

// Opcao é uma entrada do seletor de consultor.
type Opcao struct {
	ID   models.ID `json:"id"`
	Nome string    `json:"nome"`
}

// Consultores trata GET /opcoes/consultores?setor=
func (h *Handler) Consultores(w http.ResponseWriter, r *http.Request) {
	usuarios, c, aviso, ok := h.usuarios(w, r)
	if !ok {
		return
	}
	setor := r.URL.Query().Get("setor")
	if setor == "" {
		setor = filtro.Todos
	}
	opcoes := filtro.OpcoesConsultores(usuarios, setor, c)
	out := make([]Opcao, 0, len(opcoes))
	for _, u := range opcoes {
		out = append(out, Opcao{ID: u.ID, Nome: u.Nome})
	}
	cadastro.JSON(w, http.StatusOK, cadastro.Lista[Opcao]{Itens: out, Aviso: aviso})
}
