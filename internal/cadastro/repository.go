// Package cadastro reúne o que os cadastros (clientes, setores, usuários, usinas) têm em comum:
// mutações repassadas à API remota seguidas de invalidação do snapshot, validação e respostas HTTP.
package cadastro

import (
	"context"

	"github.com/KromaEnergia/painel-usinas/internal/models"
	"github.com/KromaEnergia/painel-usinas/internal/remoto"
)

// API são as mutações da API remota (*remoto.Client).
type API interface {
	Criar(ctx context.Context, colecao string, dados any) (remoto.Resposta, error)
	Atualizar(ctx context.Context, colecao, id string, dados any) (remoto.Resposta, error)
	Deletar(ctx context.Context, colecao, id string) (remoto.Resposta, error)
}

// Invalidador é avisado depois de cada escrita bem-sucedida (*snapshot.Store).
type Invalidador interface {
	Invalidar(ctx context.Context)
}

// Repository de uma coleção remota.
type Repository struct {
	API         API
	Colecao     string
	Invalidador Invalidador
}

func NewRepository(api API, colecao string, inv Invalidador) *Repository {
	return &Repository{API: api, Colecao: colecao, Invalidador: inv}
}

func (r *Repository) invalidar(ctx context.Context, err error) {
	if err == nil && r.Invalidador != nil {
		r.Invalidador.Invalidar(ctx)
	}
}

func (r *Repository) Criar(ctx context.Context, dados any) (remoto.Resposta, error) {
	resp, err := r.API.Criar(ctx, r.Colecao, dados)
	r.invalidar(ctx, err)
	return resp, err
}

func (r *Repository) Atualizar(ctx context.Context, id models.ID, dados any) (remoto.Resposta, error) {
	resp, err := r.API.Atualizar(ctx, r.Colecao, id.String(), dados)
	r.invalidar(ctx, err)
	return resp, err
}

func (r *Repository) Deletar(ctx context.Context, id models.ID) (remoto.Resposta, error) {
	resp, err := r.API.Deletar(ctx, r.Colecao, id.String())
	r.invalidar(ctx, err)
	return resp, err
}
