package cliente

import (
	"github.com/KromaEnergia/painel-usinas/internal/cadastro"
	"github.com/KromaEnergia/painel-usinas/internal/remoto"
)

// NewRepository aponta o repositório comum para a coleção de clientes.
func NewRepository(api cadastro.API, inv cadastro.Invalidador) *cadastro.Repository {
	return cadastro.NewRepository(api, remoto.ColecaoClientes, inv)
}
