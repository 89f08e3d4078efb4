package cliente

import (
	"strings"

	"github.com/KromaEnergia/painel-usinas/internal/auth"
	"github.com/KromaEnergia/painel-usinas/internal/models"
	"github.com/KromaEnergia/painel-usinas/internal/utils"
)

// ClienteDTO é o corpo de POST/PUT /clientes, com os nomes de campo da API remota.
type ClienteDTO struct {
	Nome        string    `json:"name" validate:"required,max=255"`
	CPF         string    `json:"cpf" validate:"required,cpf"`
	Email       string    `json:"email" validate:"omitempty,email"`
	Telefone    string    `json:"phone" validate:"max=30"`
	SetorID     models.ID `json:"sector_id"`
	UsuarioID   models.ID `json:"user_id"`
	UsinaID     models.ID `json:"usina_id"`
	Status      string    `json:"status" validate:"omitempty,oneof=pending waiting_formalization formalized"`
	Observacoes string    `json:"observations"`

	Documento1 string `json:"document_1,omitempty" validate:"omitempty,documento"`
	Documento2 string `json:"document_2,omitempty" validate:"omitempty,documento"`
	Documento3 string `json:"document_3,omitempty" validate:"omitempty,documento"`
}

// normalizar limpa espaços, guarda só os dígitos do CPF e aplica o status padrão.
func (d *ClienteDTO) normalizar() {
	d.Nome = strings.TrimSpace(d.Nome)
	d.Email = strings.TrimSpace(d.Email)
	d.CPF = utils.SomenteDigitos(d.CPF)
	if d.Status == "" {
		d.Status = string(models.StatusPendente)
	}
}

// aplicarCapacidade fixa setor e consultor de quem não pode escolhê-los.
func (d *ClienteDTO) aplicarCapacidade(c auth.Capacidade) {
	if c.SetorFixo {
		d.SetorID = c.SetorID
	}
	if c.ConsultorFixo {
		d.UsuarioID = c.UsuarioID
	}
}

// alvo é o cliente como ficaria após a escrita, usado para checar a visibilidade.
func (d ClienteDTO) alvo() models.Cliente {
	return models.Cliente{SetorID: d.SetorID, UsuarioID: d.UsuarioID}
}
