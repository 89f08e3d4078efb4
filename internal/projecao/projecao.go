// Package projecao converte entidades em modelos de tela: badges, cartões e valores formatados.
package projecao

import (
	"github.com/KromaEnergia/painel-usinas/internal/formato"
	"github.com/KromaEnergia/painel-usinas/internal/models"
	"github.com/KromaEnergia/painel-usinas/internal/utils"
)

// Badge é o selo colorido de status.
type Badge struct {
	Status string `json:"status"`
	Rotulo string `json:"rotulo"`
	Classe string `json:"classe"`
}

func BadgeFormalizacao(status string) Badge {
	s := models.StatusFormalizacao(status)
	switch s {
	case models.StatusPendente:
		return Badge{status, s.Rotulo(), "badge-warning"}
	case models.StatusAguardandoFormalizacao:
		return Badge{status, s.Rotulo(), "badge-info"}
	case models.StatusFormalizado:
		return Badge{status, s.Rotulo(), "badge-success"}
	}
	return badgeDesconhecido(status)
}

func BadgeAprovacao(status string) Badge {
	s := models.StatusAprovacao(status)
	switch s {
	case models.AprovacaoPendente:
		return Badge{status, s.Rotulo(), "badge-warning"}
	case models.Aprovado:
		return Badge{status, s.Rotulo(), "badge-success"}
	case models.Reprovado:
		return Badge{status, s.Rotulo(), "badge-danger"}
	}
	return badgeDesconhecido(status)
}

func badgeDesconhecido(status string) Badge {
	rotulo := status
	if rotulo == "" {
		rotulo = "Sem status"
	}
	return Badge{status, rotulo, "badge-secondary"}
}

// Valor acompanha o número com o texto pronto para exibição.
type Valor struct {
	Valor float64 `json:"valor"`
	Texto string  `json:"texto"`
}

func Moeda(v float64) Valor { return Valor{Valor: v, Texto: formato.MoedaReais(v)} }

func Percentual(v float64) Valor { return Valor{Valor: v, Texto: formato.Percentual(v)} }

// Nomes resolve ids para nomes (implementado pelo snapshot).
type Nomes interface {
	NomeSetor(id models.ID) string
	NomeUsuario(id models.ID) string
	NomeUsina(id models.ID) string
}

// CartaoCliente é o card da listagem de clientes.
type CartaoCliente struct {
	ID          models.ID `json:"id"`
	Nome        string    `json:"nome"`
	CPF         string    `json:"cpf"`
	Email       string    `json:"email"`
	Telefone    string    `json:"telefone"`
	SetorID     models.ID `json:"setorId"`
	Setor       string    `json:"setor"`
	UsuarioID   models.ID `json:"usuarioId"`
	Consultor   string    `json:"consultor"`
	UsinaID     models.ID `json:"usinaId"`
	Usina       string    `json:"usina"`
	Status      Badge     `json:"status"`
	Observacoes string    `json:"observacoes"`
	CriadoEm    string    `json:"criadoEm"`
	Documentos  int       `json:"documentos"`
}

const semVinculo = "Não atribuído"

func nomeOu(id models.ID, nome string) string {
	if !id.Atribuido() || nome == "" {
		return semVinculo
	}
	return nome
}

func Cartao(c models.Cliente, n Nomes) CartaoCliente {
	docs := 0
	for _, d := range []string{c.Documento1, c.Documento2, c.Documento3} {
		if d != "" {
			docs++
		}
	}
	return CartaoCliente{
		ID:          c.ID,
		Nome:        c.Nome,
		CPF:         utils.FormatarCPF(c.CPF),
		Email:       c.Email,
		Telefone:    c.Telefone,
		SetorID:     c.SetorID,
		Setor:       nomeOu(c.SetorID, n.NomeSetor(c.SetorID)),
		UsuarioID:   c.UsuarioID,
		Consultor:   nomeOu(c.UsuarioID, n.NomeUsuario(c.UsuarioID)),
		UsinaID:     c.UsinaID,
		Usina:       nomeOu(c.UsinaID, n.NomeUsina(c.UsinaID)),
		Status:      BadgeFormalizacao(c.Status),
		Observacoes: c.Observacoes,
		CriadoEm:    formato.Data(c.CriadoEm.Time),
		Documentos:  docs,
	}
}

func Cartoes(cs []models.Cliente, n Nomes) []CartaoCliente {
	out := make([]CartaoCliente, 0, len(cs))
	for _, c := range cs {
		out = append(out, Cartao(c, n))
	}
	return out
}
