package models

// StatusFormalizacao é o ciclo de um cliente na tela de clientes.
type StatusFormalizacao string

const (
	StatusPendente               StatusFormalizacao = "pending"
	StatusAguardandoFormalizacao StatusFormalizacao = "waiting_formalization"
	StatusFormalizado            StatusFormalizacao = "formalized"
)

// StatusesFormalizacao na ordem de exibição.
var StatusesFormalizacao = []StatusFormalizacao{StatusPendente, StatusAguardandoFormalizacao, StatusFormalizado}

func (s StatusFormalizacao) Valido() bool {
	switch s {
	case StatusPendente, StatusAguardandoFormalizacao, StatusFormalizado:
		return true
	}
	return false
}

func (s StatusFormalizacao) Rotulo() string {
	switch s {
	case StatusPendente:
		return "Pendente"
	case StatusAguardandoFormalizacao:
		return "Aguardando formalização"
	case StatusFormalizado:
		return "Formalizado"
	}
	return "Desconhecido"
}

// StatusAprovacao é usado pelos relatórios gerais.
type StatusAprovacao string

const (
	AprovacaoPendente StatusAprovacao = "pending"
	Aprovado          StatusAprovacao = "approved"
	Reprovado         StatusAprovacao = "rejected"
)

// StatusesAprovacao na ordem de exibição.
var StatusesAprovacao = []StatusAprovacao{AprovacaoPendente, Aprovado, Reprovado}

func (s StatusAprovacao) Valido() bool {
	switch s {
	case AprovacaoPendente, Aprovado, Reprovado:
		return true
	}
	return false
}

func (s StatusAprovacao) Rotulo() string {
	switch s {
	case AprovacaoPendente:
		return "Pendente"
	case Aprovado:
		return "Aprovado"
	case Reprovado:
		return "Reprovado"
	}
	return "Desconhecido"
}

// Papel do usuário autenticado.
type Papel string

const (
	PapelAdmin      Papel = "admin"
	PapelSupervisor Papel = "supervisor"
	PapelConsultor  Papel = "user"
)

func (p Papel) Valido() bool {
	return p == PapelAdmin || p == PapelSupervisor || p == PapelConsultor
}
