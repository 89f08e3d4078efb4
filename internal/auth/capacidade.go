package auth

import "github.com/KromaEnergia/painel-usinas/internal/models"

// Capacidade descreve o que a sessão pode ver e fazer. É resolvida uma vez no login
// e viaja no token; filtros e agregações recebem a Capacidade em vez de olhar o papel.
type Capacidade struct {
	UsuarioID         models.ID    `json:"usuarioId"`
	Nome              string       `json:"nome"`
	Papel             models.Papel `json:"papel"`
	SetorID           models.ID    `json:"setorId"`
	SetorFixo         bool         `json:"setorFixo"`
	ConsultorFixo     bool         `json:"consultorFixo"`
	GerenciaCadastros bool         `json:"gerenciaCadastros"`
}

// ResolverCapacidade deriva a Capacidade a partir do papel do usuário.
func ResolverCapacidade(u models.Usuario) Capacidade {
	c := Capacidade{
		UsuarioID: u.ID,
		Nome:      u.Nome,
		Papel:     u.Papel,
		SetorID:   u.SetorID,
	}
	switch u.Papel {
	case models.PapelAdmin:
		c.GerenciaCadastros = true
	case models.PapelSupervisor:
		c.SetorFixo = true
	default:
		// papel desconhecido é tratado como consultor
		c.Papel = models.PapelConsultor
		c.SetorFixo = true
		c.ConsultorFixo = true
	}
	return c
}

// PodeVerCliente aplica o mesmo recorte dos filtros a um único cliente (usado nas mutações).
func (c Capacidade) PodeVerCliente(cl models.Cliente) bool {
	if c.SetorFixo && cl.SetorID != c.SetorID {
		return false
	}
	if c.ConsultorFixo && cl.UsuarioID != c.UsuarioID {
		return false
	}
	return true
}
