package filtro

import (
	"strings"

	"github.com/KromaEnergia/painel-usinas/internal/auth"
	"github.com/KromaEnergia/painel-usinas/internal/formato"
	"github.com/KromaEnergia/painel-usinas/internal/models"
)

// FiltrarClientes devolve os clientes que satisfazem todas as dimensões ativas.
// A capacidade é reaplicada aqui, independente do estado recebido.
func FiltrarClientes(clientes []models.Cliente, e Estado, c auth.Capacidade) []models.Cliente {
	e = e.Restringir(c)
	out := make([]models.Cliente, 0, len(clientes))
	for _, cl := range clientes {
		if !casaID(e.SetorID, cl.SetorID) || !casaID(e.UsuarioID, cl.UsuarioID) || !casaID(e.Usina, cl.UsinaID) {
			continue
		}
		if e.Status != Todos && e.Status != "" && cl.Status != e.Status {
			continue
		}
		if !e.Periodo.Contem(cl.CriadoEm.Time) {
			continue
		}
		if !CorrespondeBusca(e.Busca, cl.ID, cl.Nome, cl.CPF) {
			continue
		}
		out = append(out, cl)
	}
	return out
}

// FiltrarComissoes recorta as linhas de comissão por setor, consultor e busca.
//
// As linhas trazem o nome do setor, então o id selecionado é traduzido via setores.
// A usina não remove linhas: ela define o escopo da agregação. O período é aplicado na própria
// consulta à API (start_date/end_date).
func FiltrarComissoes(linhas []models.LinhaComissao, e Estado, c auth.Capacidade, setores []models.Setor) []models.LinhaComissao {
	e = e.Restringir(c)

	nomeSetor := ""
	if e.SetorID != Todos && e.SetorID != "" {
		id, err := models.ParseID(e.SetorID)
		if err != nil {
			return []models.LinhaComissao{}
		}
		for _, s := range setores {
			if s.ID == id {
				nomeSetor = formato.Dobrar(strings.TrimSpace(s.Nome))
				break
			}
		}
		if nomeSetor == "" {
			return []models.LinhaComissao{}
		}
	}

	out := make([]models.LinhaComissao, 0, len(linhas))
	for _, l := range linhas {
		if nomeSetor != "" && formato.Dobrar(strings.TrimSpace(l.Setor)) != nomeSetor {
			continue
		}
		if !casaID(e.UsuarioID, l.UsuarioID) {
			continue
		}
		if !CorrespondeBusca(e.Busca, l.UsuarioID, l.Consultor, "") {
			continue
		}
		out = append(out, l)
	}
	return out
}
