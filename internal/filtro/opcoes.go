package filtro

import (
	"sort"

	"github.com/KromaEnergia/painel-usinas/internal/auth"
	"github.com/KromaEnergia/painel-usinas/internal/formato"
	"github.com/KromaEnergia/painel-usinas/internal/models"
)

// OpcoesConsultores lista os usuários selecionáveis no filtro de consultor, já recortados pelo
// setor escolhido e pela capacidade. Ordenados por nome.
func OpcoesConsultores(usuarios []models.Usuario, setorID string, c auth.Capacidade) []models.Usuario {
	e := Inicial().ComSetor(setorID).Restringir(c)
	out := make([]models.Usuario, 0, len(usuarios))
	for _, u := range usuarios {
		if u.Papel == models.PapelAdmin {
			continue
		}
		if !casaID(e.SetorID, u.SetorID) || !casaID(e.UsuarioID, u.ID) {
			continue
		}
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return formato.Dobrar(out[i].Nome) < formato.Dobrar(out[j].Nome)
	})
	return out
}

// UsuariosVisiveis recorta a lista de usuários pela capacidade (tela de cadastro).
func UsuariosVisiveis(usuarios []models.Usuario, c auth.Capacidade) []models.Usuario {
	if !c.SetorFixo && !c.ConsultorFixo {
		return usuarios
	}
	e := Inicial().Restringir(c)
	out := make([]models.Usuario, 0, len(usuarios))
	for _, u := range usuarios {
		if casaID(e.SetorID, u.SetorID) && casaID(e.UsuarioID, u.ID) {
			out = append(out, u)
		}
	}
	return out
}
