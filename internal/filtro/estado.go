// Package filtro implementa o estado de filtros do painel e os filtros puros sobre clientes e comissões.
package filtro

import (
	"strings"
	"time"

	"github.com/KromaEnergia/painel-usinas/internal/auth"
	"github.com/KromaEnergia/painel-usinas/internal/models"
)

// Todos é o valor sentinela de "sem filtro" nas dimensões de seleção.
const Todos = "all"

// Estado é um valor imutável: toda transição devolve um novo Estado.
type Estado struct {
	SetorID   string  `json:"setor"`
	UsuarioID string  `json:"usuario"`
	Usina     string  `json:"usina"`
	Status    string  `json:"status"`
	Busca     string  `json:"busca"`
	Periodo   Periodo `json:"periodo"`
}

// Inicial é o estado sem nenhum filtro.
func Inicial() Estado {
	return Estado{
		SetorID:   Todos,
		UsuarioID: Todos,
		Usina:     Todos,
		Status:    Todos,
		Periodo:   Periodo{Preset: PresetTodos},
	}
}

func normalizar(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return Todos
	}
	return v
}

// ComSetor troca o setor e volta o consultor para Todos (os consultores dependem do setor).
func (e Estado) ComSetor(id string) Estado {
	id = normalizar(id)
	if id != e.SetorID {
		e.UsuarioID = Todos
	}
	e.SetorID = id
	return e
}

func (e Estado) ComConsultor(id string) Estado {
	e.UsuarioID = normalizar(id)
	return e
}

func (e Estado) ComUsina(usina string) Estado {
	e.Usina = normalizar(usina)
	return e
}

func (e Estado) ComStatus(status string) Estado {
	e.Status = normalizar(status)
	return e
}

func (e Estado) ComBusca(termo string) Estado {
	e.Busca = strings.TrimSpace(termo)
	return e
}

// ComPreset recalcula os limites na hora.
func (e Estado) ComPreset(p Preset, agora time.Time) Estado {
	e.Periodo = PeriodoDoPreset(p, agora)
	return e
}

func (e Estado) ComIntervalo(de, ate time.Time) Estado {
	e.Periodo = PeriodoPersonalizado(de, ate)
	return e
}

// Restringir aplica o recorte da capacidade. Não pode ser desfeito por nenhuma transição de UI.
func (e Estado) Restringir(c auth.Capacidade) Estado {
	if c.SetorFixo {
		if s := c.SetorID.String(); s != e.SetorID {
			e.SetorID = s
			if !c.ConsultorFixo {
				e.UsuarioID = Todos
			}
		}
	}
	if c.ConsultorFixo {
		e.UsuarioID = c.UsuarioID.String()
	}
	return e
}

// Limpar volta ao estado inicial mantendo o que a capacidade fixa.
func (e Estado) Limpar(c auth.Capacidade) Estado {
	return Inicial().Restringir(c)
}

// UsinaSelecionada devolve a usina escolhida, ou "" quando nenhuma.
func (e Estado) UsinaSelecionada() string {
	if e.Usina == Todos {
		return ""
	}
	return e.Usina
}

// casaID compara uma dimensão de seleção com um id. Valor não numérico não casa com nada.
func casaID(sel string, id models.ID) bool {
	if sel == Todos || sel == "" {
		return true
	}
	want, err := models.ParseID(sel)
	if err != nil {
		return false
	}
	return id == want
}
