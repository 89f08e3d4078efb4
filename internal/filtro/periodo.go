package filtro

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/KromaEnergia/painel-usinas/internal/formato"
	"github.com/KromaEnergia/painel-usinas/internal/models"
)

// Preset de período do painel.
type Preset string

const (
	PresetHoje          Preset = "hoje"
	PresetSeteDias      Preset = "7dias"
	PresetMes           Preset = "mes"
	PresetTodos         Preset = "todos"
	PresetPersonalizado Preset = "personalizado"
)

func (p Preset) Valido() bool {
	switch p {
	case PresetHoje, PresetSeteDias, PresetMes, PresetTodos, PresetPersonalizado:
		return true
	}
	return false
}

func (p Preset) Rotulo() string {
	switch p {
	case PresetHoje:
		return "Hoje"
	case PresetSeteDias:
		return "Últimos 7 dias"
	case PresetMes:
		return "Este mês"
	case PresetPersonalizado:
		return "Personalizado"
	default:
		return "Todo o período"
	}
}

// Periodo é um intervalo fechado [De, Ate]. Limite zero significa aberto.
type Periodo struct {
	Preset Preset
	De     time.Time
	Ate    time.Time
}

func (p Periodo) MarshalJSON() ([]byte, error) {
	dia := func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	}
	return json.Marshal(struct {
		Preset    Preset `json:"preset"`
		Rotulo    string `json:"rotulo"`
		De        string `json:"de,omitempty"`
		Ate       string `json:"ate,omitempty"`
		Descricao string `json:"descricao"`
	}{p.Preset, p.Preset.Rotulo(), dia(p.De), dia(p.Ate), p.Descricao()})
}

func inicioDoDia(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func fimDoDia(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// PeriodoDoPreset calcula os limites concretos a partir de agora (no fuso de agora).
// PresetPersonalizado sem datas equivale a período aberto.
func PeriodoDoPreset(p Preset, agora time.Time) Periodo {
	switch p {
	case PresetHoje:
		return Periodo{Preset: p, De: inicioDoDia(agora), Ate: fimDoDia(agora)}
	case PresetSeteDias:
		return Periodo{Preset: p, De: inicioDoDia(agora.AddDate(0, 0, -7)), Ate: fimDoDia(agora)}
	case PresetMes:
		y, m, _ := agora.Date()
		return Periodo{Preset: p, De: time.Date(y, m, 1, 0, 0, 0, 0, agora.Location()), Ate: fimDoDia(agora)}
	case PresetPersonalizado:
		return Periodo{Preset: p}
	default:
		return Periodo{Preset: PresetTodos}
	}
}

// PeriodoPersonalizado normaliza as datas para início e fim do dia. Qualquer uma pode ser zero.
func PeriodoPersonalizado(de, ate time.Time) Periodo {
	p := Periodo{Preset: PresetPersonalizado}
	if !de.IsZero() {
		p.De = inicioDoDia(de)
	}
	if !ate.IsZero() {
		p.Ate = fimDoDia(ate)
	}
	return p
}

// Ativo indica se há algum limite.
func (p Periodo) Ativo() bool { return !p.De.IsZero() || !p.Ate.IsZero() }

// Contem testa t contra o intervalo, limites inclusivos. Data zero só casa com período aberto.
func (p Periodo) Contem(t time.Time) bool {
	if !p.Ativo() {
		return true
	}
	if t.IsZero() {
		return false
	}
	if !p.De.IsZero() && t.Before(p.De) {
		return false
	}
	if !p.Ate.IsZero() && t.After(p.Ate) {
		return false
	}
	return true
}

// Descricao é o rótulo do período usado na exportação.
func (p Periodo) Descricao() string {
	switch {
	case !p.Ativo():
		return PresetTodos.Rotulo()
	case p.De.IsZero():
		return fmt.Sprintf("%s: até %s", p.Preset.Rotulo(), formato.Data(p.Ate))
	case p.Ate.IsZero():
		return fmt.Sprintf("%s: a partir de %s", p.Preset.Rotulo(), formato.Data(p.De))
	default:
		return fmt.Sprintf("%s: %s a %s", p.Preset.Rotulo(), formato.Data(p.De), formato.Data(p.Ate))
	}
}

// ParseDia lê "YYYY-MM-DD" (ou os demais formatos aceitos pela API) no fuso configurado.
// Entrada inválida vira data zero.
func ParseDia(s string) time.Time {
	return models.ParseData(s)
}
