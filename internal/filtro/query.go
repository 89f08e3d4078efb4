package filtro

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/KromaEnergia/painel-usinas/internal/auth"
)

// DoPedido monta o Estado da requisição já restrito pela capacidade.
// limpar=1 descarta os filtros pedidos e devolve o estado inicial.
func DoPedido(q url.Values, agora time.Time, c auth.Capacidade) Estado {
	e := DaQuery(q, agora)
	if limpar, _ := strconv.ParseBool(q.Get("limpar")); limpar {
		return e.Limpar(c)
	}
	return e.Restringir(c)
}

// DaQuery monta o Estado a partir da query string do painel:
// setor, usuario, usina, status, busca, periodo (preset), de e ate (YYYY-MM-DD).
// Preset desconhecido vira "todos"; de/ate sem preset implicam "personalizado".
func DaQuery(q url.Values, agora time.Time) Estado {
	e := Inicial().
		ComSetor(q.Get("setor")).
		ComConsultor(q.Get("usuario")).
		ComUsina(q.Get("usina")).
		ComStatus(q.Get("status")).
		ComBusca(q.Get("busca"))

	preset := Preset(strings.ToLower(strings.TrimSpace(q.Get("periodo"))))
	de, ate := ParseDia(q.Get("de")), ParseDia(q.Get("ate"))
	if preset == "" && (!de.IsZero() || !ate.IsZero()) {
		preset = PresetPersonalizado
	}
	switch {
	case preset == PresetPersonalizado:
		return e.ComIntervalo(de, ate)
	case preset.Valido():
		return e.ComPreset(preset, agora)
	default:
		return e.ComPreset(PresetTodos, agora)
	}
}
