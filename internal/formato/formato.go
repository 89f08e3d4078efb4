// Package formato concentra a formatação pt-BR usada na tela e na planilha exportada.
package formato

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idioma = language.BrazilianPortuguese

func arredondar(v float64, casas int) float64 {
	p := math.Pow(10, float64(casas))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0 // evita "-0,00"
	}
	return r
}

// Moeda formata com exatamente duas casas, vírgula decimal e ponto de milhar: 1234.5 -> "1.234,50".
func Moeda(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return message.NewPrinter(idioma).Sprintf("%.2f", arredondar(v, 2))
}

// MoedaReais prefixa o símbolo: "R$ 1.234,50".
func MoedaReais(v float64) string {
	return "R$ " + Moeda(v)
}

// Percentual usa uma casa decimal: 12.345 -> "12,3%".
func Percentual(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return message.NewPrinter(idioma).Sprintf("%.1f", arredondar(v, 1)) + "%"
}

// Data formata DD/MM/AAAA; data zero vira "".
func Data(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// Maiusculas converte respeitando acentuação ("joão" -> "JOÃO").
func Maiusculas(s string) string {
	return cases.Upper(idioma).String(strings.TrimSpace(s))
}

// Dobrar normaliza para comparação sem diferenciar maiúsculas.
func Dobrar(s string) string {
	return cases.Fold().String(s)
}
