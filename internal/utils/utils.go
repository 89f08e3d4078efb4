package utils

import (
	"strings"
	"unicode"
)

// SomenteDigitos remove pontos, traços, barras e qualquer outro caractere que não seja dígito.
func SomenteDigitos(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatarCPF aplica a máscara 000.000.000-00; valores com outra quantidade de dígitos voltam como vieram.
func FormatarCPF(cpf string) string {
	d := SomenteDigitos(cpf)
	if len(d) != 11 {
		return cpf
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}
