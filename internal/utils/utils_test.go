package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSomenteDigitos(t *testing.T) {
	assert.Equal(t, "12345678900", SomenteDigitos("123.456.789-00"))
	assert.Equal(t, "", SomenteDigitos("abc"))
	assert.Equal(t, "1199998888", SomenteDigitos("(11) 9999-8888"))
}

func TestFormatarCPF(t *testing.T) {
	assert.Equal(t, "123.456.789-00", FormatarCPF("12345678900"))
	assert.Equal(t, "123.456.789-00", FormatarCPF("123.456.789-00"))
	assert.Equal(t, "123", FormatarCPF("123"))
}
