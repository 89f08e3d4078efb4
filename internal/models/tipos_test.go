package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClienteAceitaCamposDoPHP(t *testing.T) {
	Fuso = time.UTC
	raw := `{"id":"7","name":"Maria","cpf":"123.456.789-00","sector_id":null,"user_id":3,
		"usina_id":"all","status":"pending","created_at":"2024-03-10 14:30:00","updated_at":"lixo"}`

	var c Cliente
	require.NoError(t, json.Unmarshal([]byte(raw), &c))

	assert.Equal(t, ID(7), c.ID)
	assert.False(t, c.SetorID.Atribuido())
	assert.False(t, c.UsinaID.Atribuido())
	assert.Equal(t, ID(3), c.UsuarioID)
	assert.Equal(t, time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC), c.CriadoEm.Time)
	assert.False(t, c.AtualizadoEm.Valida())
}

func TestParseDataFormatos(t *testing.T) {
	Fuso = time.UTC
	cases := []struct {
		in   string
		zero bool
	}{
		{"2024-01-02", false},
		{"2024-01-02T03:04:05", false},
		{"2024-01-02T03:04:05-03:00", false},
		{"0000-00-00 00:00:00", true},
		{"31/12/2024", true},
		{"", true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.zero, ParseData(tc.in).IsZero())
		})
	}
}

func TestDetalhesAceitaArrayVazio(t *testing.T) {
	var l LinhaComissao
	require.NoError(t, json.Unmarshal([]byte(`{"consultor":"Ana","contratos":"0","total_comissao":"0.00","detalhes_usinas":[]}`), &l))
	assert.NotNil(t, l.DetalhesUsinas)
	assert.Empty(t, l.DetalhesUsinas)
	assert.NoError(t, l.Consistente())
}

func TestDecimalComVirgula(t *testing.T) {
	var d Decimal
	require.NoError(t, json.Unmarshal([]byte(`"1.234,50"`), &d))
	assert.InDelta(t, 1234.5, float64(d), 1e-9)
}

func TestConsistente(t *testing.T) {
	ok := LinhaComissao{
		Consultor: "Ana", Contratos: 5, TotalComissao: 500,
		DetalhesUsinas: Detalhes{"A": {Qtd: 3, Valor: 300}, "B": {Qtd: 2, Valor: 200}},
	}
	assert.NoError(t, ok.Consistente())

	qtdErrada := ok
	qtdErrada.Contratos = 6
	assert.True(t, errors.Is(qtdErrada.Consistente(), ErrSomaDivergente))

	valorErrado := ok
	valorErrado.TotalComissao = 510
	assert.True(t, errors.Is(valorErrado.Consistente(), ErrSomaDivergente))
}

func TestUsuarioInativo(t *testing.T) {
	var u Usuario
	require.NoError(t, json.Unmarshal([]byte(`{"id":1}`), &u))
	assert.False(t, u.Inativo())
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"active":"0"}`), &u))
	assert.True(t, u.Inativo())
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"active":true}`), &u))
	assert.False(t, u.Inativo())
}
