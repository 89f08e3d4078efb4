package comissao

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KromaEnergia/painel-usinas/internal/models"
)

// linhasFixture: três consultores, usinas A e B.
func linhasFixture() []models.LinhaComissao {
	return []models.LinhaComissao{
		{
			Setor: "Norte", Consultor: "Maria", UsuarioID: 20, Contratos: 5, TotalComissao: 500,
			DetalhesUsinas: models.Detalhes{"A": {Qtd: 3, Valor: 300}, "B": {Qtd: 2, Valor: 200}},
		},
		{
			Setor: "Sul", Consultor: "João", UsuarioID: 21, Contratos: 2, TotalComissao: 100,
			DetalhesUsinas: models.Detalhes{"A": {Qtd: 2, Valor: 100}},
		},
		{Setor: "Norte", Consultor: "Ana", UsuarioID: 22},
	}
}

func TestFixtureRespeitaSomaPorUsina(t *testing.T) {
	for _, l := range linhasFixture() {
		assert.NoError(t, l.Consistente(), l.Consultor)
	}
}

func TestEscopoUsinaA(t *testing.T) {
	linhas := linhasFixture()

	assert.Equal(t, 400.0, TotalComissao(linhas, "A"))

	top, ok := MaiorDesempenho(linhas, "A")
	require.True(t, ok)
	assert.Equal(t, "Maria", top.Consultor)
	assert.Equal(t, 3, Quantidade(top, "A"))

	totais := TotaisPorUsina(linhas, []string{"A"})
	require.Len(t, totais, 1)
	assert.Equal(t, 5, totais[0].Qtd)
	assert.Equal(t, 80.0, totais[0].PorContrato())
}

func TestSemUsinaUsaTotaisDeclarados(t *testing.T) {
	linhas := linhasFixture()
	assert.Equal(t, 600.0, TotalComissao(linhas, ""))
	assert.Equal(t, 7, TotalContratos(linhas, ""))

	// linha divergente: o total declarado prevalece
	divergente := models.LinhaComissao{
		Consultor: "X", Contratos: 4, TotalComissao: 90,
		DetalhesUsinas: models.Detalhes{"A": {Qtd: 1, Valor: 10}},
	}
	require.ErrorIs(t, divergente.Consistente(), models.ErrSomaDivergente)
	assert.Equal(t, 4, Quantidade(divergente, ""))
	assert.Equal(t, 90.0, Valor(divergente, ""))
}

func TestMaiorDesempenhoEmpateFicaComOPrimeiro(t *testing.T) {
	linhas := []models.LinhaComissao{
		{Consultor: "Primeiro", Contratos: 3},
		{Consultor: "Segundo", Contratos: 3},
		{Consultor: "Menor", Contratos: 1},
	}
	top, ok := MaiorDesempenho(linhas, "")
	require.True(t, ok)
	assert.Equal(t, "Primeiro", top.Consultor)
	// a entrada não é reordenada
	assert.Equal(t, "Primeiro", linhas[0].Consultor)
	assert.Equal(t, "Menor", linhas[2].Consultor)
}

func TestMaiorDesempenhoSemContratos(t *testing.T) {
	_, ok := MaiorDesempenho(nil, "")
	assert.False(t, ok)
	_, ok = MaiorDesempenho(linhasFixture(), "C")
	assert.False(t, ok)
}

func TestPorContratoSemQuantidade(t *testing.T) {
	totais := TotaisPorUsina(linhasFixture(), []string{"A", "B", "C"})
	require.Len(t, totais, 3)
	assert.Equal(t, 80.0, totais[0].PorContrato())
	assert.Equal(t, 100.0, totais[1].PorContrato())
	assert.Equal(t, 0.0, totais[2].PorContrato())
}

func TestUsinasEmEscopo(t *testing.T) {
	linhas := append(linhasFixture(), models.LinhaComissao{DetalhesUsinas: models.Detalhes{"Z": {}, "D": {}}})
	assert.Equal(t, []string{"B", "A", "D", "Z"}, UsinasEmEscopo(linhas, []string{"B", "A", "A"}, ""))
	assert.Equal(t, []string{"A"}, UsinasEmEscopo(linhas, []string{"B"}, "A"))
}
