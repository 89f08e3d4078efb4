// Package comissao agrega as linhas de comissão do período e serve o painel e a exportação.
package comissao

import (
	"sort"

	"github.com/KromaEnergia/painel-usinas/internal/models"
)

// Quantidade de contratos da linha no escopo: a da usina quando há usina selecionada,
// senão os contratos declarados pela linha.
func Quantidade(l models.LinhaComissao, usina string) int {
	if usina == "" {
		return int(l.Contratos)
	}
	return int(l.Detalhe(usina).Qtd)
}

// Valor de comissão da linha no escopo, com a mesma regra de Quantidade.
func Valor(l models.LinhaComissao, usina string) float64 {
	if usina == "" {
		return float64(l.TotalComissao)
	}
	return float64(l.Detalhe(usina).Valor)
}

// TotalComissao soma o valor de todas as linhas no escopo.
func TotalComissao(linhas []models.LinhaComissao, usina string) float64 {
	var total float64
	for _, l := range linhas {
		total += Valor(l, usina)
	}
	return total
}

// TotalContratos soma as quantidades no escopo.
func TotalContratos(linhas []models.LinhaComissao, usina string) int {
	var total int
	for _, l := range linhas {
		total += Quantidade(l, usina)
	}
	return total
}

// MaiorDesempenho devolve a linha com mais contratos no escopo; empate fica com a primeira.
// ok é false quando não há linhas ou ninguém tem contrato.
func MaiorDesempenho(linhas []models.LinhaComissao, usina string) (models.LinhaComissao, bool) {
	if len(linhas) == 0 {
		return models.LinhaComissao{}, false
	}
	ordenadas := append([]models.LinhaComissao(nil), linhas...)
	sort.SliceStable(ordenadas, func(i, j int) bool {
		return Quantidade(ordenadas[i], usina) > Quantidade(ordenadas[j], usina)
	})
	if Quantidade(ordenadas[0], usina) == 0 {
		return models.LinhaComissao{}, false
	}
	return ordenadas[0], true
}

// UsinasEmEscopo lista as usinas que viram colunas: só a selecionada, ou as do cadastro
// seguidas das que aparecem apenas no detalhamento (em ordem alfabética).
func UsinasEmEscopo(linhas []models.LinhaComissao, cadastro []string, usina string) []string {
	if usina != "" {
		return []string{usina}
	}
	vistas := make(map[string]bool, len(cadastro))
	out := make([]string, 0, len(cadastro))
	for _, nome := range cadastro {
		if nome == "" || vistas[nome] {
			continue
		}
		vistas[nome] = true
		out = append(out, nome)
	}
	var extras []string
	for _, l := range linhas {
		for _, nome := range l.Usinas() {
			if !vistas[nome] {
				vistas[nome] = true
				extras = append(extras, nome)
			}
		}
	}
	sort.Strings(extras)
	return append(out, extras...)
}

// TotalUsina é a soma de uma usina sobre as linhas filtradas.
type TotalUsina struct {
	Usina string  `json:"usina"`
	Qtd   int     `json:"qtd"`
	Valor float64 `json:"valor"`
}

// PorContrato é valor/qtd, ou 0 quando não há contratos.
func (t TotalUsina) PorContrato() float64 {
	if t.Qtd == 0 {
		return 0
	}
	return t.Valor / float64(t.Qtd)
}

// TotaisPorUsina soma qtd e valor de cada usina em usinas.
func TotaisPorUsina(linhas []models.LinhaComissao, usinas []string) []TotalUsina {
	out := make([]TotalUsina, 0, len(usinas))
	for _, nome := range usinas {
		t := TotalUsina{Usina: nome}
		for _, l := range linhas {
			d := l.Detalhe(nome)
			t.Qtd += int(d.Qtd)
			t.Valor += float64(d.Valor)
		}
		out = append(out, t)
	}
	return out
}
