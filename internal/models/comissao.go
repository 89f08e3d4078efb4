package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrSomaDivergente indica que o detalhamento por usina não fecha com os totais declarados da linha.
var ErrSomaDivergente = errors.New("detalhamento por usina diverge dos totais da linha")

const toleranciaValor = 0.005

// DetalheUsina é a quantidade e o valor de comissão de um consultor numa usina.
type DetalheUsina struct {
	Qtd   Inteiro `json:"qtd"`
	Valor Decimal `json:"valor"`
}

// Detalhes indexa DetalheUsina pelo nome da usina. O PHP serializa mapa vazio como [].
type Detalhes map[string]DetalheUsina

func (d *Detalhes) UnmarshalJSON(b []byte) error {
	if isNullOrEmptyArray(b) {
		*d = Detalhes{}
		return nil
	}
	m := map[string]DetalheUsina{}
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*d = m
	return nil
}

// LinhaComissao é o agregado do servidor: uma linha por consultor no período.
type LinhaComissao struct {
	Setor          string   `json:"setor"`
	Consultor      string   `json:"consultor"`
	UsuarioID      ID       `json:"user_id"`
	Contratos      Inteiro  `json:"contratos"`
	TotalComissao  Decimal  `json:"total_comissao"`
	DetalhesUsinas Detalhes `json:"detalhes_usinas"`
}

// Detalhe devolve o detalhamento de uma usina, ou zero quando a linha não a possui.
func (l LinhaComissao) Detalhe(usina string) DetalheUsina {
	if l.DetalhesUsinas == nil {
		return DetalheUsina{}
	}
	return l.DetalhesUsinas[usina]
}

// Usinas lista as usinas presentes no detalhamento, em ordem alfabética.
func (l LinhaComissao) Usinas() []string {
	nomes := make([]string, 0, len(l.DetalhesUsinas))
	for nome := range l.DetalhesUsinas {
		nomes = append(nomes, nome)
	}
	sort.Strings(nomes)
	return nomes
}

// Consistente verifica sum(qtd) == contratos e sum(valor) == total_comissao.
func (l LinhaComissao) Consistente() error {
	var qtd int
	var valor float64
	for _, d := range l.DetalhesUsinas {
		qtd += int(d.Qtd)
		valor += float64(d.Valor)
	}
	if qtd != int(l.Contratos) {
		return fmt.Errorf("%w: consultor %q soma qtd %d, contratos %d", ErrSomaDivergente, l.Consultor, qtd, l.Contratos)
	}
	if math.Abs(valor-float64(l.TotalComissao)) > toleranciaValor {
		return fmt.Errorf("%w: consultor %q soma valor %.2f, total %.2f", ErrSomaDivergente, l.Consultor, valor, float64(l.TotalComissao))
	}
	return nil
}
