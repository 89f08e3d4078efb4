// Package exportacao gera a planilha de comissões (HTML lido pelo Excel) e guarda o histórico de exportações.
package exportacao

import (
	"errors"
	"html/template"
	"io"
	"time"

	"github.com/KromaEnergia/painel-usinas/internal/formato"
)

// ContentType da planilha: o Excel abre tabelas HTML servidas com este MIME.
const ContentType = "application/vnd.ms-excel"

// TituloPadrao do bloco de título.
const TituloPadrao = "Relatório de Comissões"

var ErrSemLinhas = errors.New("nenhum dado para exportar")

// ResumoUsina é uma linha do quadro de resumo.
type ResumoUsina struct {
	Usina            string
	ValorPorContrato float64
}

// Celula é o par quantidade/valor de uma usina.
type Celula struct {
	Qtd   int
	Valor float64
}

// Linha do detalhamento; Celulas segue a ordem de Planilha.Usinas.
type Linha struct {
	Setor     string
	Consultor string
	Celulas   []Celula
	Contratos int
	Total     float64
}

// Planilha é o retrato já filtrado e agregado que vai para o arquivo.
type Planilha struct {
	Titulo  string
	Periodo string
	Usinas  []string
	Resumo  []ResumoUsina
	Linhas  []Linha
	Totais  Linha
}

// Colunas é a largura da tabela de detalhe: setor, consultor, um par por usina e os dois totais.
func (p Planilha) Colunas() int { return 4 + 2*len(p.Usinas) }

var funcoes = template.FuncMap{
	"moeda":      formato.Moeda,
	"maiusculas": formato.Maiusculas,
}

// Células centralizadas por estilo inline; o Excel ignora folhas de estilo externas.
var modelo = template.Must(template.New("planilha").Funcs(funcoes).Parse(
	`<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:x="urn:schemas-microsoft-com:office:excel" xmlns="http://www.w3.org/TR/REC-html40">` + "\n" +
		`<head><meta charset="UTF-8"></head>` + "\n" +
		`<body>` + "\n" +
		`<table border="1">` + "\n" +
		`{{$c := .Colunas}}` +
		`<tr><td colspan="{{$c}}" style="text-align:center;font-weight:bold;font-size:16px">{{.Titulo}}</td></tr>` + "\n" +
		`<tr><td colspan="{{$c}}" style="text-align:center">Período: {{.Periodo}}</td></tr>` + "\n" +
		`<tr><td colspan="{{$c}}"></td></tr>` + "\n" +
		`<tr><th colspan="2" style="text-align:center;font-weight:bold">Resumo por usina</th></tr>` + "\n" +
		`<tr><th style="text-align:center">Usina</th><th style="text-align:center">Comissão por contrato</th></tr>` + "\n" +
		`{{range .Resumo}}<tr><td style="text-align:center">{{.Usina}}</td><td style="text-align:center">{{moeda .ValorPorContrato}}</td></tr>` + "\n" + `{{end}}` +
		`<tr><td colspan="{{$c}}"></td></tr>` + "\n" +
		`<tr><td colspan="{{$c}}"></td></tr>` + "\n" +
		`<tr><th rowspan="2" style="text-align:center">Setor</th><th rowspan="2" style="text-align:center">Consultor</th>` +
		`{{range .Usinas}}<th colspan="2" style="text-align:center">{{.}}</th>{{end}}` +
		`<th rowspan="2" style="text-align:center">Total de contratos</th><th rowspan="2" style="text-align:center">Total de comissão</th></tr>` + "\n" +
		`<tr>{{range .Usinas}}<th style="text-align:center">Qtd</th><th style="text-align:center">Valor</th>{{end}}</tr>` + "\n" +
		`{{range .Linhas}}<tr><td style="text-align:center">{{.Setor}}</td><td style="text-align:center">{{maiusculas .Consultor}}</td>` +
		`{{range .Celulas}}<td style="text-align:center">{{.Qtd}}</td><td style="text-align:center">{{moeda .Valor}}</td>{{end}}` +
		`<td style="text-align:center">{{.Contratos}}</td><td style="text-align:center">{{moeda .Total}}</td></tr>` + "\n" + `{{end}}` +
		`{{with .Totais}}<tr><td colspan="2" style="text-align:center;font-weight:bold">TOTAL</td>` +
		`{{range .Celulas}}<td style="text-align:center;font-weight:bold">{{.Qtd}}</td><td style="text-align:center;font-weight:bold">{{moeda .Valor}}</td>{{end}}` +
		`<td style="text-align:center;font-weight:bold">{{.Contratos}}</td><td style="text-align:center;font-weight:bold">{{moeda .Total}}</td></tr>` + "\n" + `{{end}}` +
		`</table>` + "\n" +
		`</body>` + "\n" +
		`</html>` + "\n",
))

// Escrever serializa a planilha. Sem linhas devolve ErrSemLinhas e não escreve nada.
func Escrever(w io.Writer, p Planilha) error {
	if len(p.Linhas) == 0 {
		return ErrSemLinhas
	}
	if p.Titulo == "" {
		p.Titulo = TituloPadrao
	}
	return modelo.Execute(w, p)
}

// NomeArquivo inclui a data da exportação.
func NomeArquivo(em time.Time) string {
	return "relatorio_comissoes_" + em.Format("2006-01-02") + ".xls"
}
