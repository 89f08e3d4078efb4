// Package paginacao calcula a janela de páginas exibida abaixo das tabelas.
package paginacao

import (
	"encoding/json"
	"math"
	"strconv"
)

// TamanhoPadrao é usado quando nenhum tamanho de página é configurado.
const TamanhoPadrao = 10

// janelaCompleta: até este total todas as páginas aparecem.
const janelaCompleta = 5

// Item é um número de página ou reticências.
type Item struct {
	Pagina     int
	Reticencia bool
}

// MarshalJSON serializa como número ou "...".
func (i Item) MarshalJSON() ([]byte, error) {
	if i.Reticencia {
		return json.Marshal("...")
	}
	return json.Marshal(i.Pagina)
}

func (i Item) String() string {
	if i.Reticencia {
		return "..."
	}
	return strconv.Itoa(i.Pagina)
}

func paginas(ns ...int) []Item {
	out := make([]Item, 0, len(ns))
	for _, n := range ns {
		if n == 0 {
			out = append(out, Item{Reticencia: true})
			continue
		}
		out = append(out, Item{Pagina: n})
	}
	return out
}

// TotalPaginas arredonda para cima; zero itens resulta em zero páginas.
func TotalPaginas(totalItens, tamanho int) int {
	if tamanho <= 0 {
		tamanho = TamanhoPadrao
	}
	if totalItens <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalItens) / float64(tamanho)))
}

// Janela devolve a sequência de páginas visível para a página atual (1-based).
func Janela(totalPaginas, atual int) []Item {
	if totalPaginas <= 0 {
		return []Item{}
	}
	if atual < 1 {
		atual = 1
	}
	if atual > totalPaginas {
		atual = totalPaginas
	}
	if totalPaginas <= janelaCompleta {
		out := make([]Item, 0, totalPaginas)
		for p := 1; p <= totalPaginas; p++ {
			out = append(out, Item{Pagina: p})
		}
		return out
	}
	switch {
	case atual <= 3:
		return paginas(1, 2, 3, 4, 0, totalPaginas)
	case atual >= totalPaginas-2:
		return paginas(1, 0, totalPaginas-3, totalPaginas-2, totalPaginas-1, totalPaginas)
	default:
		return paginas(1, 0, atual-1, atual, atual+1, 0, totalPaginas)
	}
}

// Pagina descreve o recorte exibido.
type Pagina struct {
	Atual        int    `json:"atual"`
	TotalPaginas int    `json:"totalPaginas"`
	TotalItens   int    `json:"totalItens"`
	Tamanho      int    `json:"tamanho"`
	Janela       []Item `json:"janela"`
	TemAnterior  bool   `json:"temAnterior"`
	TemProxima   bool   `json:"temProxima"`

	// PaginaInvalida: a página pedida estava fora do intervalo e foi ignorada.
	PaginaInvalida bool `json:"paginaInvalida,omitempty"`
}

// Navegar devolve a página pedida; fora do intervalo [1,total] a navegação não acontece
// e a página atual é mantida.
func Navegar(atual, pedida, totalPaginas int) int {
	if pedida < 1 || pedida > totalPaginas {
		return atual
	}
	return pedida
}

// Recortar aplica a paginação sobre uma lista já filtrada.
func Recortar[T any](itens []T, pagina, tamanho int) ([]T, Pagina) {
	if tamanho <= 0 {
		tamanho = TamanhoPadrao
	}
	total := TotalPaginas(len(itens), tamanho)
	invalida := false
	if pagina < 1 || (total > 0 && pagina > total) {
		invalida = pagina != 0
		pagina = 1
	}
	ini := (pagina - 1) * tamanho
	fim := ini + tamanho
	if ini > len(itens) {
		ini = len(itens)
	}
	if fim > len(itens) {
		fim = len(itens)
	}
	return itens[ini:fim], Pagina{
		Atual:        pagina,
		TotalPaginas: total,
		TotalItens:   len(itens),
		Tamanho:      tamanho,
		Janela:       Janela(total, pagina),
		TemAnterior:  pagina > 1,
		TemProxima:   pagina < total,

		PaginaInvalida: invalida,
	}
}
