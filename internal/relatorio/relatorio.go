// Package relatorio calcula a distribuição de status e os rankings dos relatórios gerais.
package relatorio

import (
	"sort"

	"github.com/KromaEnergia/painel-usinas/internal/filtro"
	"github.com/KromaEnergia/painel-usinas/internal/models"
	"github.com/KromaEnergia/painel-usinas/internal/projecao"
)

// TamanhoRanking é o N dos rankings.
const TamanhoRanking = 5

// Percentual é parte/total*100, ou 0 quando total é 0.
func Percentual(parte, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(parte) / float64(total) * 100
}

// Fatia de um status na distribuição.
type Fatia struct {
	Status     string         `json:"status"`
	Rotulo     string         `json:"rotulo"`
	Quantidade int            `json:"quantidade"`
	Percentual projecao.Valor `json:"percentual"`
}

const statusOutros = "outros"

// Distribuicao conta os clientes por status de aprovação. Status fora do enum vão para "Outros",
// que só aparece quando não é vazio.
func Distribuicao(clientes []models.Cliente) []Fatia {
	contagem := make(map[models.StatusAprovacao]int, len(models.StatusesAprovacao))
	outros := 0
	for _, c := range clientes {
		s := models.StatusAprovacao(c.Status)
		if s.Valido() {
			contagem[s]++
		} else {
			outros++
		}
	}
	total := len(clientes)
	out := make([]Fatia, 0, len(models.StatusesAprovacao)+1)
	for _, s := range models.StatusesAprovacao {
		out = append(out, Fatia{
			Status:     string(s),
			Rotulo:     s.Rotulo(),
			Quantidade: contagem[s],
			Percentual: projecao.Percentual(Percentual(contagem[s], total)),
		})
	}
	if outros > 0 {
		out = append(out, Fatia{
			Status:     statusOutros,
			Rotulo:     "Outros",
			Quantidade: outros,
			Percentual: projecao.Percentual(Percentual(outros, total)),
		})
	}
	return out
}

// Posicao no ranking.
type Posicao struct {
	ID        models.ID      `json:"id"`
	Nome      string         `json:"nome"`
	Total     int            `json:"total"`
	Aprovados int            `json:"aprovados"`
	Taxa      projecao.Valor `json:"taxaAprovacao"`
}

type entidade struct {
	id   models.ID
	nome string
}

// ranking ordena por aprovados (desc) preservando a ordem de entrada nos empates.
// Entidades sem nenhum cliente ficam de fora.
func ranking(ents []entidade, clientes []models.Cliente, chave func(models.Cliente) models.ID, n int) []Posicao {
	total := map[models.ID]int{}
	aprovados := map[models.ID]int{}
	for _, c := range clientes {
		id := chave(c)
		total[id]++
		if models.StatusAprovacao(c.Status) == models.Aprovado {
			aprovados[id]++
		}
	}
	out := make([]Posicao, 0, len(ents))
	for _, e := range ents {
		if total[e.id] == 0 {
			continue
		}
		out = append(out, Posicao{
			ID:        e.id,
			Nome:      e.nome,
			Total:     total[e.id],
			Aprovados: aprovados[e.id],
			Taxa:      projecao.Percentual(Percentual(aprovados[e.id], total[e.id])),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Aprovados > out[j].Aprovados })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// RankingConsultores: top N consultores (e supervisores com carteira) por aprovados.
func RankingConsultores(clientes []models.Cliente, usuarios []models.Usuario, n int) []Posicao {
	ents := make([]entidade, 0, len(usuarios))
	for _, u := range usuarios {
		ents = append(ents, entidade{u.ID, u.Nome})
	}
	return ranking(ents, clientes, func(c models.Cliente) models.ID { return c.UsuarioID }, n)
}

// RankingSetores: top N setores por aprovados.
func RankingSetores(clientes []models.Cliente, setores []models.Setor, n int) []Posicao {
	ents := make([]entidade, 0, len(setores))
	for _, s := range setores {
		ents = append(ents, entidade{s.ID, s.Nome})
	}
	return ranking(ents, clientes, func(c models.Cliente) models.ID { return c.SetorID }, n)
}

// Relatorio é a resposta de GET /relatorios.
type Relatorio struct {
	Filtros        filtro.Estado `json:"filtros"`
	TotalClientes  int           `json:"totalClientes"`
	Distribuicao   []Fatia       `json:"distribuicao"`
	TopConsultores []Posicao     `json:"topConsultores"`
	TopSetores     []Posicao     `json:"topSetores"`
	Aviso          string        `json:"aviso,omitempty"`
}

// Montar gera o relatório a partir dos clientes já filtrados.
func Montar(clientes []models.Cliente, e filtro.Estado, usuarios []models.Usuario, setores []models.Setor) Relatorio {
	return Relatorio{
		Filtros:        e,
		TotalClientes:  len(clientes),
		Distribuicao:   Distribuicao(clientes),
		TopConsultores: RankingConsultores(clientes, usuarios, TamanhoRanking),
		TopSetores:     RankingSetores(clientes, setores, TamanhoRanking),
	}
}
