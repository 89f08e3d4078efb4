package comissao

import (
	"github.com/KromaEnergia/painel-usinas/internal/exportacao"
	"github.com/KromaEnergia/painel-usinas/internal/filtro"
	"github.com/KromaEnergia/painel-usinas/internal/models"
	"github.com/KromaEnergia/painel-usinas/internal/projecao"
)

type CelulaUsina struct {
	Usina string         `json:"usina"`
	Qtd   int            `json:"qtd"`
	Valor projecao.Valor `json:"valor"`
}

// LinhaPainel é uma linha da tabela de comissões já formatada.
type LinhaPainel struct {
	Setor     string         `json:"setor"`
	Consultor string         `json:"consultor"`
	UsuarioID models.ID      `json:"usuarioId"`
	Contratos int            `json:"contratos"`
	Total     projecao.Valor `json:"totalComissao"`
	Usinas    []CelulaUsina  `json:"usinas"`
}

type Destaque struct {
	Consultor string         `json:"consultor"`
	Setor     string         `json:"setor"`
	Contratos int            `json:"contratos"`
	Total     projecao.Valor `json:"totalComissao"`
}

type ResumoUsina struct {
	Usina       string         `json:"usina"`
	Qtd         int            `json:"qtd"`
	Valor       projecao.Valor `json:"valor"`
	PorContrato projecao.Valor `json:"porContrato"`
}

// Painel é a resposta de GET /comissoes.
type Painel struct {
	Filtros        filtro.Estado  `json:"filtros"`
	Usinas         []string       `json:"usinas"`
	Linhas         []LinhaPainel  `json:"linhas"`
	TotalContratos int            `json:"totalContratos"`
	TotalComissao  projecao.Valor `json:"totalComissao"`
	Destaque       *Destaque      `json:"destaque,omitempty"`
	ResumoUsinas   []ResumoUsina  `json:"resumoUsinas"`
	Aviso          string         `json:"aviso,omitempty"`
}

// MontarPainel agrega as linhas já filtradas no escopo da usina do estado.
func MontarPainel(linhas []models.LinhaComissao, e filtro.Estado, cadastro []string) Painel {
	usina := e.UsinaSelecionada()
	usinas := UsinasEmEscopo(linhas, cadastro, usina)

	p := Painel{
		Filtros:        e,
		Usinas:         usinas,
		Linhas:         make([]LinhaPainel, 0, len(linhas)),
		TotalContratos: TotalContratos(linhas, usina),
		TotalComissao:  projecao.Moeda(TotalComissao(linhas, usina)),
		ResumoUsinas:   make([]ResumoUsina, 0, len(usinas)),
	}
	for _, l := range linhas {
		lp := LinhaPainel{
			Setor:     l.Setor,
			Consultor: l.Consultor,
			UsuarioID: l.UsuarioID,
			Contratos: Quantidade(l, usina),
			Total:     projecao.Moeda(Valor(l, usina)),
			Usinas:    make([]CelulaUsina, 0, len(usinas)),
		}
		for _, nome := range usinas {
			d := l.Detalhe(nome)
			lp.Usinas = append(lp.Usinas, CelulaUsina{Usina: nome, Qtd: int(d.Qtd), Valor: projecao.Moeda(float64(d.Valor))})
		}
		p.Linhas = append(p.Linhas, lp)
	}
	if top, ok := MaiorDesempenho(linhas, usina); ok {
		p.Destaque = &Destaque{
			Consultor: top.Consultor,
			Setor:     top.Setor,
			Contratos: Quantidade(top, usina),
			Total:     projecao.Moeda(Valor(top, usina)),
		}
	}
	for _, t := range TotaisPorUsina(linhas, usinas) {
		p.ResumoUsinas = append(p.ResumoUsinas, ResumoUsina{
			Usina:       t.Usina,
			Qtd:         t.Qtd,
			Valor:       projecao.Moeda(t.Valor),
			PorContrato: projecao.Moeda(t.PorContrato()),
		})
	}
	return p
}

// MontarPlanilha produz o retrato exportado com as mesmas regras do painel.
func MontarPlanilha(linhas []models.LinhaComissao, e filtro.Estado, cadastro []string) exportacao.Planilha {
	usina := e.UsinaSelecionada()
	usinas := UsinasEmEscopo(linhas, cadastro, usina)
	totais := TotaisPorUsina(linhas, usinas)

	pl := exportacao.Planilha{
		Titulo:  exportacao.TituloPadrao,
		Periodo: e.Periodo.Descricao(),
		Usinas:  usinas,
		Linhas:  make([]exportacao.Linha, 0, len(linhas)),
		Totais: exportacao.Linha{
			Contratos: TotalContratos(linhas, usina),
			Total:     TotalComissao(linhas, usina),
		},
	}
	for _, t := range totais {
		pl.Resumo = append(pl.Resumo, exportacao.ResumoUsina{Usina: t.Usina, ValorPorContrato: t.PorContrato()})
		pl.Totais.Celulas = append(pl.Totais.Celulas, exportacao.Celula{Qtd: t.Qtd, Valor: t.Valor})
	}
	for _, l := range linhas {
		ln := exportacao.Linha{
			Setor:     l.Setor,
			Consultor: l.Consultor,
			Contratos: Quantidade(l, usina),
			Total:     Valor(l, usina),
		}
		for _, nome := range usinas {
			d := l.Detalhe(nome)
			ln.Celulas = append(ln.Celulas, exportacao.Celula{Qtd: int(d.Qtd), Valor: float64(d.Valor)})
		}
		pl.Linhas = append(pl.Linhas, ln)
	}
	return pl
}
