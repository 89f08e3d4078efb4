package comissao

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/KromaEnergia/painel-usinas/internal/auth"
	"github.com/KromaEnergia/painel-usinas/internal/exportacao"
	"github.com/KromaEnergia/painel-usinas/internal/filtro"
	"github.com/KromaEnergia/painel-usinas/internal/models"
	"github.com/KromaEnergia/painel-usinas/internal/remoto"
	"github.com/KromaEnergia/painel-usinas/internal/snapshot"
)

// Snapshots é o Store visto pelos handlers.
type Snapshots interface {
	Atual(ctx context.Context) (snapshot.Estado, error)
}

// Handler do painel de comissões e da exportação.
type Handler struct {
	Servico   *Servico
	Snapshots Snapshots
	Historico exportacao.Historico
	Logger    *slog.Logger
	Agora     func() time.Time
}

// NewHandler cria o Handler; historico pode ser nil (histórico desabilitado).
func NewHandler(servico *Servico, snaps Snapshots, historico exportacao.Historico, logger *slog.Logger) *Handler {
	return &Handler{
		Servico:   servico,
		Snapshots: snaps,
		Historico: historico,
		Logger:    logger,
		Agora:     func() time.Time { return time.Now().In(models.Fuso) },
	}
}

type consulta struct {
	cap    auth.Capacidade
	estado filtro.Estado
	linhas []models.LinhaComissao
	snap   *snapshot.Snapshot
	aviso  string
}

// consultar resolve filtros, snapshot e linhas do período. Em erro já respondeu ao cliente.
func (h *Handler) consultar(w http.ResponseWriter, r *http.Request) (consulta, bool) {
	// 1) capacidade da sessão
	c, ok := auth.CapacidadeDe(r.Context())
	if !ok {
		http.Error(w, "Token ausente", http.StatusUnauthorized)
		return consulta{}, false
	}

	// 2) filtros da query, já recortados pela capacidade
	estado := filtro.DoPedido(r.URL.Query(), h.Agora(), c)

	// 3) setores e usinas do snapshot
	est, err := h.Snapshots.Atual(r.Context())
	if err != nil {
		http.Error(w, remoto.MensagemUsuario(err), http.StatusBadGateway)
		return consulta{}, false
	}

	// 4) linhas do período
	linhas, err := h.Servico.Linhas(r.Context(), estado.Periodo)
	if err != nil {
		http.Error(w, remoto.MensagemUsuario(err), remoto.StatusHTTP(err))
		return consulta{}, false
	}

	return consulta{
		cap:    c,
		estado: estado,
		linhas: filtro.FiltrarComissoes(linhas, estado, c, est.Snapshot.Setores),
		snap:   est.Snapshot,
		aviso:  est.Aviso,
	}, true
}

// Painel trata GET /comissoes
func (h *Handler) Painel(w http.ResponseWriter, r *http.Request) {
	q, ok := h.consultar(w, r)
	if !ok {
		return
	}
	p := MontarPainel(q.linhas, q.estado, q.snap.NomesUsinas())
	p.Aviso = q.aviso

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// Exportar trata GET /comissoes/exportar
func (h *Handler) Exportar(w http.ResponseWriter, r *http.Request) {
	q, ok := h.consultar(w, r)
	if !ok {
		return
	}
	pl := MontarPlanilha(q.linhas, q.estado, q.snap.NomesUsinas())

	var buf bytes.Buffer
	if err := exportacao.Escrever(&buf, pl); err != nil {
		if errors.Is(err, exportacao.ErrSemLinhas) {
			http.Error(w, "Nenhum dado para exportar", http.StatusUnprocessableEntity)
			return
		}
		h.Logger.Error("gerar planilha", slog.Any("error", err))
		http.Error(w, "Erro ao gerar planilha", http.StatusInternalServerError)
		return
	}

	agora := h.Agora()
	arquivo := exportacao.NomeArquivo(agora)
	w.Header().Set("Content-Type", exportacao.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+arquivo+`"`)
	_, _ = w.Write(buf.Bytes())

	h.registrar(r, q, pl, arquivo)
}

// registrar grava o histórico sem afetar a resposta já enviada.
func (h *Handler) registrar(r *http.Request, q consulta, pl exportacao.Planilha, arquivo string) {
	if h.Historico == nil {
		return
	}
	reg := &exportacao.Registro{
		UsuarioID:     int64(q.cap.UsuarioID),
		Usuario:       q.cap.Nome,
		Papel:         string(q.cap.Papel),
		Periodo:       pl.Periodo,
		Usina:         q.estado.UsinaSelecionada(),
		Linhas:        len(pl.Linhas),
		TotalComissao: pl.Totais.Total,
		Arquivo:       arquivo,
	}
	if err := h.Historico.Salvar(r.Context(), reg); err != nil {
		h.Logger.Warn("registrar exportação", slog.Any("error", err))
	}
}
