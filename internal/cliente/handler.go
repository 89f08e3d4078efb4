package cliente

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/KromaEnergia/painel-usinas/internal/auth"
	"github.com/KromaEnergia/painel-usinas/internal/cadastro"
	"github.com/KromaEnergia/painel-usinas/internal/filtro"
	"github.com/KromaEnergia/painel-usinas/internal/models"
	"github.com/KromaEnergia/painel-usinas/internal/paginacao"
	"github.com/KromaEnergia/painel-usinas/internal/projecao"
	"github.com/KromaEnergia/painel-usinas/internal/remoto"
	"github.com/KromaEnergia/painel-usinas/internal/snapshot"
)

// três anexos de até 20 MB em base64, mais os campos
const limiteCorpo = 3*(cadastro.TamanhoMaximoDocumento/3*4+8) + cadastro.LimiteCorpo

type Snapshots interface {
	Atual(ctx context.Context) (snapshot.Estado, error)
}

// Handler de /clientes.
type Handler struct {
	Repo          *cadastro.Repository
	Snapshots     Snapshots
	TamanhoPagina int
	Agora         func() time.Time
}

func NewHandler(repo *cadastro.Repository, snaps Snapshots, tamanhoPagina int) *Handler {
	return &Handler{
		Repo:          repo,
		Snapshots:     snaps,
		TamanhoPagina: tamanhoPagina,
		Agora:         func() time.Time { return time.Now().In(models.Fuso) },
	}
}

// Listagem é a resposta de GET /clientes.
type Listagem struct {
	Filtros filtro.Estado            `json:"filtros"`
	Pagina  paginacao.Pagina         `json:"pagina"`
	Itens   []projecao.CartaoCliente `json:"itens"`
	Aviso   string                   `json:"aviso,omitempty"`
}

func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) (snapshot.Estado, bool) {
	est, err := h.Snapshots.Atual(r.Context())
	if err != nil {
		http.Error(w, remoto.MensagemUsuario(err), http.StatusBadGateway)
		return est, false
	}
	return est, true
}

// List trata GET /clientes
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	c, ok := auth.CapacidadeDe(r.Context())
	if !ok {
		http.Error(w, "Token ausente", http.StatusUnauthorized)
		return
	}
	estado := filtro.DoPedido(r.URL.Query(), h.Agora(), c)
	if estado.Status != filtro.Todos && !models.StatusFormalizacao(estado.Status).Valido() {
		http.Error(w, "Status inválido", http.StatusBadRequest)
		return
	}
	est, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	filtrados := filtro.FiltrarClientes(est.Snapshot.Clientes, estado, c)
	pagina, invalida := paginaPedida(r.URL.Query(), paginacao.TotalPaginas(len(filtrados), h.TamanhoPagina))
	itens, pag := paginacao.Recortar(filtrados, pagina, h.TamanhoPagina)
	pag.PaginaInvalida = pag.PaginaInvalida || invalida

	cadastro.JSON(w, http.StatusOK, Listagem{
		Filtros: estado,
		Pagina:  pag,
		Itens:   projecao.Cartoes(itens, est.Snapshot),
		Aviso:   est.Aviso,
	})
}

// paginaPedida resolve ?pagina a partir de ?atual. Pedido fora de [1,total] não navega:
// devolve a página atual e marca o pedido como inválido.
func paginaPedida(q url.Values, total int) (int, bool) {
	atual, _ := strconv.Atoi(q.Get("atual"))
	if atual < 1 || atual > total {
		atual = 1
	}
	bruta := q.Get("pagina")
	if bruta == "" {
		return atual, false
	}
	pedida, err := strconv.Atoi(bruta)
	if err != nil {
		return atual, true
	}
	destino := paginacao.Navegar(atual, pedida, total)
	return destino, destino != pedida
}

// visivel busca o cliente {id} no snapshot respeitando a capacidade.
func (h *Handler) visivel(w http.ResponseWriter, r *http.Request) (models.Cliente, auth.Capacidade, bool) {
	c, ok := auth.CapacidadeDe(r.Context())
	if !ok {
		http.Error(w, "Token ausente", http.StatusUnauthorized)
		return models.Cliente{}, c, false
	}
	id, err := cadastro.IDDaRota(r)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return models.Cliente{}, c, false
	}
	est, ok := h.snapshot(w, r)
	if !ok {
		return models.Cliente{}, c, false
	}
	cl, ok := est.Snapshot.Cliente(id)
	if !ok || !c.PodeVerCliente(cl) {
		http.Error(w, "Cliente não encontrado", http.StatusNotFound)
		return models.Cliente{}, c, false
	}
	return cl, c, true
}

// Get trata GET /clientes/{id} (inclui os documentos)
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	cl, _, ok := h.visivel(w, r)
	if !ok {
		return
	}
	cadastro.JSON(w, http.StatusOK, cl)
}

// Create trata POST /clientes
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	c, ok := auth.CapacidadeDe(r.Context())
	if !ok {
		http.Error(w, "Token ausente", http.StatusUnauthorized)
		return
	}
	var dto ClienteDTO
	if err := cadastro.Decodificar(w, r, &dto, limiteCorpo); err != nil {
		cadastro.ResponderErro(w, err)
		return
	}
	dto.normalizar()
	dto.aplicarCapacidade(c)

	resp, err := h.Repo.Criar(r.Context(), dto)
	if err != nil {
		cadastro.ResponderErro(w, err)
		return
	}
	cadastro.ResponderMutacao(w, http.StatusCreated, resp, "Cliente cadastrado com sucesso")
}

// Update trata PUT /clientes/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	atual, c, ok := h.visivel(w, r)
	if !ok {
		return
	}
	var dto ClienteDTO
	if err := cadastro.Decodificar(w, r, &dto, limiteCorpo); err != nil {
		cadastro.ResponderErro(w, err)
		return
	}
	dto.normalizar()
	dto.aplicarCapacidade(c)
	if !c.PodeVerCliente(dto.alvo()) {
		http.Error(w, "Acesso negado", http.StatusForbidden)
		return
	}

	resp, err := h.Repo.Atualizar(r.Context(), atual.ID, dto)
	if err != nil {
		cadastro.ResponderErro(w, err)
		return
	}
	cadastro.ResponderMutacao(w, http.StatusOK, resp, "Cliente atualizado com sucesso")
}

// Delete trata DELETE /clientes/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	atual, _, ok := h.visivel(w, r)
	if !ok {
		return
	}
	resp, err := h.Repo.Deletar(r.Context(), atual.ID)
	if err != nil {
		cadastro.ResponderErro(w, err)
		return
	}
	cadastro.ResponderMutacao(w, http.StatusOK, resp, "Cliente removido com sucesso")
}
