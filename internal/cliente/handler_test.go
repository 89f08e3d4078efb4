package cliente

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KromaEnergia/painel-usinas/internal/auth"
	"github.com/KromaEnergia/painel-usinas/internal/models"
	"github.com/KromaEnergia/painel-usinas/internal/remoto"
	"github.com/KromaEnergia/painel-usinas/internal/snapshot"
)

type chamadaAPI struct {
	metodo, colecao, id string
	dados               any
}

type apiFake struct {
	chamadas []chamadaAPI
	err      error
}

func (a *apiFake) Criar(_ context.Context, colecao string, dados any) (remoto.Resposta, error) {
	a.chamadas = append(a.chamadas, chamadaAPI{"POST", colecao, "", dados})
	return remoto.Resposta{ID: 99}, a.err
}

func (a *apiFake) Atualizar(_ context.Context, colecao, id string, dados any) (remoto.Resposta, error) {
	a.chamadas = append(a.chamadas, chamadaAPI{"PUT", colecao, id, dados})
	return remoto.Resposta{}, a.err
}

func (a *apiFake) Deletar(_ context.Context, colecao, id string) (remoto.Resposta, error) {
	a.chamadas = append(a.chamadas, chamadaAPI{"DELETE", colecao, id, nil})
	return remoto.Resposta{}, a.err
}

type invalidadorFake struct{ n int }

func (i *invalidadorFake) Invalidar(context.Context) { i.n++ }

type snapshotsFake struct{ snap *snapshot.Snapshot }

func (s snapshotsFake) Atual(context.Context) (snapshot.Estado, error) {
	return snapshot.Estado{Snapshot: s.snap}, nil
}

var (
	capAdmin     = auth.Capacidade{UsuarioID: 1, Papel: models.PapelAdmin, GerenciaCadastros: true}
	capConsultor = auth.Capacidade{UsuarioID: 20, Papel: models.PapelConsultor, SetorID: 10, SetorFixo: true, ConsultorFixo: true}
)

func montar(t *testing.T) (*mux.Router, *apiFake, *invalidadorFake) {
	t.Helper()
	var clientes []models.Cliente
	for i := 1; i <= 25; i++ {
		c := models.Cliente{ID: models.ID(i), Nome: "Cliente", CPF: "12345678900", SetorID: 11, UsuarioID: 21, Status: "pending"}
		if i <= 3 {
			c.SetorID, c.UsuarioID = 10, 20
		}
		clientes = append(clientes, c)
	}
	snap := snapshot.New(1, time.Now(), clientes,
		[]models.Setor{{ID: 10, Nome: "Norte"}, {ID: 11, Nome: "Sul"}},
		[]models.Usuario{{ID: 20, Nome: "Ana"}, {ID: 21, Nome: "Bia"}},
		nil)

	api := &apiFake{}
	inv := &invalidadorFake{}
	h := NewHandler(NewRepository(api, inv), snapshotsFake{snap}, 10)

	r := mux.NewRouter()
	r.HandleFunc("/clientes", h.List).Methods(http.MethodGet)
	r.HandleFunc("/clientes", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/clientes/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/clientes/{id}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/clientes/{id}", h.Delete).Methods(http.MethodDelete)
	return r, api, inv
}

func fazer(r http.Handler, metodo, alvo, corpo string, c auth.Capacidade) *httptest.ResponseRecorder {
	req := httptest.NewRequest(metodo, alvo, strings.NewReader(corpo))
	req = req.WithContext(auth.ComCapacidade(req.Context(), c))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestListPaginaEFiltra(t *testing.T) {
	r, _, _ := montar(t)

	rec := fazer(r, http.MethodGet, "/clientes?pagina=3", "", capAdmin)
	require.Equal(t, http.StatusOK, rec.Code)
	var l struct {
		Pagina struct {
			Atual        int   `json:"atual"`
			TotalPaginas int   `json:"totalPaginas"`
			Janela       []any `json:"janela"`
		} `json:"pagina"`
		Itens []struct {
			ID    int64  `json:"id"`
			CPF   string `json:"cpf"`
			Setor string `json:"setor"`
		} `json:"itens"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&l))
	assert.Equal(t, 3, l.Pagina.Atual)
	assert.Equal(t, 3, l.Pagina.TotalPaginas)
	require.Len(t, l.Itens, 5)
	assert.Equal(t, int64(21), l.Itens[0].ID)
	assert.Equal(t, "123.456.789-00", l.Itens[0].CPF)
	assert.Equal(t, "Sul", l.Itens[0].Setor)

	rec = fazer(r, http.MethodGet, "/clientes?setor=11", "", capConsultor)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&l))
	assert.Len(t, l.Itens, 3)
}

func TestListPaginaForaDoIntervaloMantemAtual(t *testing.T) {
	r, _, _ := montar(t)
	var l struct {
		Pagina struct {
			Atual          int  `json:"atual"`
			PaginaInvalida bool `json:"paginaInvalida"`
		} `json:"pagina"`
		Itens []struct {
			ID int64 `json:"id"`
		} `json:"itens"`
	}

	casos := []struct {
		alvo     string
		atual    int
		invalida bool
	}{
		{"/clientes?atual=2&pagina=99", 2, true},
		{"/clientes?atual=2&pagina=0", 2, true},
		{"/clientes?atual=2&pagina=abc", 2, true},
		{"/clientes?atual=2&pagina=3", 3, false},
		{"/clientes?atual=2", 2, false},
		{"/clientes?atual=40&pagina=99", 1, true},
	}
	for _, c := range casos {
		t.Run(c.alvo, func(t *testing.T) {
			l.Pagina.PaginaInvalida = false
			rec := fazer(r, http.MethodGet, c.alvo, "", capAdmin)
			require.Equal(t, http.StatusOK, rec.Code)
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&l))
			assert.Equal(t, c.atual, l.Pagina.Atual)
			assert.Equal(t, c.invalida, l.Pagina.PaginaInvalida)
			assert.NotEmpty(t, l.Itens)
		})
	}
}

func TestListLimparDescartaFiltros(t *testing.T) {
	r, _, _ := montar(t)
	var l struct {
		Filtros struct {
			SetorID string `json:"setor"`
			Busca   string `json:"busca"`
		} `json:"filtros"`
		Pagina struct {
			TotalItens int `json:"totalItens"`
		} `json:"pagina"`
	}

	rec := fazer(r, http.MethodGet, "/clientes?setor=10&busca=nada", "", capAdmin)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&l))
	assert.Equal(t, 0, l.Pagina.TotalItens)

	rec = fazer(r, http.MethodGet, "/clientes?setor=10&busca=nada&limpar=1", "", capAdmin)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&l))
	assert.Equal(t, "all", l.Filtros.SetorID)
	assert.Equal(t, "", l.Filtros.Busca)
	assert.Equal(t, 25, l.Pagina.TotalItens)
}

func TestListStatusInvalido(t *testing.T) {
	r, _, _ := montar(t)
	rec := fazer(r, http.MethodGet, "/clientes?status=approved", "", capAdmin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateConsultorFixaSetorEConsultor(t *testing.T) {
	r, api, inv := montar(t)
	corpo := `{"name":" Maria ","cpf":"123.456.789-00","email":"maria@x.com","sector_id":11,"user_id":21}`
	rec := fazer(r, http.MethodPost, "/clientes", corpo, capConsultor)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, api.chamadas, 1)
	dto := api.chamadas[0].dados.(ClienteDTO)
	assert.Equal(t, "clientes", api.chamadas[0].colecao)
	assert.Equal(t, "Maria", dto.Nome)
	assert.Equal(t, "12345678900", dto.CPF)
	assert.Equal(t, models.ID(10), dto.SetorID)
	assert.Equal(t, models.ID(20), dto.UsuarioID)
	assert.Equal(t, "pending", dto.Status)
	assert.Equal(t, 1, inv.n)
	assert.Contains(t, rec.Body.String(), "Cliente cadastrado com sucesso")
}

func TestCreateValidacao(t *testing.T) {
	r, api, inv := montar(t)
	rec := fazer(r, http.MethodPost, "/clientes", `{"cpf":"123","email":"x","status":"approved"}`, capAdmin)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Campos map[string]string `json:"campos"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "obrigatório", body.Campos["name"])
	assert.Contains(t, body.Campos, "cpf")
	assert.Contains(t, body.Campos, "email")
	assert.Contains(t, body.Campos, "status")
	assert.Empty(t, api.chamadas)
	assert.Zero(t, inv.n)

	rec = fazer(r, http.MethodPost, "/clientes", `{"name":`, capAdmin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateClienteDeOutroConsultor(t *testing.T) {
	r, api, _ := montar(t)
	rec := fazer(r, http.MethodPut, "/clientes/5", `{"name":"X","cpf":"12345678900"}`, capConsultor)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, api.chamadas)

	rec = fazer(r, http.MethodPut, "/clientes/2", `{"name":"X","cpf":"12345678900"}`, capConsultor)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "2", api.chamadas[0].id)
}

func TestDeleteErroDeNegocio(t *testing.T) {
	r, api, inv := montar(t)
	api.err = &remoto.Erro{Operacao: "deletar clientes", Causa: remoto.ErrNegocio, Mensagem: "Cliente possui contrato"}

	rec := fazer(r, http.MethodDelete, "/clientes/4", "", capAdmin)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cliente possui contrato")
	assert.Zero(t, inv.n)
}

func TestGetIDInvalido(t *testing.T) {
	r, _, _ := montar(t)
	assert.Equal(t, http.StatusBadRequest, fazer(r, http.MethodGet, "/clientes/abc", "", capAdmin).Code)
	assert.Equal(t, http.StatusNotFound, fazer(r, http.MethodGet, "/clientes/999", "", capAdmin).Code)
	assert.Equal(t, http.StatusOK, fazer(r, http.MethodGet, "/clientes/1", "", capConsultor).Code)
}
