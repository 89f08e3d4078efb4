package projecao

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/KromaEnergia/painel-usinas/internal/models"
)

type nomesFake map[models.ID]string

func (n nomesFake) NomeSetor(id models.ID) string   { return n[id] }
func (n nomesFake) NomeUsuario(id models.ID) string { return n[id] }
func (n nomesFake) NomeUsina(id models.ID) string   { return n[id] }

func TestBadges(t *testing.T) {
	assert.Equal(t, Badge{"pending", "Pendente", "badge-warning"}, BadgeFormalizacao("pending"))
	assert.Equal(t, "badge-info", BadgeFormalizacao("waiting_formalization").Classe)
	assert.Equal(t, "Formalizado", BadgeFormalizacao("formalized").Rotulo)
	assert.Equal(t, Badge{"rejected", "Reprovado", "badge-danger"}, BadgeAprovacao("rejected"))
	assert.Equal(t, Badge{"xyz", "xyz", "badge-secondary"}, BadgeFormalizacao("xyz"))
	assert.Equal(t, "Sem status", BadgeAprovacao("").Rotulo)
}

func TestCartao(t *testing.T) {
	n := nomesFake{10: "Norte", 20: "Ana"}
	c := models.Cliente{
		ID: 7, Nome: "Maria", CPF: "12345678900", SetorID: 10, UsuarioID: 20,
		Status: "formalized", Documento1: "ZGFkb3M=", Documento3: "eA==",
		CriadoEm: models.Data{Time: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)},
	}
	got := Cartao(c, n)
	assert.Equal(t, "123.456.789-00", got.CPF)
	assert.Equal(t, "Norte", got.Setor)
	assert.Equal(t, "Ana", got.Consultor)
	assert.Equal(t, "Não atribuído", got.Usina)
	assert.Equal(t, "05/03/2024", got.CriadoEm)
	assert.Equal(t, 2, got.Documentos)
	assert.Equal(t, "badge-success", got.Status.Classe)

	semData := Cartao(models.Cliente{ID: 8}, n)
	assert.Equal(t, "", semData.CriadoEm)
}

func TestValores(t *testing.T) {
	assert.Equal(t, "R$ 1.234,50", Moeda(1234.5).Texto)
	assert.Equal(t, "33,3%", Percentual(100.0/3).Texto)
}
