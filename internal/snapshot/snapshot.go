// Package snapshot mantém em memória a última cópia das coleções lidas da API remota.
package snapshot

import (
	"time"

	"github.com/KromaEnergia/painel-usinas/internal/models"
)

// Snapshot é imutável depois de instalado; Epoca identifica a carga que o produziu.
type Snapshot struct {
	Epoca       uint64
	CarregadoEm time.Time
	Clientes    []models.Cliente
	Setores     []models.Setor
	Usuarios    []models.Usuario
	Usinas      []models.Usina

	clientesPorID map[models.ID]int
	setoresPorID  map[models.ID]int
	usuariosPorID map[models.ID]int
	usinasPorID   map[models.ID]int
}

func indexar[T any](itens []T, id func(T) models.ID) map[models.ID]int {
	m := make(map[models.ID]int, len(itens))
	for i, it := range itens {
		m[id(it)] = i
	}
	return m
}

// New monta um Snapshot com os índices por id.
func New(epoca uint64, em time.Time, clientes []models.Cliente, setores []models.Setor, usuarios []models.Usuario, usinas []models.Usina) *Snapshot {
	return &Snapshot{
		Epoca:         epoca,
		CarregadoEm:   em,
		Clientes:      clientes,
		Setores:       setores,
		Usuarios:      usuarios,
		Usinas:        usinas,
		clientesPorID: indexar(clientes, func(c models.Cliente) models.ID { return c.ID }),
		setoresPorID:  indexar(setores, func(s models.Setor) models.ID { return s.ID }),
		usuariosPorID: indexar(usuarios, func(u models.Usuario) models.ID { return u.ID }),
		usinasPorID:   indexar(usinas, func(u models.Usina) models.ID { return u.ID }),
	}
}

func (s *Snapshot) Cliente(id models.ID) (models.Cliente, bool) {
	i, ok := s.clientesPorID[id]
	if !ok {
		return models.Cliente{}, false
	}
	return s.Clientes[i], true
}

func (s *Snapshot) Setor(id models.ID) (models.Setor, bool) {
	i, ok := s.setoresPorID[id]
	if !ok {
		return models.Setor{}, false
	}
	return s.Setores[i], true
}

func (s *Snapshot) Usuario(id models.ID) (models.Usuario, bool) {
	i, ok := s.usuariosPorID[id]
	if !ok {
		return models.Usuario{}, false
	}
	return s.Usuarios[i], true
}

func (s *Snapshot) Usina(id models.ID) (models.Usina, bool) {
	i, ok := s.usinasPorID[id]
	if !ok {
		return models.Usina{}, false
	}
	return s.Usinas[i], true
}

// NomeSetor devolve o nome, ou "" para setor desconhecido/não atribuído.
func (s *Snapshot) NomeSetor(id models.ID) string {
	st, _ := s.Setor(id)
	return st.Nome
}

func (s *Snapshot) NomeUsuario(id models.ID) string {
	u, _ := s.Usuario(id)
	return u.Nome
}

func (s *Snapshot) NomeUsina(id models.ID) string {
	u, _ := s.Usina(id)
	return u.Nome
}

// NomesUsinas na ordem do cadastro.
func (s *Snapshot) NomesUsinas() []string {
	out := make([]string, 0, len(s.Usinas))
	for _, u := range s.Usinas {
		out = append(out, u.Nome)
	}
	return out
}
