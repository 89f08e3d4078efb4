package cadastro

import (
	"net/http"
)

// Mutacoes implementa POST, PUT e DELETE de um cadastro simples (somente admin).
type Mutacoes[T any] struct {
	Repo *Repository
	// Nome no singular, usado nas mensagens ("Setor", "Usina").
	Nome string
	// Feminino ajusta a concordância ("cadastrada").
	Feminino bool
	// Preparar normaliza o DTO já validado e aplica regras que dependem da operação.
	Preparar func(dto *T, criando bool) error
}

func (m Mutacoes[T]) mensagem(verbo string) string {
	if m.Feminino {
		return m.Nome + " " + verbo + "a com sucesso"
	}
	return m.Nome + " " + verbo + "o com sucesso"
}

func (m Mutacoes[T]) decodificar(w http.ResponseWriter, r *http.Request, criando bool) (T, bool) {
	var dto T
	if err := Decodificar(w, r, &dto, LimiteCorpo); err != nil {
		ResponderErro(w, err)
		return dto, false
	}
	if m.Preparar != nil {
		if err := m.Preparar(&dto, criando); err != nil {
			ResponderErro(w, err)
			return dto, false
		}
	}
	return dto, true
}

// Create trata POST
func (m Mutacoes[T]) Create(w http.ResponseWriter, r *http.Request) {
	dto, ok := m.decodificar(w, r, true)
	if !ok {
		return
	}
	resp, err := m.Repo.Criar(r.Context(), dto)
	if err != nil {
		ResponderErro(w, err)
		return
	}
	ResponderMutacao(w, http.StatusCreated, resp, m.mensagem("cadastrad"))
}

// Update trata PUT /{id}
func (m Mutacoes[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := IDDaRota(r)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	dto, ok := m.decodificar(w, r, false)
	if !ok {
		return
	}
	resp, err := m.Repo.Atualizar(r.Context(), id, dto)
	if err != nil {
		ResponderErro(w, err)
		return
	}
	ResponderMutacao(w, http.StatusOK, resp, m.mensagem("atualizad"))
}

// Delete trata DELETE /{id}
func (m Mutacoes[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := IDDaRota(r)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	resp, err := m.Repo.Deletar(r.Context(), id)
	if err != nil {
		ResponderErro(w, err)
		return
	}
	ResponderMutacao(w, http.StatusOK, resp, m.mensagem("removid"))
}
