package cadastro

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/KromaEnergia/painel-usinas/internal/models"
	"github.com/KromaEnergia/painel-usinas/internal/remoto"
)

// LimiteCorpo padrão dos cadastros sem anexos.
const LimiteCorpo = 1 << 20

// JSON escreve v com o status informado.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ResponderErro converte erros de payload, validação e da API remota.
func ResponderErro(w http.ResponseWriter, err error) {
	var ev *ErrValidacao
	switch {
	case errors.As(err, &ev):
		JSON(w, http.StatusBadRequest, map[string]any{"erro": "Dados inválidos", "campos": ev.Campos})
	case errors.Is(err, ErrPayload):
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
	default:
		http.Error(w, remoto.MensagemUsuario(err), remoto.StatusHTTP(err))
	}
}

// ResponderMutacao devolve o resultado da API remota.
func ResponderMutacao(w http.ResponseWriter, status int, resp remoto.Resposta, padrao string) {
	if resp.Mensagem == "" {
		resp.Mensagem = padrao
	}
	JSON(w, status, resp)
}

// IDDaRota lê {id} do mux.
func IDDaRota(r *http.Request) (models.ID, error) {
	return models.ParseID(mux.Vars(r)["id"])
}

// Lista é a resposta das listagens simples.
type Lista[T any] struct {
	Itens []T    `json:"itens"`
	Aviso string `json:"aviso,omitempty"`
}
