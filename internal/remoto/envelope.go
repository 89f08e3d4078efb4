package remoto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/KromaEnergia/painel-usinas/internal/models"
)

// envelope é o objeto que a API devolve em mutações e no login.
type envelope struct {
	Success *bool           `json:"success"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	User    json.RawMessage `json:"user"`
	Data    json.RawMessage `json:"data"`
	ID      models.ID       `json:"id"`
}

func (e envelope) mensagem() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// falhou: success:false explícito, ou um campo error preenchido sem success.
func (e envelope) falhou() bool {
	if e.Success != nil {
		return !*e.Success
	}
	return e.Error != ""
}

// Resposta resume o resultado de uma mutação.
type Resposta struct {
	ID       models.ID       `json:"id,omitempty"`
	Mensagem string          `json:"mensagem,omitempty"`
	Dados    json.RawMessage `json:"dados,omitempty"`
}

func decodeEnvelope(op string, raw []byte) (envelope, error) {
	var env envelope
	t := bytes.TrimSpace(raw)
	if len(t) == 0 {
		return env, nil
	}
	if t[0] != '{' {
		return env, &Erro{Operacao: op, Causa: ErrResposta, Mensagem: "esperado objeto JSON"}
	}
	if err := json.Unmarshal(t, &env); err != nil {
		return env, &Erro{Operacao: op, Causa: ErrResposta, Mensagem: err.Error()}
	}
	if env.falhou() {
		msg := env.mensagem()
		if msg == "" {
			msg = "operação não concluída"
		}
		return env, &Erro{Operacao: op, Causa: ErrNegocio, Mensagem: msg}
	}
	return env, nil
}

// decodeLista aceita array puro, {"data":[...]} ou um envelope de falha.
func decodeLista[T any](op string, raw []byte) ([]T, error) {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 || bytes.Equal(t, []byte("null")) {
		return []T{}, nil
	}
	if t[0] == '{' {
		env, err := decodeEnvelope(op, t)
		if err != nil {
			return nil, err
		}
		if len(env.Data) == 0 {
			return nil, &Erro{Operacao: op, Causa: ErrResposta, Mensagem: "lista ausente na resposta"}
		}
		t = env.Data
	}
	var out []T
	if err := json.Unmarshal(t, &out); err != nil {
		return nil, &Erro{Operacao: op, Causa: ErrResposta, Mensagem: fmt.Sprintf("lista inválida: %v", err)}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
