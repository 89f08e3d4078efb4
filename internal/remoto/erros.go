package remoto

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransporte: a requisição não chegou a ter resposta (rede, DNS, timeout).
	ErrTransporte = errors.New("falha de comunicação com a API")
	// ErrStatus: resposta fora da faixa 2xx.
	ErrStatus = errors.New("API respondeu com erro")
	// ErrNegocio: resposta 2xx com success:false.
	ErrNegocio = errors.New("API recusou a operação")
	// ErrResposta: corpo que não pôde ser decodificado.
	ErrResposta = errors.New("resposta inesperada da API")
	// ErrSemUsuario: login aceito mas a resposta não trouxe o usuário.
	ErrSemUsuario = errors.New("resposta de login sem usuário")
)

// Erro carrega o status HTTP e a mensagem devolvida pela API.
type Erro struct {
	Operacao string
	Status   int
	Mensagem string
	Causa    error
}

func (e *Erro) Error() string {
	msg := e.Mensagem
	if msg == "" {
		msg = e.Causa.Error()
	}
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Operacao, msg, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Operacao, msg)
}

func (e *Erro) Unwrap() error { return e.Causa }

// transitorio indica se vale tentar de novo: apenas falhas de transporte, 5xx e 429.
func transitorio(err error) bool {
	var e *Erro
	if !errors.As(err, &e) {
		return false
	}
	if errors.Is(e.Causa, ErrTransporte) {
		return true
	}
	return errors.Is(e.Causa, ErrStatus) && (e.Status >= 500 || e.Status == http.StatusTooManyRequests)
}

// MensagemUsuario traduz o erro para a notificação exibida no painel.
func MensagemUsuario(err error) string {
	var e *Erro
	switch {
	case errors.As(err, &e) && errors.Is(err, ErrNegocio) && e.Mensagem != "":
		return e.Mensagem
	case errors.Is(err, ErrTransporte):
		return "Não foi possível conectar ao servidor. Tente novamente."
	case errors.As(err, &e) && e.Status == http.StatusNotFound:
		return "Registro não encontrado."
	case errors.As(err, &e) && e.Mensagem != "":
		return e.Mensagem
	default:
		return "Erro ao comunicar com o servidor."
	}
}

// StatusHTTP escolhe o status devolvido ao painel quando a API remota falha.
func StatusHTTP(err error) int {
	var e *Erro
	switch {
	case errors.Is(err, ErrNegocio):
		return http.StatusUnprocessableEntity
	case errors.As(err, &e) && e.Status == http.StatusNotFound:
		return http.StatusNotFound
	case errors.As(err, &e) && e.Status >= 400 && e.Status < 500 && e.Status != http.StatusTooManyRequests:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
