// Package remoto conversa com a API PHP que mantém clientes, setores, usuários, usinas e comissões.
package remoto

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Coleções expostas pela API.
const (
	ColecaoClientes = "clientes"
	ColecaoSetores  = "setores"
	ColecaoUsuarios = "usuarios"
	ColecaoUsinas   = "usinas"
	ColecaoComissao = "comissoes"
)

// Config do cliente HTTP.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	MaxTentativas  int
	BackoffInicial time.Duration
}

// Observador recebe cada tentativa que falhou de forma transitória (métricas).
type Observador interface {
	Retentativa(operacao string)
}

// Client é o acesso à API remota. Seguro para uso concorrente.
type Client struct {
	baseURL        string
	http           *http.Client
	maxTentativas  int
	backoffInicial time.Duration
	logger         *slog.Logger
	observador     Observador
	esperar        func(ctx context.Context, d time.Duration) error
}

// Opcao ajusta o Client na construção.
type Opcao func(*Client)

// ComHTTPClient troca o *http.Client (testes).
func ComHTTPClient(h *http.Client) Opcao { return func(c *Client) { c.http = h } }

// ComObservador registra retentativas.
func ComObservador(o Observador) Opcao { return func(c *Client) { c.observador = o } }

// NewClient cria o Client com defaults: timeout 10s, 3 tentativas, backoff inicial 200ms.
func NewClient(cfg Config, logger *slog.Logger, opts ...Opcao) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxTentativas <= 0 {
		cfg.MaxTentativas = 3
	}
	if cfg.BackoffInicial <= 0 {
		cfg.BackoffInicial = 200 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		http:           &http.Client{Timeout: cfg.Timeout},
		maxTentativas:  cfg.MaxTentativas,
		backoffInicial: cfg.BackoffInicial,
		logger:         logger,
		esperar:        esperarContexto,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func esperarContexto(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type chamada struct {
	op      string
	metodo  string
	caminho string
	query   url.Values
	corpo   any
	repetir bool
}

// executar faz a requisição; quando repetir=true tenta de novo em falhas transitórias com backoff dobrando.
func (c *Client) executar(ctx context.Context, ch chamada) ([]byte, error) {
	var payload []byte
	if ch.corpo != nil {
		b, err := json.Marshal(ch.corpo)
		if err != nil {
			return nil, fmt.Errorf("%s: serializar corpo: %w", ch.op, err)
		}
		payload = b
	}
	tentativas := 1
	if ch.repetir {
		tentativas = c.maxTentativas
	}
	espera := c.backoffInicial
	var ultimo error
	for i := 1; i <= tentativas; i++ {
		raw, err := c.enviar(ctx, ch, payload)
		if err == nil {
			return raw, nil
		}
		ultimo = err
		if !transitorio(err) || i == tentativas || ctx.Err() != nil {
			break
		}
		c.logger.Warn("api remota: nova tentativa",
			slog.String("operacao", ch.op), slog.Int("tentativa", i), slog.Any("error", err))
		if c.observador != nil {
			c.observador.Retentativa(ch.op)
		}
		if err := c.esperar(ctx, espera); err != nil {
			ultimo = &Erro{Operacao: ch.op, Causa: ErrTransporte, Mensagem: err.Error()}
			break
		}
		espera *= 2
	}
	c.logger.Error("api remota: falha", slog.String("operacao", ch.op), slog.Any("error", ultimo))
	return nil, ultimo
}

func (c *Client) enviar(ctx context.Context, ch chamada, payload []byte) ([]byte, error) {
	u := c.baseURL + "/" + strings.TrimLeft(ch.caminho, "/")
	if len(ch.query) > 0 {
		u += "?" + ch.query.Encode()
	}
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, ch.metodo, u, body)
	if err != nil {
		return nil, fmt.Errorf("%s: montar requisição: %w", ch.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Erro{Operacao: ch.op, Causa: ErrTransporte, Mensagem: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Erro{Operacao: ch.op, Causa: ErrTransporte, Mensagem: fmt.Sprintf("ler resposta: %v", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := &Erro{Operacao: ch.op, Status: resp.StatusCode, Causa: ErrStatus}
		var env envelope
		if json.Unmarshal(raw, &env) == nil {
			e.Mensagem = env.mensagem()
		}
		return nil, e
	}
	return raw, nil
}

func listar[T any](ctx context.Context, c *Client, colecao string, query url.Values) ([]T, error) {
	op := "listar " + colecao
	raw, err := c.executar(ctx, chamada{op: op, metodo: http.MethodGet, caminho: colecao, query: query, repetir: true})
	if err != nil {
		return nil, err
	}
	return decodeLista[T](op, raw)
}

// Criar envia POST /{colecao}. Mutações nunca são repetidas.
func (c *Client) Criar(ctx context.Context, colecao string, dados any) (Resposta, error) {
	return c.mutar(ctx, "criar "+colecao, http.MethodPost, colecao, dados)
}

// Atualizar envia PUT /{colecao}/{id}.
func (c *Client) Atualizar(ctx context.Context, colecao, id string, dados any) (Resposta, error) {
	return c.mutar(ctx, "atualizar "+colecao, http.MethodPut, colecao+"/"+url.PathEscape(id), dados)
}

// Deletar envia DELETE /{colecao}/{id}.
func (c *Client) Deletar(ctx context.Context, colecao, id string) (Resposta, error) {
	return c.mutar(ctx, "deletar "+colecao, http.MethodDelete, colecao+"/"+url.PathEscape(id), nil)
}

func (c *Client) mutar(ctx context.Context, op, metodo, caminho string, dados any) (Resposta, error) {
	raw, err := c.executar(ctx, chamada{op: op, metodo: metodo, caminho: caminho, corpo: dados})
	if err != nil {
		return Resposta{}, err
	}
	env, err := decodeEnvelope(op, raw)
	if err != nil {
		return Resposta{}, err
	}
	return Resposta{ID: env.ID, Mensagem: env.Message, Dados: env.Data}, nil
}
