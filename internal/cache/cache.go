// Package cache guarda em Redis as respostas de comissões por período, com invalidação por versão.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const chaveVersao = "painel:versao"

// Conectar abre o cliente Redis e confirma com PING.
func Conectar(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: ping: %w", err)
	}
	return client, nil
}

// Cache com versão global. Um Cache nil (ou sem client) apenas repassa para o loader.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) ativo() bool { return c != nil && c.client != nil }

// Versao lê a versão corrente, inicializando em 1.
func (c *Cache) Versao(ctx context.Context) (int64, error) {
	if !c.ativo() {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, chaveVersao).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.Set(ctx, chaveVersao, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	if ver <= 0 {
		ver = 1
		if err := c.client.Set(ctx, chaveVersao, ver, 0).Err(); err != nil {
			return 0, err
		}
	}
	return ver, nil
}

// Chave monta a chave com a versão corrente no final.
func (c *Cache) Chave(ctx context.Context, partes ...string) (string, error) {
	base := strings.Join(partes, ":")
	if !c.ativo() {
		return base, nil
	}
	ver, err := c.Versao(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d", base, ver), nil
}

// BuscarJSON lê a chave ou popula com o loader.
func (c *Cache) BuscarJSON(ctx context.Context, chave string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("cache: loader obrigatório")
	}
	if c.ativo() {
		payload, err := c.client.Get(ctx, chave).Bytes()
		if err == nil {
			return json.Unmarshal(payload, dest)
		}
		if !errors.Is(err, redis.Nil) {
			return err
		}
	}
	valor, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(valor)
	if err != nil {
		return err
	}
	if c.ativo() {
		if err := c.client.Set(ctx, chave, raw, c.ttl).Err(); err != nil {
			return err
		}
	}
	return json.Unmarshal(raw, dest)
}

// Incrementar invalida tudo que foi gravado com a versão anterior.
func (c *Cache) Incrementar(ctx context.Context) error {
	if !c.ativo() {
		return nil
	}
	return c.client.Incr(ctx, chaveVersao).Err()
}
