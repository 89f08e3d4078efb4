package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novoCacheTeste(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, time.Minute), mr
}

type valor struct {
	Total float64 `json:"total"`
}

func TestBuscarJSONUsaCache(t *testing.T) {
	c, _ := novoCacheTeste(t)
	ctx := context.Background()
	chamadas := 0
	loader := func(context.Context) (any, error) {
		chamadas++
		return valor{Total: 300}, nil
	}

	chave, err := c.Chave(ctx, "comissoes", "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, "comissoes:2024-03-01:2024-03-31:1", chave)

	var v1, v2 valor
	require.NoError(t, c.BuscarJSON(ctx, chave, &v1, loader))
	require.NoError(t, c.BuscarJSON(ctx, chave, &v2, loader))
	assert.Equal(t, 300.0, v2.Total)
	assert.Equal(t, 1, chamadas)
}

func TestIncrementarMudaAChave(t *testing.T) {
	c, _ := novoCacheTeste(t)
	ctx := context.Background()

	antes, err := c.Chave(ctx, "comissoes")
	require.NoError(t, err)
	require.NoError(t, c.Incrementar(ctx))
	depois, err := c.Chave(ctx, "comissoes")
	require.NoError(t, err)

	assert.NotEqual(t, antes, depois)
	assert.Equal(t, "comissoes:2", depois)
}

func TestTTLAplicado(t *testing.T) {
	c, mr := novoCacheTeste(t)
	ctx := context.Background()
	var v valor
	require.NoError(t, c.BuscarJSON(ctx, "k", &v, func(context.Context) (any, error) { return valor{Total: 1}, nil }))
	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("k"))
}

func TestCacheNilRepassa(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	chave, err := c.Chave(ctx, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "a:b", chave)
	assert.NoError(t, c.Incrementar(ctx))

	var v valor
	require.NoError(t, c.BuscarJSON(ctx, chave, &v, func(context.Context) (any, error) { return valor{Total: 7}, nil }))
	assert.Equal(t, 7.0, v.Total)

	erro := errors.New("api fora")
	assert.ErrorIs(t, c.BuscarJSON(ctx, chave, &v, func(context.Context) (any, error) { return nil, erro }), erro)
}
