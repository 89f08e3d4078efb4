package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coletar(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMiddlewareUsaTemplateDaRota(t *testing.T) {
	m := NewMetrics()
	r := mux.NewRouter()
	r.Use(m.Middleware)
	r.HandleFunc("/clientes/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clientes/42", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	body := coletar(t, m)
	assert.Contains(t, body, `painel_http_requests_total{code="418",method="GET",route="/clientes/{id}"} 1`)
	assert.Contains(t, body, `painel_http_request_duration_seconds_bucket{route="/clientes/{id}"`)
}

func TestObservadores(t *testing.T) {
	m := NewMetrics()
	m.Retentativa("listar clientes")
	m.Retentativa("listar clientes")
	m.Recarga(true, 10*time.Millisecond)
	m.Recarga(false, time.Second)

	body := coletar(t, m)
	assert.Contains(t, body, `painel_api_retentativas_total{operacao="listar clientes"} 2`)
	assert.Contains(t, body, `painel_snapshot_recargas_total{resultado="ok"} 1`)
	assert.Contains(t, body, `painel_snapshot_recargas_total{resultado="erro"} 1`)
	assert.Contains(t, body, `painel_snapshot_recarga_duracao_seconds_count 2`)
}

func TestMetricsNil(t *testing.T) {
	var m *Metrics
	m.Retentativa("x")
	m.Recarga(true, 0)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
