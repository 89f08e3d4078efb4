// Package observability expõe as métricas Prometheus do painel.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics reúne o registry e os coletores do serviço.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	retentativas    *prometheus.CounterVec
	recargas        *prometheus.CounterVec
	recargaDuracao  prometheus.Histogram
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "painel_http_requests_total",
		Help: "Requisições HTTP por rota, método e status.",
	}, []string{"route", "method", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "painel_http_request_duration_seconds",
		Help:    "Duração das requisições HTTP por rota.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	retentativas := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "painel_api_retentativas_total",
		Help: "Tentativas repetidas contra a API remota por operação.",
	}, []string{"operacao"})
	recargas := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "painel_snapshot_recargas_total",
		Help: "Recargas do snapshot por resultado.",
	}, []string{"resultado"})
	recargaDuracao := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "painel_snapshot_recarga_duracao_seconds",
		Help:    "Duração da busca paralela das coleções.",
		Buckets: prometheus.DefBuckets,
	})
	registry.MustRegister(requests, duration, retentativas, recargas, recargaDuracao)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		retentativas:    retentativas,
		recargas:        recargas,
		recargaDuracao:  recargaDuracao,
	}
}

// Handler de /metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware registra contagem e duração por template de rota do mux.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// Retentativa implementa remoto.Observador.
func (m *Metrics) Retentativa(operacao string) {
	if m == nil {
		return
	}
	m.retentativas.WithLabelValues(operacao).Inc()
}

// Recarga implementa snapshot.Observador.
func (m *Metrics) Recarga(sucesso bool, duracao time.Duration) {
	if m == nil {
		return
	}
	resultado := "erro"
	if sucesso {
		resultado = "ok"
	}
	m.recargas.WithLabelValues(resultado).Inc()
	m.recargaDuracao.Observe(duracao.Seconds())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unknown"
}
