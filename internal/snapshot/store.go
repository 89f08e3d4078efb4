package snapshot

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/KromaEnergia/painel-usinas/internal/models"
	"github.com/KromaEnergia/painel-usinas/internal/remoto"
)

// ErrIndisponivel: nenhuma carga teve sucesso até agora.
var ErrIndisponivel = errors.New("dados ainda não carregados")

// Fonte é a API remota do ponto de vista do snapshot.
type Fonte interface {
	ListarClientes(ctx context.Context) ([]models.Cliente, error)
	ListarSetores(ctx context.Context) ([]models.Setor, error)
	ListarUsuarios(ctx context.Context) ([]models.Usuario, error)
	ListarUsinas(ctx context.Context) ([]models.Usina, error)
}

// Observador é notificado a cada carga concluída.
type Observador interface {
	Recarga(sucesso bool, duracao time.Duration)
}

// Estado é o que as telas consomem: o snapshot e, se a última carga falhou, um aviso.
type Estado struct {
	Snapshot *Snapshot
	Aviso    string
}

// Store guarda o snapshot corrente.
//
// Cada carga recebe uma época ao COMEÇAR; ao terminar só é instalada se for mais nova que a
// instalada, de modo que uma resposta atrasada nunca sobrescreve uma carga iniciada depois.
// Invalidar marca como vencido tudo que começou antes da escrita.
type Store struct {
	fonte      Fonte
	ttl        time.Duration
	logger     *slog.Logger
	observador Observador
	agora      func() time.Time
	grupo      singleflight.Group

	// prazo da carga compartilhada, independente de quem a disparou
	timeoutCarga time.Duration

	proximaEpoca atomic.Uint64

	mu           sync.RWMutex
	atual        *Snapshot
	minimaEpoca  uint64
	ultimoErro   error
	ultimoErroEm time.Time
	aoInvalidar  []func(context.Context) error
}

// NewStore cria o Store; ttl <= 0 usa 30s.
func NewStore(fonte Fonte, ttl time.Duration, logger *slog.Logger) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{fonte: fonte, ttl: ttl, logger: logger, agora: time.Now, timeoutCarga: 30 * time.Second}
}

// ComTimeoutCarga limita a duração de cada recarga disparada por Atual.
func (s *Store) ComTimeoutCarga(d time.Duration) *Store {
	if d > 0 {
		s.timeoutCarga = d
	}
	return s
}

// ComObservador registra métricas de recarga.
func (s *Store) ComObservador(o Observador) *Store {
	s.observador = o
	return s
}

// AoInvalidar registra um gancho executado a cada Invalidar (ex.: versão do cache de comissões).
func (s *Store) AoInvalidar(fn func(context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aoInvalidar = append(s.aoInvalidar, fn)
}

func (s *Store) fresco(snap *Snapshot) bool {
	return snap != nil && snap.Epoca > s.minimaEpoca && s.agora().Sub(snap.CarregadoEm) < s.ttl
}

// Atual devolve o snapshot vigente, recarregando quando vencido ou invalidado.
// Se a recarga falhar e houver snapshot anterior, ele é devolvido com Aviso.
func (s *Store) Atual(ctx context.Context) (Estado, error) {
	s.mu.RLock()
	snap := s.atual
	fresco := s.fresco(snap)
	minima := s.minimaEpoca
	s.mu.RUnlock()
	if fresco {
		return Estado{Snapshot: snap}, nil
	}

	// uma carga por invalidação, desligada do cancelamento de quem a disparou
	ch := s.grupo.DoChan(strconv.FormatUint(minima, 10), func() (interface{}, error) {
		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeoutCarga)
		defer cancel()
		return s.Recarregar(cctx)
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return Estado{}, ctx.Err()
	case res = <-ch:
	}
	novo, _ := res.Val.(*Snapshot)
	err := res.Err
	if err != nil {
		if novo == nil {
			return Estado{}, err
		}
		return Estado{Snapshot: novo, Aviso: "Dados podem estar desatualizados: " + remoto.MensagemUsuario(err)}, nil
	}
	return Estado{Snapshot: novo}, nil
}

// Recarregar busca as quatro coleções em paralelo e instala o resultado se a época ainda for a mais nova.
// Em erro devolve o snapshot anterior (possivelmente nil) junto com o erro.
func (s *Store) Recarregar(ctx context.Context) (*Snapshot, error) {
	epoca := s.proximaEpoca.Add(1)
	inicio := s.agora()
	snap, err := s.carregar(ctx, epoca)
	if s.observador != nil {
		s.observador.Recarga(err == nil, s.agora().Sub(inicio))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.ultimoErro = err
		s.ultimoErroEm = s.agora()
		s.logger.Error("snapshot: falha ao recarregar", slog.Uint64("epoca", epoca), slog.Any("error", err))
		return s.atual, err
	}
	if s.atual == nil || epoca > s.atual.Epoca {
		s.atual = snap
		s.ultimoErro = nil
	} else {
		s.logger.Debug("snapshot: carga obsoleta descartada",
			slog.Uint64("epoca", epoca), slog.Uint64("instalada", s.atual.Epoca))
	}
	return s.atual, nil
}

func (s *Store) carregar(ctx context.Context, epoca uint64) (*Snapshot, error) {
	var (
		clientes []models.Cliente
		setores  []models.Setor
		usuarios []models.Usuario
		usinas   []models.Usina
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		clientes, err = s.fonte.ListarClientes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		setores, err = s.fonte.ListarSetores(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		usuarios, err = s.fonte.ListarUsuarios(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		usinas, err = s.fonte.ListarUsinas(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.logarDatasInvalidas(clientes)
	return New(epoca, s.agora(), clientes, setores, usuarios, usinas), nil
}

func (s *Store) logarDatasInvalidas(clientes []models.Cliente) {
	n := 0
	for _, c := range clientes {
		if !c.CriadoEm.Valida() {
			n++
		}
	}
	if n > 0 {
		s.logger.Warn("snapshot: clientes sem data de criação válida", slog.Int("quantidade", n))
	}
}

// Invalidar força a próxima leitura a recarregar e executa os ganchos registrados.
func (s *Store) Invalidar(ctx context.Context) {
	s.mu.Lock()
	s.minimaEpoca = s.proximaEpoca.Load()
	ganchos := append([]func(context.Context) error(nil), s.aoInvalidar...)
	s.mu.Unlock()

	for _, fn := range ganchos {
		if err := fn(ctx); err != nil {
			s.logger.Warn("snapshot: gancho de invalidação falhou", slog.Any("error", err))
		}
	}
}

// UltimoErro informa a falha mais recente ainda não superada por uma carga bem-sucedida.
func (s *Store) UltimoErro() (error, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ultimoErro, s.ultimoErroEm
}
