package comissao

import (
	"context"
	"log/slog"
	"time"

	"github.com/KromaEnergia/painel-usinas/internal/cache"
	"github.com/KromaEnergia/painel-usinas/internal/filtro"
	"github.com/KromaEnergia/painel-usinas/internal/models"
)

// Fonte é a coleção de comissões da API remota.
type Fonte interface {
	ListarComissoes(ctx context.Context, de, ate time.Time) ([]models.LinhaComissao, error)
}

// Servico busca as linhas do período, passando pelo cache quando houver Redis.
type Servico struct {
	fonte  Fonte
	cache  *cache.Cache
	logger *slog.Logger
}

func NewServico(fonte Fonte, c *cache.Cache, logger *slog.Logger) *Servico {
	if logger == nil {
		logger = slog.Default()
	}
	return &Servico{fonte: fonte, cache: c, logger: logger}
}

func dia(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// Linhas devolve as linhas de comissão do período. Falha do Redis não impede a consulta.
func (s *Servico) Linhas(ctx context.Context, p filtro.Periodo) ([]models.LinhaComissao, error) {
	chave, err := s.cache.Chave(ctx, "comissoes", dia(p.De), dia(p.Ate))
	if err != nil {
		s.logger.Warn("comissões: cache indisponível", slog.Any("error", err))
		return s.carregar(ctx, p)
	}

	var (
		linhas     []models.LinhaComissao
		carregadas []models.LinhaComissao
		errFonte   error
		carregado  bool
	)
	err = s.cache.BuscarJSON(ctx, chave, &linhas, func(ctx context.Context) (any, error) {
		carregado = true
		carregadas, errFonte = s.carregar(ctx, p)
		return carregadas, errFonte
	})
	switch {
	case err == nil:
		return linhas, nil
	case carregado && errFonte != nil:
		return nil, errFonte
	case carregado:
		// a API respondeu; só a gravação no cache falhou
		s.logger.Warn("comissões: falha ao gravar cache", slog.Any("error", err))
		return carregadas, nil
	default:
		s.logger.Warn("comissões: falha ao ler cache", slog.Any("error", err))
		return s.carregar(ctx, p)
	}
}

func (s *Servico) carregar(ctx context.Context, p filtro.Periodo) ([]models.LinhaComissao, error) {
	linhas, err := s.fonte.ListarComissoes(ctx, p.De, p.Ate)
	if err != nil {
		return nil, err
	}
	Validar(linhas, s.logger)
	return linhas, nil
}

// Validar confere o detalhamento de cada linha contra os totais declarados.
// Divergências são registradas e a linha é mantida: a agregação usa os totais declarados.
func Validar(linhas []models.LinhaComissao, logger *slog.Logger) int {
	divergentes := 0
	for _, l := range linhas {
		if err := l.Consistente(); err != nil {
			divergentes++
			logger.Warn("comissões: linha inconsistente",
				slog.Int64("usuario_id", int64(l.UsuarioID)), slog.Any("error", err))
		}
	}
	return divergentes
}
