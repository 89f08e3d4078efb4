package app

import (
	"errors"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config do serviço, lida do ambiente (e de um .env opcional).
type Config struct {
	AppEnv  string `envconfig:"APP_ENV" default:"development"`
	AppAddr string `envconfig:"APP_ADDR" default:":8080"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	APIBaseURL        string        `envconfig:"API_BASE_URL" required:"true"`
	APITimeout        time.Duration `envconfig:"API_TIMEOUT" default:"10s"`
	APIMaxTentativas  int           `envconfig:"API_MAX_TENTATIVAS" default:"3"`
	APIBackoffInicial time.Duration `envconfig:"API_BACKOFF_INICIAL" default:"200ms"`

	SnapshotTTL time.Duration `envconfig:"SNAPSHOT_TTL" default:"30s"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"12h"`

	// REDIS_ADDR vazio desliga o cache de comissões.
	RedisAddr string        `envconfig:"REDIS_ADDR"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	// PG_DSN vazio desliga o histórico de exportações.
	PGDSN string `envconfig:"PG_DSN"`

	CORSOrigens   []string `envconfig:"CORS_ORIGENS"`
	FusoHorario   string   `envconfig:"FUSO_HORARIO" default:"America/Sao_Paulo"`
	PaginaTamanho int      `envconfig:"PAGINA_TAMANHO" default:"10"`

	ExportLimiteMinuto int `envconfig:"EXPORT_LIMITE_MINUTO" default:"10"`
}

// LoadConfig carrega o .env (se existir) e processa as variáveis.
func LoadConfig(arquivos ...string) (*Config, error) {
	_ = godotenv.Load(arquivos...)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if cfg.APIBaseURL == "" {
		return nil, errors.New("API_BASE_URL deve ser informada")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET deve ser informada")
	}
	if cfg.PaginaTamanho <= 0 {
		cfg.PaginaTamanho = 10
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// Fuso carrega FUSO_HORARIO.
func (c *Config) Fuso() (*time.Location, error) {
	return time.LoadLocation(c.FusoHorario)
}
