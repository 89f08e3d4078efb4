package exportacao

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Registro de uma exportação feita pelo painel.
type Registro struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	UsuarioID     int64     `gorm:"not null;index" json:"usuarioId"`
	Usuario       string    `gorm:"size:255" json:"usuario"`
	Papel         string    `gorm:"size:32;not null" json:"papel"`
	Periodo       string    `gorm:"size:255;not null" json:"periodo"`
	Usina         string    `gorm:"size:255" json:"usina"`
	Linhas        int       `gorm:"not null;default:0" json:"linhas"`
	TotalComissao float64   `gorm:"not null;default:0" json:"totalComissao"`
	Arquivo       string    `gorm:"size:255;not null" json:"arquivo"`
	CriadoEm      time.Time `gorm:"autoCreateTime;index" json:"criadoEm"`
}

func (Registro) TableName() string { return "exportacoes" }

// Migrate cria a tabela do histórico.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Registro{})
}

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Salvar grava o registro, gerando o id quando ausente.
func (r *Repository) Salvar(ctx context.Context, reg *Registro) error {
	if reg.ID == "" {
		reg.ID = uuid.NewString()
	}
	return r.DB.WithContext(ctx).Create(reg).Error
}

// Recentes lista as últimas exportações, mais novas primeiro.
func (r *Repository) Recentes(ctx context.Context, limite int) ([]Registro, error) {
	if limite <= 0 || limite > 200 {
		limite = 50
	}
	var regs []Registro
	err := r.DB.WithContext(ctx).Order("criado_em DESC").Limit(limite).Find(&regs).Error
	return regs, err
}
