package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrSemDSN indica que o banco do histórico não foi configurado.
var ErrSemDSN = errors.New("db: PG_DSN não configurado")

// ConnectDataBase abre o Postgres do histórico de exportações.
func ConnectDataBase(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, ErrSemDSN
	}
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("db: abrir conexão: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("db: pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	return database, nil
}
