package repository

import (
	"fmt"
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/config"
	"github.com/fadilmartias/resume-analyzer/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to postgres and sizes the pool for the environment.
func Open(dbCfg config.DBConfig, appCfg config.AppConfig) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if appCfg.LogDebug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(dbCfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}
	if !appCfg.IsProduction() {
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		sqlDB.SetMaxIdleConns(20)
		sqlDB.SetMaxOpenConns(200)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return db, nil
}

// Migrate creates the submissions table and, when embeddings are enabled,
// the pgvector extension and the embeddings table.
func Migrate(db *gorm.DB, withEmbeddings bool) error {
	if err := db.AutoMigrate(&model.Submission{}); err != nil {
		return fmt.Errorf("migrate submissions: %w", err)
	}
	if !withEmbeddings {
		return nil
	}
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("enable pgvector: %w", err)
	}
	if err := db.AutoMigrate(&model.SubmissionEmbedding{}); err != nil {
		return fmt.Errorf("migrate submission embeddings: %w", err)
	}
	return nil
}
