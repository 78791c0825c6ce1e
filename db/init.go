package db

import (
	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Connect opens the Postgres database and ensures the pgvector extension and
// schema exist.
func Connect(dsn string) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		logger.Error("Failed to connect to Postgres", zap.Error(err))
		return nil, err
	}

	if err := Migrate(gormDB); err != nil {
		return nil, err
	}

	return gormDB, nil
}

// Migrate creates the vector extension and the course, lesson and chunk
// tables.
func Migrate(gormDB *gorm.DB) error {
	if err := gormDB.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		logger.Error("Failed to create vector extension", zap.Error(err))
		return err
	}

	if err := gormDB.AutoMigrate(&CourseModel{}, &LessonModel{}, &ChunkModel{}); err != nil {
		logger.Error("Failed to migrate schema", zap.Error(err))
		return err
	}

	return nil
}
