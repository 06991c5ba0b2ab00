package sql

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewMemoryORM opens a named sqlite database that lives as long as the process.
// Every ORM opened with the same name shares its tables.
func NewMemoryORM(name string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite in-memory db: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sqlite connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return &DB{
		DB:                   gormDB,
		autoMigrationEnabled: true,
		system:               "sqlite",
	}, nil
}
