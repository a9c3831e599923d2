package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type wordRow struct {
	ID       uint   `gorm:"primaryKey"`
	Word     string `gorm:"not null;uniqueIndex"`
	Category string `gorm:"not null;index"`
}

func (wordRow) TableName() string { return "words" }

// LoadPostgres reads the catalog from the words table, creating it and
// seeding it with the bundled list when it is empty.
func LoadPostgres(ctx context.Context, dsn string, log *zap.Logger) (*Catalog, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("catalog db handle: %w", err)
	}
	defer sqlDB.Close()

	return load(ctx, db, log)
}

func load(ctx context.Context, db *gorm.DB, log *zap.Logger) (*Catalog, error) {
	db = db.WithContext(ctx)

	if err := db.AutoMigrate(&wordRow{}); err != nil {
		return nil, fmt.Errorf("migrate words: %w", err)
	}

	var count int64
	if err := db.Model(&wordRow{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count words: %w", err)
	}
	if count == 0 {
		seed := Default().Entries()
		rows := make([]wordRow, 0, len(seed))
		for _, e := range seed {
			rows = append(rows, wordRow{Word: e.Word, Category: e.Category})
		}
		if err := db.CreateInBatches(rows, 100).Error; err != nil {
			return nil, fmt.Errorf("seed words: %w", err)
		}
		log.Info("seeded word catalog", zap.Int("words", len(rows)))
	}

	var rows []wordRow
	if err := db.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, Entry{Word: r.Word, Category: r.Category})
	}
	return New(entries)
}
