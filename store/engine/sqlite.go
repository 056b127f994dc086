package engine

import (
	"fmt"

	"github.com/kario-app/taskfilter/log"
	"github.com/kario-app/taskfilter/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// tagRow is one tag of a catalog; Pos keeps the display order.
type tagRow struct {
	ID     uint   `gorm:"primaryKey"`
	Kind   string `gorm:"index;not null"`
	Pos    int    `gorm:"not null"`
	Name   string `gorm:"not null"`
	Color  string
	Preset bool
}

func (tagRow) TableName() string {
	return "tags"
}

// builtKind marks a catalog as built, so an empty catalog differs from a missing one.
type builtKind struct {
	Kind string `gorm:"primaryKey"`
}

func (builtKind) TableName() string {
	return "catalogs"
}

// SQLite keeps catalogs in a SQLite database through gorm.
type SQLite struct {
	db *gorm.DB
}

func NewSQLite(file string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(file+"?_journal_mode=WAL"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot open sqlite store: %w", err)
	}

	if err := db.AutoMigrate(&tagRow{}, &builtKind{}); err != nil {
		return nil, fmt.Errorf("cannot migrate sqlite store: %w", err)
	}
	log.Printf("[DEBUG] store/sqlite opened %s successfully", file)

	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("cannot close sqlite store: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("cannot close sqlite store: %w", err)
	}
	log.Printf("[DEBUG] store/sqlite closed successfully")
	return nil
}

func (s *SQLite) FindTags(kind store.Kind) (store.Tags, bool) {
	var built int64
	if err := s.db.Model(&builtKind{}).Where("kind = ?", string(kind)).Count(&built).Error; err != nil {
		log.Printf("[WARN] sqlite: cannot check catalog %s: %v", kind, err)
		return nil, false
	}
	if built == 0 {
		return nil, false
	}

	var rows []tagRow
	if err := s.db.Where("kind = ?", string(kind)).Order("pos").Find(&rows).Error; err != nil {
		log.Printf("[WARN] sqlite: cannot read catalog %s: %v", kind, err)
		return nil, false
	}
	log.Printf("[DEBUG] store/sqlite get kind=%s len=%d", kind, len(rows))

	tags := make(store.Tags, len(rows))
	for i, r := range rows {
		tags[i] = store.Tag{Name: r.Name, Color: r.Color, Preset: r.Preset}
	}
	return tags, true
}

func (s *SQLite) PutTags(kind store.Kind, tags store.Tags) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("kind = ?", string(kind)).Delete(&tagRow{}).Error; err != nil {
			return fmt.Errorf("sqlite cannot clear catalog %s: %w", kind, err)
		}

		if len(tags) > 0 {
			rows := make([]tagRow, len(tags))
			for i, tag := range tags {
				rows[i] = tagRow{Kind: string(kind), Pos: i, Name: tag.Name, Color: tag.Color, Preset: tag.Preset}
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("sqlite cannot put catalog %s: %w", kind, err)
			}
		}

		if err := tx.Save(&builtKind{Kind: string(kind)}).Error; err != nil {
			return fmt.Errorf("sqlite cannot mark catalog %s: %w", kind, err)
		}
		log.Printf("[DEBUG] store/sqlite put kind=%s len=%d", kind, len(tags))
		return nil
	})
}
