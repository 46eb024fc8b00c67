package ratings

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ratingRow struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	Stars     int   `gorm:"not null"`
	Comment   string
	CreatedAt time.Time
}

func (ratingRow) TableName() string { return "ratings" }

// SQLStore keeps ratings in a private in-memory SQLite database, so they are
// gone when the process exits.
type SQLStore struct {
	db *gorm.DB
}

var memoryDBSeq atomic.Int64

// OpenSQLStore opens a fresh in-memory database for this store.
func OpenSQLStore() (*SQLStore, error) {
	dsn := fmt.Sprintf("file:ratings_%d_%d?mode=memory&cache=shared", time.Now().UnixNano(), memoryDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open ratings database: %w", err)
	}

	// The memory database lives as long as its single connection.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access ratings database: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	return NewSQLStore(db)
}

// NewSQLStore migrates the ratings table on db.
func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&ratingRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate ratings table: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Append(ctx context.Context, stars int, comment string) (Entry, error) {
	if err := ValidateStars(stars); err != nil {
		return Entry{}, err
	}
	row := ratingRow{Stars: stars, Comment: comment}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return Entry{}, fmt.Errorf("failed to store rating: %w", err)
	}
	return Entry{Ordinal: int(row.ID), Stars: row.Stars, Comment: row.Comment}, nil
}

func (s *SQLStore) Len(ctx context.Context) (int, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&ratingRow{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count ratings: %w", err)
	}
	return int(n), nil
}

func (s *SQLStore) List(ctx context.Context) ([]Entry, error) {
	var rows []ratingRow
	if err := s.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	out := make([]Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, Entry{Ordinal: int(row.ID), Stars: row.Stars, Comment: row.Comment})
	}
	return out, nil
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
