package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Entry is one stored value in the kv_entries table
type Entry struct {
	Namespace string    `gorm:"primaryKey;size:64"`
	Key       string    `gorm:"column:entry_key;primaryKey;size:128"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Entry) TableName() string {
	return "kv_entries"
}

// SQLStore keeps values in a relational table through GORM
type SQLStore struct {
	conn      *gorm.DB
	namespace string
}

// OpenSQLite opens (or creates) a sqlite database at dsn
func OpenSQLite(ctx context.Context, dsn, namespace string) (*SQLStore, error) {
	return openSQL(ctx, sqlite.Open(dsn), namespace)
}

// OpenPostgres connects to a postgres database
func OpenPostgres(ctx context.Context, dsn, namespace string) (*SQLStore, error) {
	return openSQL(ctx, postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), namespace)
}

func openSQL(ctx context.Context, dialector gorm.Dialector, namespace string) (*SQLStore, error) {
	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)
	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening db connection: %w", err)
	}
	return NewSQLStore(ctx, conn, namespace)
}

// NewSQLStore wraps an existing connection and migrates the entries table
func NewSQLStore(ctx context.Context, conn *gorm.DB, namespace string) (*SQLStore, error) {
	if err := conn.WithContext(ctx).AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrating kv_entries: %w", err)
	}
	return &SQLStore{conn: conn, namespace: namespace}, nil
}

var _ Store = (*SQLStore)(nil)

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry Entry
	err := s.conn.WithContext(ctx).
		Where("namespace = ? AND entry_key = ?", s.namespace, key).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return entry.Value, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	entry := Entry{
		Namespace: s.namespace,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	err := s.conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
