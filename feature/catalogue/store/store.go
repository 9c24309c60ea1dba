package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vehicle-catalogue/core/codec"
	"vehicle-catalogue/core/database"
	"vehicle-catalogue/core/snapshot"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no snapshot was saved for a game version.
var ErrNotFound = errors.New("no stored snapshot")

// Record is one persisted snapshot.
type Record struct {
	ID          string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	GameVersion int       `gorm:"column:game_version;uniqueIndex:idx_snapshot_version_digest"`
	Digest      string    `gorm:"column:digest;type:varchar(64);uniqueIndex:idx_snapshot_version_digest"`
	Vehicles    int       `gorm:"column:vehicles"`
	Warnings    int       `gorm:"column:warnings"`
	Payload     []byte    `gorm:"column:payload"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
}

// TableName implements gorm's tabler.
func (Record) TableName() string {
	return "catalogue_snapshots"
}

var recordColumns = []string{"id", "game_version", "digest", "vehicles", "warnings", "payload", "created_at"}

// Store persists snapshots through gorm.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// New wraps an open database.
func New(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Migrate creates or updates the snapshot table and checks that every
// column the store relies on exists.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", Record{}.TableName(), err)
	}
	return s.Verify()
}

// Verify reports an error when the snapshot table lacks expected columns.
func (s *Store) Verify() error {
	missing, err := database.HasColumns(s.db, Record{}.TableName(), recordColumns...)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s is missing columns %v", Record{}.TableName(), missing)
	}
	return nil
}

// Save stores snap unless an identical snapshot was already saved for the
// same game version. created reports whether a new record was written.
func (s *Store) Save(ctx context.Context, snap *snapshot.Snapshot) (rec Record, created bool, err error) {
	payload, err := snap.Encode()
	if err != nil {
		return Record{}, false, err
	}
	digest := codec.Digest(payload)

	db := s.db.WithContext(ctx)
	err = db.Where("game_version = ? AND digest = ?", snap.GameVersion(), digest).Take(&rec).Error
	if err == nil {
		return rec, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Record{}, false, fmt.Errorf("failed to look up snapshot: %w", err)
	}

	rec = Record{
		ID:          uuid.NewString(),
		GameVersion: snap.GameVersion(),
		Digest:      digest,
		Vehicles:    len(snap.Vehicles()),
		Warnings:    len(snap.Warnings()),
		Payload:     payload,
		CreatedAt:   s.now().UTC(),
	}
	if err := db.Create(&rec).Error; err != nil {
		return Record{}, false, fmt.Errorf("failed to save snapshot: %w", err)
	}
	return rec, true, nil
}

// Latest loads the most recently saved snapshot for a game version.
func (s *Store) Latest(ctx context.Context, gameVersion int) (*snapshot.Snapshot, Record, error) {
	var rec Record
	err := s.db.WithContext(ctx).
		Where("game_version = ?", gameVersion).
		Order("created_at DESC").
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Record{}, fmt.Errorf("%w for game version %d", ErrNotFound, gameVersion)
	}
	if err != nil {
		return nil, Record{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	snap, err := snapshot.Decode(rec.Payload)
	if err != nil {
		return nil, rec, err
	}
	return snap, rec, nil
}
