// Package store is the case record repository.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/JustJay7/court-scheduler/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when no case record has the requested id.
var ErrNotFound = errors.New("case record not found")

// CaseStore reads and writes case records.
type CaseStore interface {
	FindCasesByJudgeID(ctx context.Context, judgeID int) ([]database.CaseRecord, error)
	GetCase(ctx context.Context, id string) (*database.CaseRecord, error)
	CreateCase(ctx context.Context, rec *database.CaseRecord) error
	UpdateCase(ctx context.Context, rec *database.CaseRecord) error
	DeleteCase(ctx context.Context, id string) error
	UpsertCases(ctx context.Context, recs []database.CaseRecord) (int64, error)
}

// updatableColumns excludes id, judge_id and created_at.
var updatableColumns = []string{
	"appearance_id",
	"appearance_date",
	"court_class",
	"court_file_number",
	"file_number",
	"style_of_cause",
	"reason",
	"part_id",
	"restriction_code",
	"updated_at",
}

// GormStore is the gorm-backed CaseStore.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// FindCasesByJudgeID returns every record for the judge, earliest
// appearance first.
func (s *GormStore) FindCasesByJudgeID(ctx context.Context, judgeID int) ([]database.CaseRecord, error) {
	var records []database.CaseRecord
	err := s.db.WithContext(ctx).
		Where("judge_id = ?", judgeID).
		Order("appearance_date ASC").
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query cases for judge %d: %w", judgeID, err)
	}
	return records, nil
}

func (s *GormStore) GetCase(ctx context.Context, id string) (*database.CaseRecord, error) {
	var rec database.CaseRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load case %s: %w", id, err)
	}
	return &rec, nil
}

func (s *GormStore) CreateCase(ctx context.Context, rec *database.CaseRecord) error {
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create case: %w", err)
	}
	return nil
}

// UpdateCase overwrites every mutable column of the record with rec.ID.
// The judge id is never written.
func (s *GormStore) UpdateCase(ctx context.Context, rec *database.CaseRecord) error {
	tx := s.db.WithContext(ctx).
		Model(&database.CaseRecord{ID: rec.ID}).
		Select(updatableColumns).
		Updates(rec)
	if tx.Error != nil {
		return fmt.Errorf("failed to update case %s: %w", rec.ID, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteCase(ctx context.Context, id string) error {
	tx := s.db.WithContext(ctx).Delete(&database.CaseRecord{}, "id = ?", id)
	if tx.Error != nil {
		return fmt.Errorf("failed to delete case %s: %w", id, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertCases inserts a feed batch keyed by appearance id. Existing
// appearances keep their id and judge; everything else is refreshed.
func (s *GormStore) UpsertCases(ctx context.Context, recs []database.CaseRecord) (int64, error) {
	if len(recs) == 0 {
		return 0, nil
	}

	// Feed rows are identified by appearance only; ids are assigned here.
	batch := make([]database.CaseRecord, len(recs))
	for i, rec := range recs {
		rec.ID = ""
		batch[i] = rec
	}

	tx := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "appearance_id"}},
			DoUpdates: clause.AssignmentColumns(updatableColumns[1:]),
		}).
		CreateInBatches(batch, 100)
	if tx.Error != nil {
		return 0, fmt.Errorf("failed to upsert %d cases: %w", len(recs), tx.Error)
	}
	return tx.RowsAffected, nil
}
