package database

import (
	"fmt"

	"gorm.io/gorm"
)

// indexes lists the named indexes each model declares in its tags.
var indexes = []struct {
	model interface{}
	name  string
}{
	// Dashboard reads: all cases of one judge in appearance order
	{&CaseRecord{}, "idx_case_records_judge_appearance"},
	{&RetrievalLog{}, "idx_retrieval_logs_time"},
}

// RunMigrations makes sure the tag-declared indexes exist. Raw multi-line
// CREATE INDEX statements break gorm's sqlite DDL parser on the next
// AutoMigrate, so indexes only go through the migrator.
func RunMigrations(db *gorm.DB) error {
	m := db.Migrator()
	for _, idx := range indexes {
		if m.HasIndex(idx.model, idx.name) {
			continue
		}
		if err := m.CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
