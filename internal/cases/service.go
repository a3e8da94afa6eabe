package cases

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/JustJay7/court-scheduler/internal/classify"
	"github.com/JustJay7/court-scheduler/internal/database"
	"github.com/JustJay7/court-scheduler/internal/result"
	"github.com/JustJay7/court-scheduler/internal/store"
	"github.com/JustJay7/court-scheduler/pkg/logger"
)

// User-facing failure messages.
const (
	MsgAssignedCasesError = "Error retrieving assigned cases."
	MsgInvalidJudgeID     = "Invalid judge id."
	MsgCaseNotFound       = "Case not found."
	MsgCaseError          = "Error retrieving case."
	MsgCasesError         = "Error retrieving cases."
	MsgCreateError        = "Error creating case."
	MsgUpdateError        = "Error updating case."
	MsgDeleteError        = "Error deleting case."
	MsgImportError        = "Error importing cases."
	MsgJudgeImmutable     = "Judge id cannot be changed."
)

// ImportSummary reports the outcome of a feed import.
type ImportSummary struct {
	Received int   `json:"received"`
	Upserted int64 `json:"upserted"`
}

// Service exposes case operations as result envelopes.
type Service struct {
	store     store.CaseStore
	logger    *logger.Logger
	maxImport int
}

func NewService(s store.CaseStore, log *logger.Logger, maxImport int) *Service {
	return &Service{store: s, logger: log, maxImport: maxImport}
}

// GetAssignedCases buckets every case of the judge for the dashboard.
// A store failure yields a failure envelope and no buckets.
func (s *Service) GetAssignedCases(ctx context.Context, judgeID int) result.Result[classify.Buckets] {
	if judgeID <= 0 {
		return result.Failure[classify.Buckets](MsgInvalidJudgeID)
	}

	records, err := s.store.FindCasesByJudgeID(ctx, judgeID)
	if err != nil {
		s.logger.Error("Failed to retrieve assigned cases", "judge_id", judgeID, "error", err)
		return result.Failure[classify.Buckets](MsgAssignedCasesError)
	}

	buckets := classify.Classify(records)
	s.logger.Debug("Classified assigned cases",
		"judge_id", judgeID,
		"records", len(records),
		"reserved_judgments", len(buckets.ReservedJudgments),
		"scheduled_continuations", len(buckets.ScheduledContinuations),
		"others", len(buckets.Others),
		"future_assigned", len(buckets.FutureAssigned),
	)
	return result.Success(buckets)
}

func (s *Service) ListCases(ctx context.Context, judgeID int) result.Result[[]database.CaseRecord] {
	if judgeID <= 0 {
		return result.Failure[[]database.CaseRecord](MsgInvalidJudgeID)
	}

	records, err := s.store.FindCasesByJudgeID(ctx, judgeID)
	if err != nil {
		s.logger.Error("Failed to list cases", "judge_id", judgeID, "error", err)
		return result.Failure[[]database.CaseRecord](MsgCasesError)
	}
	if records == nil {
		records = []database.CaseRecord{}
	}
	return result.Success(records)
}

func (s *Service) GetCase(ctx context.Context, id string) result.Result[database.CaseRecord] {
	rec, err := s.store.GetCase(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return result.Failure[database.CaseRecord](MsgCaseNotFound)
	}
	if err != nil {
		s.logger.Error("Failed to get case", "id", id, "error", err)
		return result.Failure[database.CaseRecord](MsgCaseError)
	}
	return result.Success(*rec)
}

func (s *Service) CreateCase(ctx context.Context, rec database.CaseRecord) result.Result[database.CaseRecord] {
	if msg := validate(rec); msg != "" {
		return result.Failure[database.CaseRecord](msg)
	}

	rec.ID = ""
	if err := s.store.CreateCase(ctx, &rec); err != nil {
		s.logger.Error("Failed to create case", "appearance_id", rec.AppearanceID, "error", err)
		return result.Failure[database.CaseRecord](MsgCreateError)
	}

	s.logger.Info("Case created", "id", rec.ID, "judge_id", rec.JudgeID)
	return result.Success(rec)
}

// UpdateCase replaces the mutable fields of case id. A zero judge id in
// rec means "unchanged"; any other value must match the stored one.
func (s *Service) UpdateCase(ctx context.Context, id string, rec database.CaseRecord) result.Result[database.CaseRecord] {
	existing, err := s.store.GetCase(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return result.Failure[database.CaseRecord](MsgCaseNotFound)
	}
	if err != nil {
		s.logger.Error("Failed to load case for update", "id", id, "error", err)
		return result.Failure[database.CaseRecord](MsgUpdateError)
	}

	if rec.JudgeID != 0 && rec.JudgeID != existing.JudgeID {
		return result.Failure[database.CaseRecord](MsgJudgeImmutable)
	}
	rec.ID = existing.ID
	rec.JudgeID = existing.JudgeID
	rec.CreatedAt = existing.CreatedAt
	if msg := validate(rec); msg != "" {
		return result.Failure[database.CaseRecord](msg)
	}

	err = s.store.UpdateCase(ctx, &rec)
	if errors.Is(err, store.ErrNotFound) {
		return result.Failure[database.CaseRecord](MsgCaseNotFound)
	}
	if err != nil {
		s.logger.Error("Failed to update case", "id", id, "error", err)
		return result.Failure[database.CaseRecord](MsgUpdateError)
	}

	return s.GetCase(ctx, id)
}

func (s *Service) DeleteCase(ctx context.Context, id string) result.Result[string] {
	err := s.store.DeleteCase(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return result.Failure[string](MsgCaseNotFound)
	}
	if err != nil {
		s.logger.Error("Failed to delete case", "id", id, "error", err)
		return result.Failure[string](MsgDeleteError)
	}

	s.logger.Info("Case deleted", "id", id)
	return result.Success(id)
}

// ImportCases upserts a scheduling feed batch. The batch is rejected
// whole if any record is invalid.
func (s *Service) ImportCases(ctx context.Context, recs []database.CaseRecord) result.Result[ImportSummary] {
	if s.maxImport > 0 && len(recs) > s.maxImport {
		return result.Failure[ImportSummary](fmt.Sprintf("Import exceeds %d records.", s.maxImport))
	}

	var problems []string
	for i, rec := range recs {
		if msg := validate(rec); msg != "" {
			problems = append(problems, fmt.Sprintf("Case %d: %s", i, msg))
		}
	}
	if len(problems) > 0 {
		return result.Failure[ImportSummary](problems...)
	}

	n, err := s.store.UpsertCases(ctx, recs)
	if err != nil {
		s.logger.Error("Failed to import cases", "received", len(recs), "error", err)
		return result.Failure[ImportSummary](MsgImportError)
	}

	s.logger.Info("Cases imported", "received", len(recs), "upserted", n)
	return result.Success(ImportSummary{Received: len(recs), Upserted: n})
}

func validate(rec database.CaseRecord) string {
	switch {
	case rec.JudgeID <= 0:
		return MsgInvalidJudgeID
	case rec.AppearanceID == "":
		return "Appearance id is required."
	case rec.RestrictionCode == "":
		return "Restriction code is required."
	case utf8.RuneCountInString(rec.CourtClass) > 1:
		return "Court class must be a single letter."
	}
	return ""
}
