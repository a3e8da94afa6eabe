// Package classify buckets a judge's case assignments for the dashboard.
//
// Seized cases are split by reason code into reserved judgments,
// scheduled continuations and others. Every case under any other
// restriction is a future assignment and lands nowhere else. A decision
// case is both a reserved judgment and a scheduled continuation.
package classify

import (
	"strings"

	"github.com/JustJay7/court-scheduler/internal/database"
)

// Reason codes recognised on seized cases.
const (
	ReasonDecision                   = "DEC"
	ReasonContinuation               = "CNT"
	ReasonAdditionalContinuationTime = "ACT"
)

// Buckets is the dashboard view of one judge's cases.
type Buckets struct {
	ReservedJudgments      []database.CaseRecord `json:"reservedJudgments"`
	ScheduledContinuations []database.CaseRecord `json:"scheduledContinuations"`
	Others                 []database.CaseRecord `json:"others"`
	FutureAssigned         []database.CaseRecord `json:"futureAssigned"`
}

// Total counts bucket entries; a decision case is counted twice.
func (b Buckets) Total() int {
	return len(b.ReservedJudgments) + len(b.ScheduledContinuations) + len(b.Others) + len(b.FutureAssigned)
}

// Classify partitions records into Buckets. Input order is preserved
// within each bucket except ReservedJudgments, where decision cases come
// first. records is not modified.
func Classify(records []database.CaseRecord) Buckets {
	b := Buckets{
		ReservedJudgments:      []database.CaseRecord{},
		ScheduledContinuations: []database.CaseRecord{},
		Others:                 []database.CaseRecord{},
		FutureAssigned:         []database.CaseRecord{},
	}

	var decisions, reserved []database.CaseRecord
	for _, rec := range records {
		if !rec.IsSeized() {
			b.FutureAssigned = append(b.FutureAssigned, rec)
			continue
		}

		reason := strings.TrimSpace(rec.Reason)
		switch {
		case reason == "":
			reserved = append(reserved, rec)
		case IsDecision(reason):
			decisions = append(decisions, rec)
			b.ScheduledContinuations = append(b.ScheduledContinuations, rec)
		case IsContinuation(reason):
			b.ScheduledContinuations = append(b.ScheduledContinuations, rec)
		default:
			b.Others = append(b.Others, rec)
		}
	}

	b.ReservedJudgments = append(b.ReservedJudgments, decisions...)
	b.ReservedJudgments = append(b.ReservedJudgments, reserved...)
	return b
}

// IsDecision reports whether reason is the decision code, ignoring case.
func IsDecision(reason string) bool {
	return strings.EqualFold(strings.TrimSpace(reason), ReasonDecision)
}

// IsContinuation reports whether reason schedules a continuation: the
// decision, continuation and additional-continuation-time codes.
func IsContinuation(reason string) bool {
	reason = strings.TrimSpace(reason)
	return strings.EqualFold(reason, ReasonDecision) ||
		strings.EqualFold(reason, ReasonContinuation) ||
		strings.EqualFold(reason, ReasonAdditionalContinuationTime)
}
