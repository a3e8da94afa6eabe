package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Restriction codes carried on a case assignment.
const (
	RestrictionSeized   = "S"
	RestrictionAssigned = "G"
)

// CaseRecord is one case assignment to a judge, as delivered by the
// scheduling feed.
type CaseRecord struct {
	ID              string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	JudgeID         int       `json:"judgeId" gorm:"<-:create;not null;index:idx_case_records_judge_appearance,priority:1"`
	AppearanceID    string    `json:"appearanceId" gorm:"not null;uniqueIndex"`
	AppearanceDate  time.Time `json:"appearanceDate" gorm:"index:idx_case_records_judge_appearance,priority:2"`
	CourtClass      string    `json:"courtClass" gorm:"type:varchar(1)"`
	CourtFileNumber string    `json:"courtFileNumber"`
	FileNumber      string    `json:"fileNumber"`
	StyleOfCause    string    `json:"styleOfCause" gorm:"type:text"`
	Reason          string    `json:"reason"`
	PartID          string    `json:"partId"`
	RestrictionCode string    `json:"restrictionCode" gorm:"not null"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when the caller did not supply one.
func (c *CaseRecord) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// IsSeized reports whether the case is held exclusively by its judge.
func (c CaseRecord) IsSeized() bool {
	return c.RestrictionCode == RestrictionSeized
}

// RetrievalLog records one dashboard retrieval.
type RetrievalLog struct {
	gorm.Model
	JudgeID                int       `json:"judge_id"`
	Success                bool      `json:"success"`
	ErrorMessage           string    `json:"error_message"`
	ReservedJudgments      int       `json:"reserved_judgments"`
	ScheduledContinuations int       `json:"scheduled_continuations"`
	Others                 int       `json:"others"`
	FutureAssigned         int       `json:"future_assigned"`
	QueryTime              time.Time `json:"query_time" gorm:"index:idx_retrieval_logs_time"`
	IPAddress              string    `json:"ip_address"`
}

func (CaseRecord) TableName() string {
	return "case_records"
}

func (RetrievalLog) TableName() string {
	return "retrieval_logs"
}
