package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/JustJay7/court-scheduler/internal/cache"
	"github.com/JustJay7/court-scheduler/internal/cases"
	"github.com/JustJay7/court-scheduler/internal/classify"
	"github.com/JustJay7/court-scheduler/internal/config"
	"github.com/JustJay7/court-scheduler/internal/database"
	"github.com/JustJay7/court-scheduler/internal/feed"
	"github.com/JustJay7/court-scheduler/internal/result"
	"github.com/JustJay7/court-scheduler/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	db      *gorm.DB
	service *cases.Service
	cache   cache.Cache
	logger  *logger.Logger
	cfg     *config.Config
}

// NewHandlers creates a new handlers instance. c may be nil when the
// case cache is disabled.
func NewHandlers(db *gorm.DB, service *cases.Service, c cache.Cache, logger *logger.Logger, cfg *config.Config) *Handlers {
	return &Handlers{
		db:      db,
		service: service,
		cache:   c,
		logger:  logger,
		cfg:     cfg,
	}
}

// caseRequest is the JSON body for create and update.
type caseRequest struct {
	JudgeID         int    `json:"judgeId" binding:"omitempty,gt=0"`
	AppearanceID    string `json:"appearanceId" binding:"required"`
	AppearanceDate  string `json:"appearanceDate"`
	CourtClass      string `json:"courtClass" binding:"omitempty,len=1"`
	CourtFileNumber string `json:"courtFileNumber"`
	FileNumber      string `json:"fileNumber"`
	StyleOfCause    string `json:"styleOfCause"`
	Reason          string `json:"reason"`
	PartID          string `json:"partId"`
	RestrictionCode string `json:"restrictionCode" binding:"required"`
}

func (r caseRequest) record() (database.CaseRecord, error) {
	rec := database.CaseRecord{
		JudgeID:         r.JudgeID,
		AppearanceID:    strings.TrimSpace(r.AppearanceID),
		CourtClass:      r.CourtClass,
		CourtFileNumber: r.CourtFileNumber,
		FileNumber:      r.FileNumber,
		StyleOfCause:    r.StyleOfCause,
		Reason:          r.Reason,
		PartID:          r.PartID,
		RestrictionCode: r.RestrictionCode,
	}
	if r.AppearanceDate != "" {
		date, err := feed.ParseDate(r.AppearanceDate)
		if err != nil {
			return rec, err
		}
		rec.AppearanceDate = date
	}
	return rec, nil
}

type cacheStatus struct {
	Enabled bool              `json:"enabled"`
	Stats   *cache.CacheStats `json:"stats,omitempty"`
}

// AssignedCases serves the dashboard of the judge named by the request's
// judge header.
func (h *Handlers) AssignedCases(c *gin.Context) {
	judgeID, err := strconv.Atoi(strings.TrimSpace(c.GetHeader(h.cfg.JudgeHeader)))
	if err != nil || judgeID <= 0 {
		c.JSON(http.StatusUnauthorized, result.Failure[classify.Buckets]("Missing or invalid judge claim."))
		return
	}
	h.assignedCases(c, judgeID)
}

// JudgeAssignedCases serves the dashboard of the judge in the path.
func (h *Handlers) JudgeAssignedCases(c *gin.Context) {
	judgeID, ok := judgeParam(c)
	if !ok {
		return
	}
	h.assignedCases(c, judgeID)
}

func (h *Handlers) assignedCases(c *gin.Context, judgeID int) {
	ctx, cancel := h.storeContext(c)
	defer cancel()

	res := h.service.GetAssignedCases(ctx, judgeID)
	h.recordRetrieval(c, judgeID, res)
	respond(c, res, http.StatusOK)
}

// recordRetrieval writes the audit row; failures are logged only.
func (h *Handlers) recordRetrieval(c *gin.Context, judgeID int, res result.Result[classify.Buckets]) {
	entry := &database.RetrievalLog{
		JudgeID:      judgeID,
		Success:      res.Succeeded(),
		ErrorMessage: res.Err(),
		QueryTime:    time.Now(),
		IPAddress:    c.ClientIP(),
	}
	if b, ok := res.Payload(); ok {
		entry.ReservedJudgments = len(b.ReservedJudgments)
		entry.ScheduledContinuations = len(b.ScheduledContinuations)
		entry.Others = len(b.Others)
		entry.FutureAssigned = len(b.FutureAssigned)
	}

	if err := h.db.WithContext(c.Request.Context()).Create(entry).Error; err != nil {
		h.logger.Error("Failed to save retrieval log", "judge_id", judgeID, "error", err)
	}
}

// ListJudgeCases returns the raw case records of a judge
func (h *Handlers) ListJudgeCases(c *gin.Context) {
	judgeID, ok := judgeParam(c)
	if !ok {
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	respond(c, h.service.ListCases(ctx, judgeID), http.StatusOK)
}

func (h *Handlers) GetCase(c *gin.Context) {
	ctx, cancel := h.storeContext(c)
	defer cancel()

	respond(c, h.service.GetCase(ctx, c.Param("id")), http.StatusOK)
}

func (h *Handlers) CreateCase(c *gin.Context) {
	rec, ok := bindCase(c)
	if !ok {
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	respond(c, h.service.CreateCase(ctx, rec), http.StatusCreated)
}

func (h *Handlers) UpdateCase(c *gin.Context) {
	rec, ok := bindCase(c)
	if !ok {
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	respond(c, h.service.UpdateCase(ctx, c.Param("id"), rec), http.StatusOK)
}

func (h *Handlers) DeleteCase(c *gin.Context) {
	ctx, cancel := h.storeContext(c)
	defer cancel()

	respond(c, h.service.DeleteCase(ctx, c.Param("id")), http.StatusOK)
}

// ImportCases accepts a scheduling feed batch as JSON or YAML
func (h *Handlers) ImportCases(c *gin.Context) {
	recs, err := feed.Decode(c.Request.Body, feed.FormatForContentType(c.ContentType()))
	if err != nil {
		c.JSON(http.StatusBadRequest, result.Failure[cases.ImportSummary]("Invalid feed: "+err.Error()))
		return
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	respond(c, h.service.ImportCases(ctx, recs), http.StatusOK)
}

// HealthCheck returns the health status
func (h *Handlers) HealthCheck(c *gin.Context) {
	dbHealthy := false
	if sqlDB, err := h.db.DB(); err == nil {
		dbHealthy = sqlDB.PingContext(c.Request.Context()) == nil
	}

	status := "healthy"
	code := http.StatusOK
	if !dbHealthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":   status,
		"database": dbHealthy,
		"cache":    h.cacheStatus(),
		"time":     time.Now().Unix(),
	})
}

// CacheStats returns cache statistics
func (h *Handlers) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, result.Success(h.cacheStatus()))
}

func (h *Handlers) cacheStatus() cacheStatus {
	if h.cache == nil {
		return cacheStatus{Enabled: false}
	}
	stats := h.cache.Stats()
	return cacheStatus{Enabled: true, Stats: &stats}
}

func (h *Handlers) storeContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.cfg.StoreTimeout)
}

// Helper functions

func judgeParam(c *gin.Context) (int, bool) {
	judgeID, err := strconv.Atoi(c.Param("judgeId"))
	if err != nil || judgeID <= 0 {
		c.JSON(http.StatusBadRequest, result.Failure[classify.Buckets](cases.MsgInvalidJudgeID))
		return 0, false
	}
	return judgeID, true
}

func bindCase(c *gin.Context) (database.CaseRecord, bool) {
	var req caseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, result.Failure[database.CaseRecord]("Invalid request: "+err.Error()))
		return database.CaseRecord{}, false
	}

	rec, err := req.record()
	if err != nil {
		c.JSON(http.StatusBadRequest, result.Failure[database.CaseRecord]("Invalid request: "+err.Error()))
		return database.CaseRecord{}, false
	}
	return rec, true
}

// respond writes the envelope. Failures are 400, or 404 for a missing case.
func respond[T any](c *gin.Context, res result.Result[T], okStatus int) {
	status := okStatus
	if !res.Succeeded() {
		status = http.StatusBadRequest
		if res.Err() == cases.MsgCaseNotFound {
			status = http.StatusNotFound
		}
	}
	c.JSON(status, res)
}
