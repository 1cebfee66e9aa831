package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/digitalwellness/guardian/backend/internal/apierror"
	"github.com/digitalwellness/guardian/backend/internal/logger"
	"github.com/digitalwellness/guardian/backend/internal/models"
	"github.com/digitalwellness/guardian/backend/internal/repository"
)

// RecordsHandler ingests daily usage and mood records.
type RecordsHandler struct {
	usageRepo repository.UsageRecordRepository
	moodRepo  repository.MoodRecordRepository
}

// NewRecordsHandler creates a new records handler
func NewRecordsHandler(usageRepo repository.UsageRecordRepository, moodRepo repository.MoodRecordRepository) *RecordsHandler {
	return &RecordsHandler{
		usageRepo: usageRepo,
		moodRepo:  moodRepo,
	}
}

// CreateUsageRecords handles POST /api/v1/records/usage.
// The body may be a single record object or an array of them; re-submitting
// a date overwrites that day, so clients can correct earlier entries.
func (h *RecordsHandler) CreateUsageRecords(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	body, err := c.GetRawData()
	if err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Could not read request body"))
		return
	}

	var reqs []models.CreateUsageRecordRequest
	if isJSONArray(body) {
		if err := json.Unmarshal(body, &reqs); err != nil {
			apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
			return
		}
	} else {
		var req models.CreateUsageRecordRequest
		if err := json.Unmarshal(body, &req); err != nil {
			apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
			return
		}
		reqs = append(reqs, req)
	}

	if len(reqs) == 0 {
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, "empty record array", "Provide at least one usage record"))
		return
	}

	for i := range reqs {
		if err := binding.Validator.ValidateStruct(&reqs[i]); err != nil {
			writeBindError(c, err)
			return
		}
	}

	log := logger.Ctx(c.Request.Context())
	for i := range reqs {
		record := reqs[i].Record()
		if err := h.usageRepo.Upsert(c.Request.Context(), record); err != nil {
			log.Error("failed to store usage record", logger.Err(err), logger.String("date", record.DayKey()))
			apierror.WriteProblem(c, apierror.NewInternalError(requestID))
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"ingested": len(reqs)})
}

// CreateMoodRecords handles POST /api/v1/records/mood.
// Same single-or-array contract as usage ingestion.
func (h *RecordsHandler) CreateMoodRecords(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	body, err := c.GetRawData()
	if err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Could not read request body"))
		return
	}

	var reqs []models.CreateMoodRecordRequest
	if isJSONArray(body) {
		if err := json.Unmarshal(body, &reqs); err != nil {
			apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
			return
		}
	} else {
		var req models.CreateMoodRecordRequest
		if err := json.Unmarshal(body, &req); err != nil {
			apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
			return
		}
		reqs = append(reqs, req)
	}

	if len(reqs) == 0 {
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, "empty record array", "Provide at least one mood record"))
		return
	}

	for i := range reqs {
		if err := binding.Validator.ValidateStruct(&reqs[i]); err != nil {
			writeBindError(c, err)
			return
		}
	}

	log := logger.Ctx(c.Request.Context())
	for i := range reqs {
		record := reqs[i].Record()
		if err := h.moodRepo.Upsert(c.Request.Context(), record); err != nil {
			log.Error("failed to store mood record", logger.Err(err), logger.String("date", record.DayKey()))
			apierror.WriteProblem(c, apierror.NewInternalError(requestID))
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"ingested": len(reqs)})
}

func isJSONArray(body []byte) bool {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
