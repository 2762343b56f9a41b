package controllers

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/StorePulse/StorePulse/app/models"
	"github.com/StorePulse/StorePulse/app/repository"
	"github.com/StorePulse/StorePulse/internal/pkg/analysis"
	"github.com/StorePulse/StorePulse/internal/pkg/fileparser"
	"github.com/StorePulse/StorePulse/internal/pkg/usercontext"
)

// maxUploadBytes bounds spreadsheet uploads; review exports are small.
const maxUploadBytes = 10 << 20

// HandleAnalyzeFile runs the basic sentiment analysis over an uploaded
// CSV/XLSX review export.
func HandleAnalyzeFile(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "missing_file", "multipart field 'file' is required")
	}
	if fileHeader.Size > maxUploadBytes {
		return jsonError(c, fiber.StatusRequestEntityTooLarge, "file_too_large", "upload exceeds the 10 MiB limit")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_file", "could not open upload")
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_file", "could not read upload")
	}

	reviews, err := fileparser.ExtractReviews(fileHeader.Filename, content)
	if err != nil {
		if errors.Is(err, fileparser.ErrUnsupportedFormat) {
			return jsonError(c, fiber.StatusBadRequest, "unsupported_format", err.Error())
		}
		return jsonError(c, fiber.StatusBadRequest, "unparseable_file", err.Error())
	}
	if len(reviews) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "empty_input", "no review texts found in the uploaded file")
	}

	result := analysis.AnalyzeBasicSentiment(c.Context(), gateway, reviews)
	return c.JSON(result)
}

// HandleAnalyzeInsight builds the topic-grouped insight report from stored
// reviews and records the run.
func HandleAnalyzeInsight(c *fiber.Ctx) error {
	storeID, ok := parseStoreID(c.Query("store_id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid_store_id", "store_id query parameter is required")
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_date_range", err.Error())
	}

	userCtx := usercontext.GetUserContext(c)
	repos := repository.GetGlobalFactory()

	texts, err := repos.GetReviewRepository().ListTexts(userCtx.TenantID, storeID, from, to)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load reviews")
	}
	if len(texts) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "empty_input", "no stored reviews for this store and period, sync first")
	}

	result := analysis.AnalyzeReviewInsight(c.Context(), gateway, texts)

	raw, err := json.Marshal(result)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not encode result")
	}
	run := models.AnalysisRun{
		UUID:         uuid.NewString(),
		TenantID:     userCtx.TenantID,
		StoreID:      storeID,
		Source:       "google",
		TotalReviews: result.Total,
		RawResult:    string(raw),
	}
	if err := repos.GetAnalysisRunRepository().Create(&run); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not record analysis run")
	}

	return c.JSON(fiber.Map{
		"run_id": run.UUID,
		"result": result,
	})
}

// HandleGetAnalysisRun returns a previously recorded run by its public id.
func HandleGetAnalysisRun(c *fiber.Ctx) error {
	runID := c.Params("id")
	if _, err := uuid.Parse(runID); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_run_id", "run id must be a UUID")
	}

	userCtx := usercontext.GetUserContext(c)
	run, err := repository.GetGlobalFactory().GetAnalysisRunRepository().GetByUUID(userCtx.TenantID, runID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return jsonError(c, fiber.StatusNotFound, "not_found", "no analysis run with this id")
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load analysis run")
	}

	var result json.RawMessage
	if err := json.Unmarshal([]byte(run.RawResult), &result); err != nil {
		result = json.RawMessage("null")
	}

	return c.JSON(fiber.Map{
		"run_id":        run.UUID,
		"store_id":      run.StoreID,
		"source":        run.Source,
		"total_reviews": run.TotalReviews,
		"created_at":    run.CreatedAt,
		"result":        result,
	})
}

// HandleCXDashboard runs the extended CX report over a date-filtered review
// set.
func HandleCXDashboard(c *fiber.Ctx) error {
	storeID, ok := parseStoreID(c.Query("store_id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid_store_id", "store_id query parameter is required")
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_date_range", err.Error())
	}

	userCtx := usercontext.GetUserContext(c)
	texts, err := repository.GetGlobalFactory().GetReviewRepository().
		ListTexts(userCtx.TenantID, storeID, from, to)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load reviews")
	}
	if len(texts) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "empty_input", "no stored reviews for this store and period, sync first")
	}

	report := analysis.AnalyzeCXDashboard(c.Context(), gateway, texts)
	return c.JSON(report)
}
