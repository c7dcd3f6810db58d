package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hxann/eduscore/internal/controller"
	"github.com/hxann/eduscore/internal/dto"
	"github.com/hxann/eduscore/internal/service"
	"github.com/rs/zerolog/log"
)

// ScoreController is the staff entry point into the scoring engine: manual
// score entry, corrections, CSV import and the statistics read side.
type ScoreController struct {
	scoringService service.ScoringService
	importService  service.ImportService
	statsService   service.StatsService
}

func NewScoreController(
	scoringService service.ScoringService,
	importService service.ImportService,
	statsService service.StatsService,
) *ScoreController {
	return &ScoreController{
		scoringService: scoringService,
		importService:  importService,
		statsService:   statsService,
	}
}

// RecordScore godoc
// @Summary (Admin) Record or correct a score
// @Description Record a raw score for a (student, activity, criteria) triple. A second call with the same triple overwrites the previous value. The response carries the recomputed capped group subtotal and the student's new total.
// @Tags Admin - Scoring
// @Accept json
// @Produce json
// @Param score body dto.RecordScoreRequest true "Score data"
// @Success 200 {object} dto.DisciplinePointResponse
// @Failure 400 {object} dto.ErrorResponse "Non-finite score"
// @Failure 404 {object} dto.ErrorResponse "Unknown student, activity or criteria"
// @Router /admin/scores [post]
func (ctrl *ScoreController) RecordScore(c *gin.Context) {
	var req dto.RecordScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	point, err := ctrl.scoringService.RecordScore(req)
	if err != nil {
		log.Error().Err(err).Uint("student_id", req.StudentID).Msg("RecordScore: service error")
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, point)
}

// ImportScores godoc
// @Summary (Admin) Bulk import scores from CSV
// @Description Upload a CSV with columns Student ID, Activity ID, Score, Attendance. Rows are processed independently; failures are reported per row and do not abort the import.
// @Tags Admin - Scoring
// @Accept mpfd
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.ImportResult
// @Failure 400 {object} dto.ErrorResponse "Missing file or unusable header"
// @Router /admin/scores/import [post]
func (ctrl *ScoreController) ImportScores(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "No file uploaded"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	defer file.Close()

	result, err := ctrl.importService.ImportScores(file)
	if err != nil {
		log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("ImportScores: unusable file")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// RecomputeStudent godoc
// @Summary (Admin) Recompute one student's aggregates
// @Description Rebuild all cached group subtotals and the total-score projection for a student. Idempotent.
// @Tags Admin - Scoring
// @Produce json
// @Param student_id path int true "Student ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /admin/scores/recompute/{student_id} [post]
func (ctrl *ScoreController) RecomputeStudent(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "student_id")
	if !ok {
		return
	}

	total, err := ctrl.scoringService.RecomputeStudent(id)
	if err != nil {
		log.Error().Err(err).Uint("student_id", id).Msg("RecomputeStudent: service error")
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"student_id": id, "total_score": total})
}

// GetScoreStats godoc
// @Summary (Admin) Score statistics by class
// @Description Per-class totals, averages and classification bands over the total-score projection.
// @Tags Admin - Scoring
// @Produce json
// @Param class query int false "Restrict to one class"
// @Success 200 {object} dto.ScoreStatsResponse
// @Router /admin/stats [get]
func (ctrl *ScoreController) GetScoreStats(c *gin.Context) {
	var classID *uint
	if raw := c.Query("class"); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid class format"})
			return
		}
		id := uint(value)
		classID = &id
	}

	stats, err := ctrl.statsService.ScoreStats(classID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
