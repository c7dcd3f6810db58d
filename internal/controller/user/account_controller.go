package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hxann/eduscore/internal/controller"
	"github.com/hxann/eduscore/internal/dto"
	"github.com/hxann/eduscore/internal/middleware"
	"github.com/hxann/eduscore/internal/service"
	"github.com/rs/zerolog/log"
)

// AccountController serves the authenticated caller's own data: profile,
// password, registrations, participation history, point ledger and reports.
type AccountController struct {
	userService          service.UserService
	registrationService  service.RegistrationService
	participationService service.ParticipationService
	scoringService       service.ScoringService
	reportService        service.ReportService
}

func NewAccountController(
	userService service.UserService,
	registrationService service.RegistrationService,
	participationService service.ParticipationService,
	scoringService service.ScoringService,
	reportService service.ReportService,
) *AccountController {
	return &AccountController{
		userService:          userService,
		registrationService:  registrationService,
		participationService: participationService,
		scoringService:       scoringService,
		reportService:        reportService,
	}
}

// GetMe godoc
// @Summary Current user profile
// @Description Profile of the caller, including the capped total score projection.
// @Tags Account
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Router /me [get]
func (ctrl *AccountController) GetMe(c *gin.Context) {
	user, err := ctrl.userService.GetByID(middleware.CurrentUser(c).ID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ChangePassword godoc
// @Summary Change own password
// @Tags Account
// @Accept json
// @Produce json
// @Param body body dto.ChangePasswordRequest true "Password change data"
// @Success 200 {object} dto.MessageResult
// @Failure 400 {object} dto.ErrorResponse "Wrong old password or mismatched confirmation"
// @Router /me/password [put]
func (ctrl *AccountController) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	user := middleware.CurrentUser(c)
	if err := ctrl.userService.ChangePassword(user, req); err != nil {
		controller.RespondError(c, err)
		return
	}
	log.Info().Uint("user_id", user.ID).Msg("Password changed")
	c.JSON(http.StatusOK, dto.MessageResult{Message: "Password updated"})
}

// Register godoc
// @Summary Register for an activity
// @Tags Account
// @Accept json
// @Produce json
// @Param body body dto.CreateRegistrationRequest true "Registration data"
// @Success 201 {object} dto.RegistrationResponse
// @Failure 409 {object} dto.ErrorResponse "Already registered or activity full"
// @Router /me/registrations [post]
func (ctrl *AccountController) Register(c *gin.Context) {
	var req dto.CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	registration, err := ctrl.registrationService.Register(middleware.CurrentUser(c), req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, registration)
}

// GetMyRegistrations godoc
// @Summary List own registrations
// @Tags Account
// @Produce json
// @Success 200 {array} dto.RegistrationResponse
// @Router /me/registrations [get]
func (ctrl *AccountController) GetMyRegistrations(c *gin.Context) {
	registrations, err := ctrl.registrationService.GetMyRegistrations(middleware.CurrentUser(c).ID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, registrations)
}

// GetMyParticipations godoc
// @Summary List own participation history
// @Tags Account
// @Produce json
// @Success 200 {array} dto.ParticipationResponse
// @Router /me/participations [get]
func (ctrl *AccountController) GetMyParticipations(c *gin.Context) {
	participations, err := ctrl.participationService.GetStudentHistory(middleware.CurrentUser(c).ID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participations)
}

// GetMyPoints godoc
// @Summary List own discipline point rows
// @Tags Account
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.PaginatedResponse
// @Router /me/points [get]
func (ctrl *AccountController) GetMyPoints(c *gin.Context) {
	user := middleware.CurrentUser(c)
	page, pageSize := controller.Pagination(c)

	points, err := ctrl.scoringService.ListPoints(user, &user.ID, page, pageSize)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// CreateReport godoc
// @Summary Submit an activity report
// @Tags Account
// @Accept json
// @Produce json
// @Param body body dto.CreateReportRequest true "Report data"
// @Success 201 {object} dto.ReportResponse
// @Failure 404 {object} dto.ErrorResponse "Activity not found"
// @Router /me/reports [post]
func (ctrl *AccountController) CreateReport(c *gin.Context) {
	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	report, err := ctrl.reportService.Create(middleware.CurrentUser(c), req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// GetMyReports godoc
// @Summary List own reports
// @Tags Account
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.PaginatedResponse
// @Router /me/reports [get]
func (ctrl *AccountController) GetMyReports(c *gin.Context) {
	page, pageSize := controller.Pagination(c)
	reports, err := ctrl.reportService.GetAll(middleware.CurrentUser(c), page, pageSize)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}
