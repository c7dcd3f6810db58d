package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hxann/eduscore/internal/controller"
	"github.com/hxann/eduscore/internal/dto"
	"github.com/hxann/eduscore/internal/middleware"
	"github.com/hxann/eduscore/internal/service"
	"github.com/rs/zerolog/log"
)

// ManagementController covers the staff-side administration surface: user
// provisioning, participation records, registration rosters, score listings
// and report handling.
type ManagementController struct {
	userService          service.UserService
	participationService service.ParticipationService
	registrationService  service.RegistrationService
	scoringService       service.ScoringService
	reportService        service.ReportService
}

func NewManagementController(
	userService service.UserService,
	participationService service.ParticipationService,
	registrationService service.RegistrationService,
	scoringService service.ScoringService,
	reportService service.ReportService,
) *ManagementController {
	return &ManagementController{
		userService:          userService,
		participationService: participationService,
		registrationService:  registrationService,
		scoringService:       scoringService,
		reportService:        reportService,
	}
}

// CreateStudent godoc
// @Summary (Admin) Create a student account
// @Tags Admin - Management
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "Student data"
// @Success 201 {object} dto.UserResponse
// @Failure 409 {object} dto.ErrorResponse "Username already taken"
// @Router /admin/students [post]
func (ctrl *ManagementController) CreateStudent(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	user, err := ctrl.userService.CreateStudent(req)
	if err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("CreateStudent: service error")
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// CreateStaff godoc
// @Summary (Admin) Create a staff account
// @Tags Admin - Management
// @Accept json
// @Produce json
// @Param user body dto.CreateStaffRequest true "Staff data"
// @Success 201 {object} dto.UserResponse
// @Failure 409 {object} dto.ErrorResponse "Username already taken"
// @Router /admin/staff [post]
func (ctrl *ManagementController) CreateStaff(c *gin.Context) {
	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	user, err := ctrl.userService.CreateStaff(req)
	if err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("CreateStaff: service error")
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// ListStudents godoc
// @Summary (Admin) List students
// @Tags Admin - Management
// @Produce json
// @Param class query int false "Filter by class"
// @Success 200 {array} dto.UserResponse
// @Router /admin/students [get]
func (ctrl *ManagementController) ListStudents(c *gin.Context) {
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

	students, err := ctrl.userService.ListStudents(classID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

// CreateParticipation godoc
// @Summary (Admin) Record a participation
// @Tags Admin - Management
// @Accept json
// @Produce json
// @Param participation body dto.CreateParticipationRequest true "Participation data"
// @Success 201 {object} dto.ParticipationResponse
// @Failure 409 {object} dto.ErrorResponse "Participation already recorded"
// @Router /admin/participations [post]
func (ctrl *ManagementController) CreateParticipation(c *gin.Context) {
	var req dto.CreateParticipationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	participation, err := ctrl.participationService.Create(req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, participation)
}

// MarkParticipationComplete godoc
// @Summary (Admin) Mark a participation as completed
// @Tags Admin - Management
// @Produce json
// @Param participation_id path int true "Participation ID"
// @Success 200 {object} dto.ParticipationResponse
// @Failure 404 {object} dto.ErrorResponse "Participation not found"
// @Router /admin/participations/{participation_id}/complete [put]
func (ctrl *ManagementController) MarkParticipationComplete(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "participation_id")
	if !ok {
		return
	}

	participation, err := ctrl.participationService.MarkComplete(id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participation)
}

// GetRegistrationsByActivity godoc
// @Summary (Admin) List registrations for an activity
// @Tags Admin - Management
// @Produce json
// @Param activity_id path int true "Activity ID"
// @Success 200 {array} dto.RegistrationResponse
// @Router /admin/activities/{activity_id}/registrations [get]
func (ctrl *ManagementController) GetRegistrationsByActivity(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "activity_id")
	if !ok {
		return
	}

	registrations, err := ctrl.registrationService.GetByActivity(id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, registrations)
}

// ListPoints godoc
// @Summary (Admin) List discipline point rows
// @Tags Admin - Management
// @Produce json
// @Param student query int false "Filter by student"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.PaginatedResponse
// @Router /admin/points [get]
func (ctrl *ManagementController) ListPoints(c *gin.Context) {
	var studentID *uint
	if raw := c.Query("student"); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid student format"})
			return
		}
		id := uint(value)
		studentID = &id
	}
	page, pageSize := controller.Pagination(c)

	points, err := ctrl.scoringService.ListPoints(middleware.CurrentUser(c), studentID, page, pageSize)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// GetReports godoc
// @Summary (Admin) List reports
// @Tags Admin - Management
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.PaginatedResponse
// @Router /admin/reports [get]
func (ctrl *ManagementController) GetReports(c *gin.Context) {
	page, pageSize := controller.Pagination(c)
	reports, err := ctrl.reportService.GetAll(middleware.CurrentUser(c), page, pageSize)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

// ApproveReport godoc
// @Summary (Admin) Approve a pending report
// @Tags Admin - Management
// @Produce json
// @Param report_id path int true "Report ID"
// @Success 200 {object} dto.ReportResponse
// @Failure 409 {object} dto.ErrorResponse "Report already handled"
// @Router /admin/reports/{report_id}/approve [put]
func (ctrl *ManagementController) ApproveReport(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "report_id")
	if !ok {
		return
	}

	report, err := ctrl.reportService.Approve(middleware.CurrentUser(c), id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// RejectReport godoc
// @Summary (Admin) Reject a pending report
// @Tags Admin - Management
// @Produce json
// @Param report_id path int true "Report ID"
// @Success 200 {object} dto.ReportResponse
// @Failure 409 {object} dto.ErrorResponse "Report already handled"
// @Router /admin/reports/{report_id}/reject [put]
func (ctrl *ManagementController) RejectReport(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "report_id")
	if !ok {
		return
	}

	report, err := ctrl.reportService.Reject(middleware.CurrentUser(c), id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
