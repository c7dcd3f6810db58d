package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hxann/eduscore/internal/controller"
	"github.com/hxann/eduscore/internal/dto"
	"github.com/hxann/eduscore/internal/middleware"
	"github.com/hxann/eduscore/internal/repository"
	"github.com/hxann/eduscore/internal/service"
	"github.com/rs/zerolog/log"
)

// ActivityController serves the activity catalog and the reference data
// around it.
type ActivityController struct {
	activityService service.ActivityService
	userService     service.UserService
}

func NewActivityController(activityService service.ActivityService, userService service.UserService) *ActivityController {
	return &ActivityController{activityService: activityService, userService: userService}
}

// GetActivities godoc
// @Summary List activities
// @Description Paginated activity catalog with optional category, tag and keyword filters.
// @Tags Activities
// @Produce json
// @Param category query int false "Filter by category"
// @Param tag query string false "Filter by tag name"
// @Param q query string false "Keyword search in title and description"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.PaginatedResponse
// @Router /activities [get]
func (ctrl *ActivityController) GetActivities(c *gin.Context) {
	var filter repository.ActivityFilter
	if raw := c.Query("category"); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid category format"})
			return
		}
		id := uint(value)
		filter.CategoryID = &id
	}
	filter.TagName = c.Query("tag")
	filter.Keyword = c.Query("q")
	page, pageSize := controller.Pagination(c)

	activities, err := ctrl.activityService.GetAll(filter, page, pageSize)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}

// GetActivity godoc
// @Summary Get one activity
// @Tags Activities
// @Produce json
// @Param activity_id path int true "Activity ID"
// @Success 200 {object} dto.ActivityResponse
// @Failure 404 {object} dto.ErrorResponse "Activity not found"
// @Router /activities/{activity_id} [get]
func (ctrl *ActivityController) GetActivity(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "activity_id")
	if !ok {
		return
	}

	activity, err := ctrl.activityService.GetByID(id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activity)
}

// CreateActivity godoc
// @Summary (Staff) Create an activity
// @Tags Activities
// @Accept json
// @Produce json
// @Param activity body dto.CreateActivityRequest true "Activity data"
// @Success 201 {object} dto.ActivityResponse
// @Failure 400 {object} dto.ErrorResponse "End date before start date"
// @Router /activities [post]
func (ctrl *ActivityController) CreateActivity(c *gin.Context) {
	var req dto.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	activity, err := ctrl.activityService.Create(middleware.CurrentUser(c), req)
	if err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateActivity: service error")
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, activity)
}

// DeleteActivity godoc
// @Summary (Staff) Delete an activity
// @Description Staff may delete only activities they created; admins may delete any.
// @Tags Activities
// @Param activity_id path int true "Activity ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Router /activities/{activity_id} [delete]
func (ctrl *ActivityController) DeleteActivity(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "activity_id")
	if !ok {
		return
	}

	if err := ctrl.activityService.Delete(middleware.CurrentUser(c), id); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetActivityParticipations godoc
// @Summary List participations for an activity
// @Tags Activities
// @Produce json
// @Param activity_id path int true "Activity ID"
// @Success 200 {array} dto.ParticipationResponse
// @Router /activities/{activity_id}/participations [get]
func (ctrl *ActivityController) GetActivityParticipations(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "activity_id")
	if !ok {
		return
	}

	participations, err := ctrl.activityService.GetParticipations(id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participations)
}

// GetCategories godoc
// @Summary List activity categories
// @Tags Activities
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Router /categories [get]
func (ctrl *ActivityController) GetCategories(c *gin.Context) {
	categories, err := ctrl.activityService.GetAllCategories()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetDepartments godoc
// @Summary List departments
// @Tags Reference Data
// @Produce json
// @Success 200 {array} dto.DepartmentResponse
// @Router /departments [get]
func (ctrl *ActivityController) GetDepartments(c *gin.Context) {
	departments, err := ctrl.userService.GetAllDepartments()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, departments)
}

// GetClasses godoc
// @Summary List classes
// @Tags Reference Data
// @Produce json
// @Success 200 {array} dto.ClassResponse
// @Router /classes [get]
func (ctrl *ActivityController) GetClasses(c *gin.Context) {
	classes, err := ctrl.userService.GetAllClasses()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, classes)
}

// GetStaffByDepartment godoc
// @Summary List staff of a department
// @Tags Reference Data
// @Produce json
// @Param department_id path int true "Department ID"
// @Success 200 {array} dto.UserResponse
// @Router /departments/{department_id}/staff [get]
func (ctrl *ActivityController) GetStaffByDepartment(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "department_id")
	if !ok {
		return
	}

	staff, err := ctrl.userService.ListStaffByDepartment(id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, staff)
}
