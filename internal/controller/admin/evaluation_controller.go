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

// EvaluationController manages the registry of evaluation groups and
// criteria.
type EvaluationController struct {
	evaluationService service.EvaluationService
}

func NewEvaluationController(evaluationService service.EvaluationService) *EvaluationController {
	return &EvaluationController{evaluationService: evaluationService}
}

// CreateGroup godoc
// @Summary (Admin) Create an evaluation group
// @Description Create a named group of criteria with a maximum score cap.
// @Tags Admin - Evaluation Registry
// @Accept json
// @Produce json
// @Param group body dto.CreateGroupRequest true "Group data"
// @Success 201 {object} dto.GroupResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Router /admin/groups [post]
func (ctrl *EvaluationController) CreateGroup(c *gin.Context) {
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	group, err := ctrl.evaluationService.CreateGroup(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateGroup: service error")
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

// UpdateGroup godoc
// @Summary (Admin) Update an evaluation group
// @Description Update a group's name or max score. A cap change triggers an eager recomputation of every affected student.
// @Tags Admin - Evaluation Registry
// @Accept json
// @Produce json
// @Param group_id path int true "Group ID"
// @Param group body dto.UpdateGroupRequest true "Fields to update"
// @Success 200 {object} dto.GroupResponse
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /admin/groups/{group_id} [put]
func (ctrl *EvaluationController) UpdateGroup(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "group_id")
	if !ok {
		return
	}

	var req dto.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	group, err := ctrl.evaluationService.UpdateGroup(id, req)
	if err != nil {
		log.Error().Err(err).Uint("group_id", id).Msg("UpdateGroup: service error")
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// GetAllGroups godoc
// @Summary List evaluation groups
// @Tags Admin - Evaluation Registry
// @Produce json
// @Success 200 {array} dto.GroupResponse
// @Router /admin/groups [get]
func (ctrl *EvaluationController) GetAllGroups(c *gin.Context) {
	groups, err := ctrl.evaluationService.GetAllGroups()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// CreateCriteria godoc
// @Summary (Admin) Create an evaluation criterion
// @Description Create a criterion inside a group, optionally scoped to one activity.
// @Tags Admin - Evaluation Registry
// @Accept json
// @Produce json
// @Param criteria body dto.CreateCriteriaRequest true "Criteria data"
// @Success 201 {object} dto.CriteriaResponse
// @Failure 404 {object} dto.ErrorResponse "Group or activity not found"
// @Router /admin/criteria [post]
func (ctrl *EvaluationController) CreateCriteria(c *gin.Context) {
	var req dto.CreateCriteriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	criteria, err := ctrl.evaluationService.CreateCriteria(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateCriteria: service error")
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, criteria)
}

// GetAllCriteria godoc
// @Summary List evaluation criteria
// @Tags Admin - Evaluation Registry
// @Produce json
// @Param group_id query int false "Filter by group"
// @Success 200 {array} dto.CriteriaResponse
// @Router /admin/criteria [get]
func (ctrl *EvaluationController) GetAllCriteria(c *gin.Context) {
	var groupID *uint
	if raw := c.Query("group_id"); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid group_id format"})
			return
		}
		id := uint(value)
		groupID = &id
	}

	criteria, err := ctrl.evaluationService.GetAllCriteria(groupID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, criteria)
}

// DeleteCriteria godoc
// @Summary (Admin) Delete an evaluation criterion
// @Description Delete a criterion, cascade its ledger rows and recompute every affected student.
// @Tags Admin - Evaluation Registry
// @Param criteria_id path int true "Criteria ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Criteria not found"
// @Router /admin/criteria/{criteria_id} [delete]
func (ctrl *EvaluationController) DeleteCriteria(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "criteria_id")
	if !ok {
		return
	}

	if err := ctrl.evaluationService.DeleteCriteria(id); err != nil {
		log.Error().Err(err).Uint("criteria_id", id).Msg("DeleteCriteria: service error")
		controller.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
