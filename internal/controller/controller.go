// Package controller holds helpers shared by the admin and user handler
// packages.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hxann/eduscore/internal/apperr"
	"github.com/hxann/eduscore/internal/dto"
	"github.com/hxann/eduscore/internal/policy"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Pagination reads page/page_size query params with sane bounds.
func Pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// ParseIDParam reads a numeric path parameter.
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(value), true
}

// RespondError maps the service error taxonomy onto HTTP statuses.
func RespondError(c *gin.Context, err error) {
	var (
		notFound    *apperr.NotFoundError
		validation  *apperr.ValidationError
		conflict    *apperr.ConflictError
		aggregation *apperr.AggregationError
	)
	switch {
	case errors.As(err, &notFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, policy.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
	case errors.As(err, &aggregation):
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Score aggregation failed", Details: []string{err.Error()}})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error", Details: []string{err.Error()}})
	}
}
