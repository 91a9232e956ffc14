package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
	"expensetracker/internal/query"
	"expensetracker/internal/response"
)

// ErrorResponse documents the failure envelope.
type ErrorResponse = response.ErrorEnvelope

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// respondWithError writes the failure envelope for err.
func respondWithError(c *gin.Context, err error) {
	response.Error(c, err)
}

// bindError reports a malformed request body.
func bindError(err error) error {
	return apperrors.Wrap(apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid request body"), err)
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, param string) (*models.Date, error) {
	v := c.Query(param)
	if v == "" {
		return nil, nil
	}
	d, err := models.ParseDate(v)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param+", use YYYY-MM-DD")
	}
	return &d, nil
}

// parseDateRange reads the startDate/endDate window shared by the list and
// dashboard endpoints.
func parseDateRange(c *gin.Context) (query.DateRange, error) {
	var window query.DateRange
	var err error
	if window.Start, err = parseDateQuery(c, "startDate"); err != nil {
		return window, err
	}
	if window.End, err = parseDateQuery(c, "endDate"); err != nil {
		return window, err
	}
	return window, nil
}

// parseExpenseFilter reads the listing filters. Sort parameters never fail.
func parseExpenseFilter(c *gin.Context) (query.ExpenseFilter, query.Sort, error) {
	var filter query.ExpenseFilter
	window, err := parseDateRange(c)
	if err != nil {
		return filter, query.DefaultSort, err
	}
	filter.DateRange = window

	if v := c.Query("categoryId"); v != "" {
		id, parseErr := strconv.ParseUint(v, 10, 32)
		if parseErr != nil {
			return filter, query.DefaultSort, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid categoryId")
		}
		categoryID := uint(id)
		filter.CategoryID = &categoryID
	}

	return filter, query.ParseSort(c.Query("sortBy"), c.Query("sortOrder")), nil
}

// parseMonths reads the trailing window size. Missing or non-numeric values
// mean the default; the service clamps the range.
func parseMonths(c *gin.Context) int {
	months, err := strconv.Atoi(c.Query("months"))
	if err != nil {
		return query.DefaultMonths
	}
	return months
}
