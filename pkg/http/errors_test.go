package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coachdesk/api/internal/models"
	"github.com/stretchr/testify/assert"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestWriteDomainErrorForbiddenCondition(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteDomainError(rec, models.ErrListMealPlansForbidden)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "LIST_MEAL_PLANS_FORBIDDEN", decodeError(t, rec).Error)
}

func TestWriteDomainErrorNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteDomainError(rec, models.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Error)
}

func TestWriteDomainErrorGenericFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteDomainError(rec, models.ErrListMealPlansFailed)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "LIST_MEAL_PLANS_FAILED", resp.Error)
	// never leaks the underlying cause
	assert.Equal(t, "the operation could not be completed", resp.Message)
}

func TestWriteDomainErrorUnknown(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteDomainError(rec, errors.New("something odd"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestParsePagination(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=3&limit=10", nil)
	page, limit := ParsePagination(req)
	assert.Equal(t, 3, page)
	assert.Equal(t, 10, limit)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	page, limit = ParsePagination(req)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	req = httptest.NewRequest(http.MethodGet, "/?limit=9999", nil)
	_, limit = ParsePagination(req)
	assert.Equal(t, 100, limit)
}
