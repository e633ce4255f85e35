package dto

import (
	"net/http"
	"testing"

	"github.com/sefcontact/engine/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(shared.CodeValidation))
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(shared.CodeNotFound))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(shared.CodeAlreadyExists))
	assert.Equal(t, http.StatusForbidden, GetHTTPStatus(shared.CodeAccessDenied))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(shared.CodeInsufficientBalance))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(shared.CodeInvalidAssignment))
	assert.Equal(t, http.StatusUnauthorized, GetHTTPStatus(ErrCodeUnauthorized))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("SOMETHING_ELSE"))
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 45, 2, 20)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
