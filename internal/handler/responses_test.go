package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alvinquach/fgo-planner-go/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "account not found",
			err:        domain.ErrAccountNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    ErrMsgAccountNotFoundError,
		},
		{
			name:       "wrapped servant not found",
			err:        fmt.Errorf("instance 7: %w", domain.ErrServantNotFound),
			wantStatus: http.StatusNotFound,
			wantMsg:    ErrMsgServantNotFoundError,
		},
		{
			name:       "double wrapped plan not found",
			err:        fmt.Errorf("outer: %w", fmt.Errorf("plan 1: %w", domain.ErrPlanNotFound)),
			wantStatus: http.StatusNotFound,
			wantMsg:    ErrMsgPlanNotFoundError,
		},
		{
			name:       "plan group not found",
			err:        domain.ErrPlanGroupNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    ErrMsgPlanGroupNotFoundError,
		},
		{
			name:       "plan not in group",
			err:        domain.ErrPlanNotInGroup,
			wantStatus: http.StatusBadRequest,
			wantMsg:    ErrMsgPlanNotInGroupError,
		},
		{
			name:       "game servant missing",
			err:        domain.ErrGameServantNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    ErrMsgGameServantMissingErr,
		},
		{
			name:       "invalid input",
			err:        fmt.Errorf("%w: nil plan", domain.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
			wantMsg:    ErrMsgInvalidInputError,
		},
		{
			name:       "unknown error",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    ErrMsgGenericServerError,
		},
		{
			name:       "nil error",
			err:        nil,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    ErrMsgUnknownError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusCreated, SuccessResponse{Message: "done"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message": "done"}`, rec.Body.String())
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, http.StatusBadRequest, "bad input")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "bad input"}`, rec.Body.String())
}

func TestValidateFriendID(t *testing.T) {
	InitValidator()

	type friendIDHolder struct {
		FriendID string `validate:"friendid"`
	}

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"empty is allowed", "", true},
		{"nine digits", "123456789", true},
		{"too short", "12345678", false},
		{"too long", "1234567890", false},
		{"non-digits", "12345678a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := GetValidator().ValidateStruct(friendIDHolder{FriendID: tt.value})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestGetOptionalBoolParam(t *testing.T) {
	newReq := func(query string) *http.Request {
		return httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	}

	assert.True(t, GetOptionalBoolParam(newReq(""), "flag", true))
	assert.False(t, GetOptionalBoolParam(newReq(""), "flag", false))
	assert.True(t, GetOptionalBoolParam(newReq("flag=true"), "flag", false))
	assert.False(t, GetOptionalBoolParam(newReq("flag=false"), "flag", true))
	assert.True(t, GetOptionalBoolParam(newReq("flag=1"), "flag", false))
	assert.True(t, GetOptionalBoolParam(newReq("flag=maybe"), "flag", true), "unparseable values fall back to the default")
}

func TestFormatValidationError(t *testing.T) {
	InitValidator()

	type sample struct {
		Name string `validate:"required"`
		QP   int64  `validate:"gte=0"`
	}

	err := GetValidator().ValidateStruct(sample{QP: -1})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "This field is required", fields["name"])
	assert.Equal(t, "Must be at least 0", fields["qp"])

	t.Run("nil error", func(t *testing.T) {
		assert.Nil(t, FormatValidationError(nil))
	})

	t.Run("non-validation error", func(t *testing.T) {
		fields := FormatValidationError(errors.New("boom"))
		assert.Equal(t, "Invalid request format", fields["error"])
	})
}
