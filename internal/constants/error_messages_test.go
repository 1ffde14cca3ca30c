package constants_test

import (
	"net/http"
	"testing"

	"github.com/Behyna/collect-gateway/internal/constants"
	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	testCases := []struct {
		code     string
		expected int
	}{
		{code: constants.ErrCodeMissingRequiredFields, expected: http.StatusBadRequest},
		{code: constants.ErrCodeMissingOrderID, expected: http.StatusBadRequest},
		{code: constants.ErrCodeMissingCallbackURL, expected: http.StatusBadRequest},
		{code: constants.ErrCodeDuplicateExternalID, expected: http.StatusBadRequest},
		{code: constants.ErrCodeInvalidRequestBody, expected: http.StatusBadRequest},
		{code: constants.ErrCodeTransactionNotFound, expected: http.StatusNotFound},
		{code: constants.ErrCodeCallbackNotRegistered, expected: http.StatusNotFound},
		{code: constants.ErrCodeInternalError, expected: http.StatusInternalServerError},
		{code: "SOMETHING_ELSE", expected: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.expected, constants.GetHTTPStatus(tc.code))
		})
	}
}

func TestGetErrorMessage(t *testing.T) {
	assert.Equal(t, "Duplicate external id", constants.GetErrorMessage(constants.ErrCodeDuplicateExternalID))
	assert.Equal(t, "Not found", constants.GetErrorMessage(constants.ErrCodeTransactionNotFound))
	assert.Equal(t, "Internal server error", constants.GetErrorMessage("UNKNOWN"))
}
