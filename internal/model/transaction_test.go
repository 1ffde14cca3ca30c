package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Behyna/collect-gateway/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalStatusFor(t *testing.T) {
	testCases := []struct {
		hint            string
		expectedCode    int
		expectedMessage string
	}{
		{hint: "success", expectedCode: 300, expectedMessage: "Transaction successful"},
		{hint: "", expectedCode: 301, expectedMessage: "Transaction failed"},
		{hint: "failed", expectedCode: 301, expectedMessage: "Transaction failed"},
		{hint: "SUCCESS", expectedCode: 301, expectedMessage: "Transaction failed"},
	}

	for _, tc := range testCases {
		t.Run(tc.hint, func(t *testing.T) {
			code, message := model.FinalStatusFor(tc.hint)

			assert.Equal(t, tc.expectedCode, code)
			assert.Equal(t, tc.expectedMessage, message)
		})
	}
}

func TestTransaction_JSONHidesBookkeeping(t *testing.T) {
	now := time.Now()
	tx := model.Transaction{
		TransactionID: "CCT1",
		OrderID:       "ref-1",
		Published:     true,
		PublishedAt:   &now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	raw, err := json.Marshal(tx)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Len(t, doc, 11)
	assert.Equal(t, "CCT1", doc["transaction_id"])
	assert.Equal(t, false, doc["callback_sent"])
	assert.NotContains(t, doc, "published")
	assert.NotContains(t, doc, "created_at")
}
