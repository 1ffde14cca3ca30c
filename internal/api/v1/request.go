package v1

import (
	"bytes"
	"encoding/json"
)

type CollectRequest struct {
	PayerNumber       string         `json:"payer_number"`
	ExternalReference string         `json:"external_reference"`
	PaymentNarration  string         `json:"payment_narration"`
	Currency          string         `json:"currency"`
	Amount            FlexibleString `json:"amount"`
	AccountNumber     *string        `json:"account_number"`
}

type RegisterCallbackRequest struct {
	CallbackURL string `json:"callback_url"`
}

// FlexibleString accepts a JSON string or number and keeps its text.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexibleString(n.String())

	return nil
}
