package service

import "time"

type CreateTransactionCommand struct {
	PayerNumber       string `validate:"required"`
	ExternalReference string `validate:"required"`
	PaymentNarration  string `validate:"required"`
	Currency          string `validate:"required"`
	Amount            string `validate:"required"`
	AccountNumber     string
	StatusHint        string
}

type RegisterCallbackCommand struct {
	CallbackURL string `validate:"required"`
}

// TransactionCreatedEvent is the body of a transaction.created message.
type TransactionCreatedEvent struct {
	TransactionID string    `json:"transaction_id"`
	OrderID       string    `json:"order_id"`
	CreatedAt     time.Time `json:"created_at"`
}
