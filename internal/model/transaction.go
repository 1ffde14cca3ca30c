package model

import "time"

const (
	FinalStatusSuccess = 300
	FinalStatusFailed  = 301

	FinalStatusSuccessMessage = "Transaction successful"
	FinalStatusFailedMessage  = "Transaction failed"

	// ResponseCodeAccepted is stored on every new record: the outcome is only
	// delivered later through the callback.
	ResponseCodeAccepted = 202

	AccountNumberUnavailable = "N/A"

	StatusHintSuccess = "success"
)

// Transaction is one collection attempt. Fields tagged json:"-" are storage
// bookkeeping and never leave the service.
type Transaction struct {
	TransactionID   string     `gorm:"column:transaction_id;primaryKey;type:varchar(64);<-:create" bson:"_id" json:"transaction_id"`
	OrderID         string     `gorm:"column:order_id;type:varchar(255);not null;index:idx_order_created" bson:"order_id" json:"order_id"`
	Amount          string     `gorm:"column:amount;type:varchar(64);not null" bson:"amount" json:"amount"`
	Currency        string     `gorm:"column:currency;type:varchar(16);not null" bson:"currency" json:"currency"`
	PayerNumber     string     `gorm:"column:payer_number;type:varchar(64);not null" bson:"payer_number" json:"payer_number"`
	AccountNumber   string     `gorm:"column:account_number;type:varchar(64)" bson:"account_number" json:"account_number"`
	Narration       string     `gorm:"column:narration;type:text" bson:"narration" json:"narration"`
	FinalStatus     int        `gorm:"column:final_status;not null" bson:"final_status" json:"final_status"`
	ResponseCode    int        `gorm:"column:response_code;not null" bson:"response_code" json:"response_code"`
	ResponseMessage string     `gorm:"column:response_message;type:varchar(255)" bson:"response_message" json:"response_message"`
	CallbackSent    bool       `gorm:"column:callback_sent;not null;default:false" bson:"callback_sent" json:"callback_sent"`
	Published       bool       `gorm:"column:published;not null;default:false;index:idx_published_created" bson:"published" json:"-"`
	PublishedAt     *time.Time `gorm:"column:published_at;null" bson:"published_at,omitempty" json:"-"`
	CreatedAt       time.Time  `gorm:"column:created_at;index:idx_order_created;index:idx_published_created" bson:"created_at" json:"-"`
	UpdatedAt       time.Time  `gorm:"column:updated_at" bson:"updated_at" json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// FinalStatusFor maps the caller's out-of-band intent to a final status code
// and message. Anything but "success" fails.
func FinalStatusFor(hint string) (int, string) {
	if hint == StatusHintSuccess {
		return FinalStatusSuccess, FinalStatusSuccessMessage
	}
	return FinalStatusFailed, FinalStatusFailedMessage
}
