package model

import "time"

// CallbackRegistrationID is the fixed key of the single registration.
const CallbackRegistrationID = "client_default"

type CallbackRegistration struct {
	ID          string    `gorm:"column:id;primaryKey;type:varchar(64)" bson:"_id" json:"-"`
	CallbackURL string    `gorm:"column:callback_url;type:text;not null" bson:"callback_url" json:"callback_url"`
	UpdatedAt   time.Time `gorm:"column:updated_at" bson:"updated_at" json:"updated_at"`
}

func (CallbackRegistration) TableName() string {
	return "callbacks"
}
