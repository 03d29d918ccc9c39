package models

import "time"

// User is a local shadow of an identity-provider account. ID is the
// provider-issued subject, never generated here.
type User struct {
	ID        string    `gorm:"type:varchar(64);primarykey" json:"id"`
	Username  string    `gorm:"size:100;not null;index" json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
