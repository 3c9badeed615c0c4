package models

import "time"

// CustomerAccount holds the login credential for a customer. The password is
// stored as a bcrypt hash and never serialized.
type CustomerAccount struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CustomerID   *uint     `json:"customer_id"`
	Customer     *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
