package models

import "time"

// Order and its product memberships form one consistency unit: TotalPrice is
// always the sum of the prices of the currently associated products and is
// recomputed inside the same transaction as any membership change.
//
// The order_details join table carries nothing beyond the two foreign keys.
// A product appears in an order at most once; there is no quantity column.
type Order struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderRef   string    `gorm:"unique" json:"order_ref"`
	CustomerID uint      `gorm:"not null" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	OrderDate  time.Time `gorm:"not null" json:"order_date"`
	Status     string    `gorm:"not null" json:"status"`
	Products   []Product `gorm:"many2many:order_details" json:"products"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}
