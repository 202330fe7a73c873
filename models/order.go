package models

import "time"

// OrderStatus represents all possible states of a laundry order
type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusAccepted   OrderStatus = "ACCEPTED"
	StatusInProgress OrderStatus = "IN_PROGRESS"
	StatusReady      OrderStatus = "READY"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// ValidStatus reports whether s is one of the defined order states.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusInProgress, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID            uint                 `json:"id" gorm:"primaryKey"`
	OrderNumber   string               `json:"order_number" gorm:"uniqueIndex;not null"`
	CustomerID    uint                 `json:"customer_id" gorm:"not null"`
	Customer      User                 `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	ShopID        uint                 `json:"shop_id" gorm:"not null"`
	Shop          Shop                 `json:"shop,omitempty" gorm:"foreignKey:ShopID"`
	Status        OrderStatus          `json:"status" gorm:"not null;default:'PENDING'"`
	TotalAmount   float64              `json:"total_amount"`
	PickupTime    time.Time            `json:"pickup_time"`
	DeliveryTime  time.Time            `json:"delivery_time"`
	Items         []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"order_id" gorm:"not null"`
	ServiceID uint    `json:"service_id" gorm:"not null"`
	Service   Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Price     float64 `json:"price" gorm:"not null"` // snapshot price at time of order
	Name      string  `json:"name"`                  // snapshot name
}

// OrderStatusHistory tracks every status change
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"` // user ID who triggered the transition
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
