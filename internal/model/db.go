package model

import "time"

type FlavorOption struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

type AddonOption struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Available   bool    `json:"available"`
}

type MenuItem struct {
	ID          string  `gorm:"primaryKey;size:64;not null" json:"id"`
	Name        string  `gorm:"size:128;not null" json:"name"`
	Category    string  `gorm:"size:64;index" json:"category"`
	Price       float64 `gorm:"not null" json:"price"`
	Description string  `json:"description"`
	Available   bool    `gorm:"not null;default:true" json:"available"`
	ImageURL    string  `json:"imageUrl"`

	Calories string `gorm:"size:32" json:"calories"`
	Protein  string `gorm:"size:32" json:"protein"`
	Fats     string `gorm:"size:32" json:"fats"`
	Carbs    string `gorm:"size:32" json:"carbs"`

	FlavorOptions            []FlavorOption `gorm:"serializer:json" json:"flavorOptions"`
	AddonOptions             []AddonOption  `gorm:"serializer:json" json:"addonOptions"`
	AllowFlavorCustomization bool           `json:"allowFlavorCustomization"`
	AllowAddonCustomization  bool           `json:"allowAddonCustomization"`

	// Grab & Go: only these items carry tracked stock.
	IsGrabAndGo bool `gorm:"index" json:"isGrabAndGo"`
	Inventory   int  `gorm:"not null;default:0" json:"inventory"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Category struct {
	ID          string    `gorm:"primaryKey;size:64;not null" json:"id"`
	Name        string    `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Description string    `json:"description"`
	SortOrder   int       `gorm:"not null;default:0" json:"sortOrder"`
	Available   bool      `gorm:"not null;default:true" json:"available"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "new"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type SelectedFlavor struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type SelectedAddon struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Order struct {
	ID            string `gorm:"primaryKey;size:64;not null" json:"id"`
	CustomerName  string `gorm:"size:128;not null" json:"customerName"`
	CustomerEmail string `gorm:"size:128;index" json:"customerEmail"`
	CustomerPhone string `gorm:"size:32" json:"customerPhone"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	CustomerNotes string  `gorm:"size:500" json:"customerNotes"`
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	TotalAmount   float64 `gorm:"not null" json:"totalAmount"`
	PaymentMethod string  `gorm:"size:32" json:"paymentMethod"`

	PickupDate time.Time `gorm:"not null;index" json:"pickupDate"`
	PickupTime string    `gorm:"size:32" json:"pickupTime"`

	Status     OrderStatus `gorm:"size:32;index;not null" json:"status"`
	AdminNotes string      `json:"adminNotes"`

	// Admin-created orders bypass the customer ordering deadline.
	IsAdminOrder bool `gorm:"not null;default:false" json:"isAdminOrder"`

	// One order per checkout session; the unique index is the guarantee,
	// the service-level existence check is just an optimization. Nullable:
	// admin and pay-on-pickup orders have no session.
	StripeSessionID       *string `gorm:"size:128;uniqueIndex" json:"stripeSessionId,omitempty"`
	StripePaymentIntentID string  `gorm:"size:128" json:"stripePaymentIntentId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OrderItem struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	OrderID    string `gorm:"size:64;index;not null" json:"orderId"`
	MenuItemID string `gorm:"size:64;index;not null" json:"menuItemId"`

	Name      string  `gorm:"size:128;not null" json:"name"`
	Price     float64 `gorm:"not null" json:"price"`
	BasePrice float64 `gorm:"not null" json:"basePrice"`
	Quantity  int     `gorm:"not null" json:"quantity"`

	SelectedFlavor *SelectedFlavor `gorm:"serializer:json" json:"selectedFlavor,omitempty"`
	SelectedAddons []SelectedAddon `gorm:"serializer:json" json:"selectedAddons"`

	CreatedAt time.Time `json:"createdAt"`
}

type GrabAndGoStatus string

const (
	GrabAndGoStatusPending   GrabAndGoStatus = "pending"
	GrabAndGoStatusPaid      GrabAndGoStatus = "paid"
	GrabAndGoStatusReady     GrabAndGoStatus = "ready"
	GrabAndGoStatusPickedUp  GrabAndGoStatus = "picked_up"
	GrabAndGoStatusCancelled GrabAndGoStatus = "cancelled"
)

func (s GrabAndGoStatus) Valid() bool {
	switch s {
	case GrabAndGoStatusPending, GrabAndGoStatusPaid, GrabAndGoStatusReady,
		GrabAndGoStatusPickedUp, GrabAndGoStatusCancelled:
		return true
	}
	return false
}

type GrabAndGoOrder struct {
	ID            string `gorm:"primaryKey;size:64;not null" json:"id"`
	CustomerName  string `gorm:"size:128" json:"customerName"`
	CustomerEmail string `gorm:"size:128" json:"customerEmail"`

	Items []GrabAndGoOrderItem `gorm:"foreignKey:OrderID" json:"items"`

	TotalAmount float64         `gorm:"not null" json:"totalAmount"`
	Status      GrabAndGoStatus `gorm:"size:32;index;not null" json:"status"`
	AdminNotes  string          `json:"adminNotes"`

	StripeSessionID       string `gorm:"size:128;uniqueIndex" json:"stripeSessionId"`
	StripePaymentIntentID string `gorm:"size:128" json:"stripePaymentIntentId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type GrabAndGoOrderItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	OrderID    string  `gorm:"size:64;index;not null" json:"orderId"`
	MenuItemID string  `gorm:"size:64;index;not null" json:"menuItemId"`
	Name       string  `gorm:"size:128;not null" json:"name"`
	Price      float64 `gorm:"not null" json:"price"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time
}

type TimeWindow struct {
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`
}

// ScheduleDay is one row per weekday (time.Weekday numbering, Sunday = 0).
type ScheduleDay struct {
	Weekday   int          `gorm:"primaryKey" json:"weekday"`
	Open      bool         `gorm:"not null;default:false" json:"open"`
	Windows   []TimeWindow `gorm:"serializer:json" json:"windows"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;not null"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}
