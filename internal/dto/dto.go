package dto

import "defiant-meals-backend/internal/model"

// CartLine is a client-supplied cart entry. Prices are snapshots taken at
// add-to-cart time; the checkout service re-resolves them against the catalog.
type CartLine struct {
	MenuItemID     string                `json:"menuItemId"`
	Name           string                `json:"name"`
	Price          float64               `json:"price"`
	BasePrice      float64               `json:"basePrice"`
	Quantity       int                   `json:"quantity"`
	SelectedFlavor *model.SelectedFlavor `json:"selectedFlavor,omitempty"`
	SelectedAddons []model.SelectedAddon `json:"selectedAddons,omitempty"`
}

type CheckoutRequest struct {
	Items               []CartLine `json:"items"`
	CustomerName        string     `json:"customerName"`
	CustomerEmail       string     `json:"customerEmail"`
	CustomerPhone       string     `json:"customerPhone"`
	PickupDate          string     `json:"pickupDate"` // YYYY-MM-DD
	PickupTime          string     `json:"pickupTime"`
	SpecialInstructions string     `json:"specialInstructions"`
}

type GrabAndGoCheckoutRequest struct {
	Items         []CartLine `json:"items"`
	CustomerEmail string     `json:"customerEmail"`
}

type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

type CreateOrderRequest struct {
	CustomerName  string     `json:"customerName"`
	CustomerEmail string     `json:"customerEmail"`
	CustomerPhone string     `json:"customerPhone"`
	Items         []CartLine `json:"items"`
	CustomerNotes string     `json:"customerNotes"`
	PaymentMethod string     `json:"paymentMethod"`
	PickupDate    string     `json:"pickupDate"`
	PickupTime    string     `json:"pickupTime"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type PickupValidation struct {
	IsValid         bool   `json:"isValid"`
	Deadline        string `json:"deadline"`
	DaysUntilPickup int    `json:"daysUntilPickup"`
	Message         string `json:"message"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
