package model

// Stripe webhook payload shapes, limited to the fields this service reads.

type StripeCustomerDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type StripeCheckoutSession struct {
	ID              string                `json:"id"`
	Object          string                `json:"object"`
	AmountTotal     int64                 `json:"amount_total"` // cents
	Currency        string                `json:"currency"`
	PaymentIntentID string                `json:"payment_intent"`
	PaymentStatus   string                `json:"payment_status"`
	CustomerDetails StripeCustomerDetails `json:"customer_details"`
	Metadata        map[string]string     `json:"metadata"`
}

type StripeEventData struct {
	Object StripeCheckoutSession `json:"object"`
}

type StripeEvent struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	CreateTime int64           `json:"created"`
	Data       StripeEventData `json:"data"`
}
