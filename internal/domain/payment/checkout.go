package payment

import "context"

// CheckoutLine is one priced line of a checkout session. UnitAmount is in
// minor currency units (cents), the way providers bill.
type CheckoutLine struct {
	Name        string
	Description string
	UnitAmount  int64
	Quantity    int64
}

// CheckoutRequest describes a checkout session to create with the provider.
type CheckoutRequest struct {
	Lines         []CheckoutLine
	CustomerEmail string
	Metadata      map[string]string
	SuccessURL    string
	CancelURL     string
	SubmitNote    string
}

// CheckoutGateway creates hosted checkout sessions and returns the redirect
// URL the buyer completes payment at.
type CheckoutGateway interface {
	CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (string, error)
}
