package service

import "context"

// PaymentService wraps the external payment provider. The harness only
// creates and destroys payment objects for test isolation; pricing and
// billing rules stay with the provider.
type PaymentService interface {
	// CreateCustomer creates a payment customer for the identity.
	CreateCustomer(ctx context.Context, email, name string) (customerID string, err error)

	// AttachBankDebitPaymentMethod creates a test-mode bank-debit payment
	// method, attaches it to the customer, and marks it the default.
	AttachBankDebitPaymentMethod(ctx context.Context, customerID string) (paymentMethodID string, err error)

	// CreateSubscription creates a subscription against a named price lookup
	// (e.g. the monthly or annual fee plan).
	CreateSubscription(ctx context.Context, customerID, priceLookupKey string) (subscriptionID string, err error)

	// FindPromotionCode resolves an active promotion code literal to its id.
	FindPromotionCode(ctx context.Context, code string) (promotionCodeID string, err error)

	// LatestInvoiceStatus reports the status of the customer's most recent
	// invoice, for asserting that a subscription actually billed.
	LatestInvoiceStatus(ctx context.Context, customerID string) (string, error)

	// DeleteCustomer cancels the customer's subscriptions and deletes the
	// customer. Deleting an already-deleted customer is not an error.
	DeleteCustomer(ctx context.Context, customerID string) error
}
