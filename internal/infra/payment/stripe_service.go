// Package payment implements the payment-provider service on top of the
// Stripe test-mode API.
package payment

import (
	"context"
	"log/slog"
	"strings"

	"clubharness/config"
	domainerrors "clubharness/internal/domain/errors"
	"clubharness/internal/domain/service"
	"clubharness/internal/errors"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// Test-mode US bank account that settles instantly, per the provider's
// test documentation.
const (
	testBankRoutingNumber = "110000000"
	testBankAccountNumber = "000123456789"
)

// stripeService implements the PaymentService interface against Stripe.
type stripeService struct {
	api    *client.API
	logger *slog.Logger
}

// NewStripeService is the constructor for stripeService. It fails fast when
// the secret key is absent so a misconfigured run never reaches the provider.
func NewStripeService(cfg *config.Config, logger *slog.Logger) (service.PaymentService, error) {
	if cfg.Stripe == nil || strings.TrimSpace(cfg.Stripe.SecretKey) == "" {
		return nil, domainerrors.ErrMissingPaymentKey
	}

	api := &client.API{}
	api.Init(cfg.Stripe.SecretKey, nil)

	return &stripeService{
		api:    api,
		logger: logger,
	}, nil
}

// CreateCustomer creates a payment customer for the identity.
func (s *stripeService) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	customer, err := s.api.Customers.New(&stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
		Email:  stripe.String(email),
		Name:   stripe.String(name),
	})
	if err != nil {
		return "", errors.Wrap(err, "create payment customer")
	}
	s.logger.Debug("Created payment customer", slog.String("customer_id", customer.ID))

	return customer.ID, nil
}

// AttachBankDebitPaymentMethod creates a test-mode bank-debit payment method,
// attaches it to the customer, and marks it the customer's default.
func (s *stripeService) AttachBankDebitPaymentMethod(ctx context.Context, customerID string) (string, error) {
	paymentMethod, err := s.api.PaymentMethods.New(&stripe.PaymentMethodParams{
		Params: stripe.Params{Context: ctx},
		Type:   stripe.String("us_bank_account"),
		USBankAccount: &stripe.PaymentMethodUSBankAccountParams{
			AccountHolderType: stripe.String("individual"),
			AccountNumber:     stripe.String(testBankAccountNumber),
			RoutingNumber:     stripe.String(testBankRoutingNumber),
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "create bank debit payment method")
	}

	_, err = s.api.PaymentMethods.Attach(paymentMethod.ID, &stripe.PaymentMethodAttachParams{
		Params:   stripe.Params{Context: ctx},
		Customer: stripe.String(customerID),
	})
	if err != nil {
		return "", errors.Wrap(err, "attach payment method")
	}

	_, err = s.api.Customers.Update(customerID, &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(paymentMethod.ID),
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "set default payment method")
	}

	return paymentMethod.ID, nil
}

// CreateSubscription creates a subscription against a named price lookup key.
// Lookup keys are resolved at call time, so rotating prices in the provider
// dashboard does not break fixtures.
func (s *stripeService) CreateSubscription(ctx context.Context, customerID, priceLookupKey string) (string, error) {
	priceParams := &stripe.PriceListParams{
		LookupKeys: stripe.StringSlice([]string{priceLookupKey}),
	}
	priceParams.Context = ctx

	priceIter := s.api.Prices.List(priceParams)
	if !priceIter.Next() {
		if err := priceIter.Err(); err != nil {
			return "", errors.Wrap(err, "list prices")
		}

		return "", errors.Errorf("no price found for lookup key %q", priceLookupKey)
	}
	price := priceIter.Price()

	subscription, err := s.api.Subscriptions.New(&stripe.SubscriptionParams{
		Params:   stripe.Params{Context: ctx},
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(price.ID)},
		},
		// Bank debits settle asynchronously in test mode; the subscription
		// must not fail while the first payment is pending.
		PaymentBehavior: stripe.String("allow_incomplete"),
	})
	if err != nil {
		return "", errors.Wrap(err, "create subscription")
	}
	s.logger.Debug("Created subscription",
		slog.String("customer_id", customerID),
		slog.String("subscription_id", subscription.ID),
		slog.String("price_lookup_key", priceLookupKey),
	)

	return subscription.ID, nil
}

// FindPromotionCode resolves an active promotion code literal to its id.
func (s *stripeService) FindPromotionCode(ctx context.Context, code string) (string, error) {
	params := &stripe.PromotionCodeListParams{
		Code:   stripe.String(code),
		Active: stripe.Bool(true),
	}
	params.Context = ctx

	iter := s.api.PromotionCodes.List(params)
	if !iter.Next() {
		if err := iter.Err(); err != nil {
			return "", errors.Wrap(err, "list promotion codes")
		}

		return "", domainerrors.ErrNotFound.WrapMessage("promotion code " + code)
	}

	return iter.PromotionCode().ID, nil
}

// LatestInvoiceStatus reports the status of the customer's most recent invoice.
func (s *stripeService) LatestInvoiceStatus(ctx context.Context, customerID string) (string, error) {
	params := &stripe.InvoiceListParams{
		Customer: stripe.String(customerID),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	iter := s.api.Invoices.List(params)
	if !iter.Next() {
		if err := iter.Err(); err != nil {
			return "", errors.Wrap(err, "list invoices")
		}

		return "", domainerrors.ErrNotFound.WrapMessage("no invoices for customer " + customerID)
	}

	return string(iter.Invoice().Status), nil
}

// DeleteCustomer cancels the customer's subscriptions and deletes the
// customer. A customer that is already gone is treated as success; teardown
// must be repeatable.
func (s *stripeService) DeleteCustomer(ctx context.Context, customerID string) error {
	subParams := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
	}
	subParams.Context = ctx

	subIter := s.api.Subscriptions.List(subParams)
	for subIter.Next() {
		subscription := subIter.Subscription()
		if _, err := s.api.Subscriptions.Cancel(subscription.ID, &stripe.SubscriptionCancelParams{
			Params: stripe.Params{Context: ctx},
		}); err != nil && !isResourceMissing(err) {
			return errors.Wrapf(err, "cancel subscription %s", subscription.ID)
		}
	}
	if err := subIter.Err(); err != nil && !isResourceMissing(err) {
		return errors.Wrap(err, "list subscriptions")
	}

	if _, err := s.api.Customers.Del(customerID, &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
	}); err != nil && !isResourceMissing(err) {
		return errors.Wrap(err, "delete payment customer")
	}
	s.logger.Debug("Deleted payment customer", slog.String("customer_id", customerID))

	return nil
}

// isResourceMissing reports whether err is the provider's not-found rejection.
func isResourceMissing(err error) bool {
	stripeErr, ok := errors.AsType[*stripe.Error](err)

	return ok && stripeErr.Code == stripe.ErrorCodeResourceMissing
}
