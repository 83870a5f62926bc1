// Package impl contains the implementation of the harness's business logic.
package impl

import (
	"context"
	"log/slog"

	"clubharness/config"
	"clubharness/internal/domain/entity"
	domainerrors "clubharness/internal/domain/errors"
	"clubharness/internal/domain/lifecycle"
	"clubharness/internal/domain/repository"
	"clubharness/internal/domain/service"
	"clubharness/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/multierr"
)

// identityService implements the IdentityUsecase interface.
type identityService struct {
	txManager repository.TransactionManager
	authAdmin service.AuthAdmin
	payment   service.PaymentService
	persona   service.PersonaGenerator
	registry  *lifecycle.Registry
	cfg       *config.Config
	logger    *slog.Logger
}

// IdentityServiceParams holds dependencies for identityService, injected by Fx.
type IdentityServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	AuthAdmin service.AuthAdmin
	Payment   service.PaymentService `optional:"true"`
	Persona   service.PersonaGenerator
	Registry  *lifecycle.Registry
	Config    *config.Config
	Logger    *slog.Logger
}

// NewIdentityService is the constructor for identityService. It receives all dependencies as interfaces.
func NewIdentityService(params IdentityServiceParams) usecase.IdentityUsecase {
	return &identityService{
		txManager: params.TxManager,
		authAdmin: params.AuthAdmin,
		payment:   params.Payment,
		persona:   params.Persona,
		registry:  params.Registry,
		cfg:       params.Config,
		logger:    params.Logger,
	}
}

// Create mints a fully onboarded test identity. Partial failures tear down
// whatever was already created before the error is returned, so a failed
// call never leaks rows.
func (srv *identityService) Create(ctx context.Context, input usecase.CreateIdentityInput) (*usecase.CreateIdentityOutput, error) {
	if input.WithSubscription && srv.payment == nil {
		return nil, domainerrors.ErrMissingPaymentKey
	}

	// 1. Persona and credentials. Generated unless overridden.
	identity := &entity.TestIdentity{
		Email:    input.Email,
		Password: input.Password,
		Persona:  srv.persona.Generate(),
		Roles:    input.Roles,
	}
	if identity.Email == "" {
		identity.Email = srv.persona.UniqueEmail("member")
	}
	if identity.Password == "" {
		identity.Password = srv.persona.Password()
	}

	srv.logger.Info("Creating test identity",
		slog.String("email", identity.Email),
		slog.Any("roles", identity.Roles),
		slog.Bool("withSubscription", input.WithSubscription),
	)

	var undo []lifecycle.CleanupFunc
	fail := func(err error) (*usecase.CreateIdentityOutput, error) {
		if undoErr := runCleanups(context.WithoutCancel(ctx), undo); undoErr != nil {
			srv.logger.Warn("Partial identity teardown failed",
				slog.String("email", identity.Email),
				slog.Any("error", undoErr))
		}

		return nil, err
	}

	// 2. Waitlist stored procedure: creates the precursor profile plus its
	// waitlist entry, exactly as the application's public signup does.
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileID, waitlistID, err := repoFactory.ProfileRepo().CreateWaitlistProfile(ctx, identity.Email)
		if err != nil {
			return err
		}
		identity.ProfileID = profileID
		identity.WaitlistID = waitlistID

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create waitlist profile")
	}
	undo = append(undo, srv.deleteDomainRows(identity))

	// 3. Auth account through the admin endpoint, auto-confirmed unless the
	// scenario tests the confirmation flow itself.
	authUser, err := srv.authAdmin.CreateUser(ctx, identity.Email, identity.Password, !input.SkipConfirm)
	if err != nil {
		return fail(errors.Wrap(err, "failed to create auth account"))
	}
	identity.AuthUserID = authUser.ID
	undo = append(undo, srv.deleteAuthAccount(identity))

	// 4. Link the profile to the auth account.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.ProfileRepo().LinkAuthAccount(ctx, identity.ProfileID, identity.AuthUserID, identity.WaitlistID)
	})
	if err != nil {
		return fail(errors.Wrap(err, "failed to link auth account"))
	}

	// 5. Optional payment provisioning: customer, bank-debit default payment
	// method, subscription on the requested fee plan.
	if input.WithSubscription {
		if err := srv.provisionPayment(ctx, identity, input); err != nil {
			return fail(err)
		}
		undo = append(undo, srv.deletePaymentCustomer(identity))
	}

	// 6. Role grants. The baseline member role is implicit; only elevated
	// roles become grant rows, and the same set is mirrored into the
	// account's token claims.
	granted := identity.Roles.WithoutBaseline()
	if len(granted) > 0 {
		err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			return repoFactory.RoleRepo().GrantRoles(ctx, identity.ProfileID, granted)
		})
		if err != nil {
			return fail(errors.Wrap(err, "failed to grant roles"))
		}

		if err := srv.authAdmin.UpdateRoleClaims(ctx, identity.AuthUserID, granted.ToStrings()); err != nil {
			return fail(errors.Wrap(err, "failed to mirror role claims"))
		}
	}

	// 7. Registration completion RPC: writes the member row from the persona
	// and marks the waitlist entry completed.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		memberID, err := repoFactory.ProfileRepo().CompleteRegistration(ctx, identity.ProfileID, identity.Persona)
		if err != nil {
			return err
		}
		identity.MemberID = memberID

		return nil
	})
	if err != nil {
		return fail(errors.Wrap(err, "failed to complete member registration"))
	}

	// 8. Password sign-in, unless the scenario wants an unauthenticated
	// identity. Unconfirmed accounts cannot sign in.
	if !input.SkipSignIn && !input.SkipConfirm {
		session, err := srv.authAdmin.SignInWithPassword(ctx, identity.Email, identity.Password)
		if err != nil {
			return fail(errors.Wrap(err, "failed to sign in new identity"))
		}
		identity.Session = session
	}

	// 9. Hand out the teardown and register it. Once-wrapped so calling it
	// directly and running the registry cannot double-delete.
	cleanup := lifecycle.Once(srv.buildCleanup(identity))
	srv.registry.Register("identity "+identity.Email, cleanup)

	srv.logger.Debug("Created test identity",
		slog.String("email", identity.Email),
		slog.Any("profileID", identity.ProfileID),
		slog.Any("memberID", identity.MemberID),
	)

	return &usecase.CreateIdentityOutput{
		Identity: identity,
		Cleanup:  cleanup,
	}, nil
}

// provisionPayment creates the payment customer, its default bank-debit
// payment method, and the requested subscription.
func (srv *identityService) provisionPayment(ctx context.Context, identity *entity.TestIdentity, input usecase.CreateIdentityInput) error {
	name := identity.Persona.FirstName + " " + identity.Persona.LastName
	customerID, err := srv.payment.CreateCustomer(ctx, identity.Email, name)
	if err != nil {
		return errors.Wrap(err, "failed to create payment customer")
	}
	identity.StripeCustomerID = customerID

	if _, err := srv.payment.AttachBankDebitPaymentMethod(ctx, customerID); err != nil {
		return errors.Wrap(err, "failed to attach payment method")
	}

	lookupKey := input.PriceLookupKey
	if lookupKey == "" && srv.cfg.Stripe != nil {
		lookupKey = srv.cfg.Stripe.MonthlyPriceLookup
	}
	if lookupKey == "" {
		return errors.New("no price lookup key configured for subscription")
	}

	if input.PromotionCode != "" {
		if _, err := srv.payment.FindPromotionCode(ctx, input.PromotionCode); err != nil {
			return errors.Wrapf(err, "failed to resolve promotion code %q", input.PromotionCode)
		}
	}

	if _, err := srv.payment.CreateSubscription(ctx, customerID, lookupKey); err != nil {
		return errors.Wrap(err, "failed to create subscription")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.ProfileRepo().SetPaymentCustomer(ctx, identity.ProfileID, customerID)
	})

	return errors.Wrap(err, "failed to record payment customer")
}

// buildCleanup assembles the full teardown for a finished identity:
// roles, member, waitlist, profile, auth account, payment customer.
func (srv *identityService) buildCleanup(identity *entity.TestIdentity) lifecycle.CleanupFunc {
	return func(ctx context.Context) error {
		var errs error
		errs = multierr.Append(errs, srv.deleteDomainRows(identity)(ctx))
		errs = multierr.Append(errs, srv.deleteAuthAccount(identity)(ctx))
		if identity.StripeCustomerID != "" {
			errs = multierr.Append(errs, srv.deletePaymentCustomer(identity)(ctx))
		}

		return errs
	}
}

// deleteDomainRows removes everything the database side of creation wrote,
// children before parents. Rows that are already gone are skipped.
func (srv *identityService) deleteDomainRows(identity *entity.TestIdentity) lifecycle.CleanupFunc {
	return func(ctx context.Context) error {
		err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			if err := repoFactory.RoleRepo().DeleteByProfileID(ctx, identity.ProfileID); err != nil {
				return err
			}
			if err := repoFactory.ProfileRepo().DeleteMember(ctx, identity.ProfileID); err != nil && !isGone(err) {
				return err
			}
			if identity.WaitlistID != uuid.Nil {
				if err := repoFactory.WaitlistRepo().Delete(ctx, identity.WaitlistID); err != nil && !isGone(err) {
					return err
				}
			}
			if err := repoFactory.ProfileRepo().DeleteProfile(ctx, identity.ProfileID); err != nil && !isGone(err) {
				return err
			}

			return nil
		})

		return errors.Wrap(err, "failed to delete identity rows")
	}
}

// deleteAuthAccount removes the auth account; already-deleted is success.
func (srv *identityService) deleteAuthAccount(identity *entity.TestIdentity) lifecycle.CleanupFunc {
	return func(ctx context.Context) error {
		err := srv.authAdmin.DeleteUser(ctx, identity.AuthUserID)
		if err != nil && !isGone(err) {
			return errors.Wrap(err, "failed to delete auth account")
		}

		return nil
	}
}

// deletePaymentCustomer removes the payment customer and its subscriptions.
func (srv *identityService) deletePaymentCustomer(identity *entity.TestIdentity) lifecycle.CleanupFunc {
	return func(ctx context.Context) error {
		if srv.payment == nil || identity.StripeCustomerID == "" {
			return nil
		}

		return errors.Wrap(srv.payment.DeleteCustomer(ctx, identity.StripeCustomerID), "failed to delete payment customer")
	}
}

// runCleanups executes undo steps in reverse order, attempting all of them.
func runCleanups(ctx context.Context, cleanups []lifecycle.CleanupFunc) error {
	var errs error
	for i := len(cleanups) - 1; i >= 0; i-- {
		errs = multierr.Append(errs, cleanups[i](ctx))
	}

	return errs
}

// isGone reports whether err means the row or account no longer exists.
func isGone(err error) bool {
	return errors.Is(err, domainerrors.ErrNotFound) ||
		errors.Is(err, repository.ErrProfileNotFound) ||
		errors.Is(err, repository.ErrMemberNotFound) ||
		errors.Is(err, repository.ErrWaitlistEntryNotFound)
}
