package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"clubharness/config"
	"clubharness/internal/domain/lifecycle"
	"clubharness/internal/domain/service"
	"clubharness/internal/infra/auth"
	logs "clubharness/internal/infra/log"
	"clubharness/internal/infra/payment"
	"clubharness/internal/infra/persistence/postgres"
	"clubharness/internal/infra/persona"
	"clubharness/internal/infra/qrcode"
	"clubharness/internal/infra/storage"
	"clubharness/internal/usecase"
	"clubharness/internal/usecase/impl"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// cliFlags holds the parsed command-line options.
type cliFlags struct {
	seed  int
	purge bool
	qrFor string
	qrOut string
}

func main() {
	flags := &cliFlags{}
	flag.IntVar(&flags.seed, "seed", 0, "provision n test identities plus a demo workshop and inventory set")
	flag.BoolVar(&flags.purge, "purge", false, "tear down everything created in this run before exiting")
	flag.StringVar(&flags.qrFor, "qr", "", "write a check-in QR PNG for the given registration id")
	flag.StringVar(&flags.qrOut, "qr-out", "checkin.png", "output path for the check-in QR PNG")
	flag.Parse()

	fx.New(
		fx.Supply(flags),
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		fx.Invoke(
			run,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewAdminClient,
			persona.NewGenerator,
			lifecycle.NewRegistry,
			newPaymentService,
			newObjectStore,
			newQRCodeService,
		),
	)
}

// newPaymentService creates the payment service; payments are optional.
func newPaymentService(cfg *config.Config, logger *slog.Logger) (service.PaymentService, error) {
	if cfg.Stripe == nil {
		return nil, nil // payments are optional
	}

	return payment.NewStripeService(cfg, logger)
}

// newObjectStore creates the object store; storage is optional.
func newObjectStore(params storage.Params) (service.ObjectStore, error) {
	if params.Config.Storage == nil {
		return nil, nil // storage is optional
	}

	return storage.New(params)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewIdentityService,
			impl.NewSessionService,
			impl.NewFixtureService,
		),
	)
}

// runParams holds the dependencies the CLI entrypoint needs.
type runParams struct {
	fx.In

	Flags      *cliFlags
	Identities usecase.IdentityUsecase
	Fixtures   usecase.FixtureUsecase
	QRService  service.QRCodeService
	Registry   *lifecycle.Registry
	Logger     *slog.Logger
	Shutdowner fx.Shutdowner
}

func run(params runParams) {
	go func() {
		err := execute(context.Background(), params)
		if err != nil {
			params.Logger.Error("Harness run failed", slog.Any("error", err))
		}

		code := 0
		if err != nil {
			code = 1
		}
		if shutdownErr := params.Shutdowner.Shutdown(fx.ExitCode(code)); shutdownErr != nil {
			os.Exit(code)
		}
	}()
}

func execute(ctx context.Context, params runParams) error {
	if params.Flags.qrFor != "" {
		return writeCheckInQR(params)
	}

	if params.Flags.seed > 0 {
		if err := seed(ctx, params); err != nil {
			return err
		}
	}

	if params.Flags.purge {
		params.Logger.Info("Purging created fixtures", slog.Int("steps", params.Registry.Len()))

		return params.Registry.Run(ctx)
	}

	return nil
}

// seed provisions n identities plus a demo workshop and inventory set.
func seed(ctx context.Context, params runParams) error {
	for i := 0; i < params.Flags.seed; i++ {
		output, err := params.Identities.Create(ctx, usecase.CreateIdentityInput{})
		if err != nil {
			return fmt.Errorf("failed to seed identity %d: %w", i+1, err)
		}
		params.Logger.Info("Seeded identity", slog.String("email", output.Identity.Email))
	}

	workshop, err := params.Fixtures.CreateWorkshop(ctx, usecase.WorkshopInput{})
	if err != nil {
		return fmt.Errorf("failed to seed workshop: %w", err)
	}
	params.Logger.Info("Seeded workshop", slog.String("title", workshop.Title))

	container, err := params.Fixtures.CreateContainer(ctx, "", "")
	if err != nil {
		return fmt.Errorf("failed to seed container: %w", err)
	}
	category, err := params.Fixtures.CreateCategory(ctx, "", nil)
	if err != nil {
		return fmt.Errorf("failed to seed category: %w", err)
	}
	if _, err := params.Fixtures.CreateItem(ctx, usecase.ItemInput{
		ContainerID: container.ID,
		CategoryID:  category.ID,
	}); err != nil {
		return fmt.Errorf("failed to seed item: %w", err)
	}

	return nil
}

// writeCheckInQR renders a check-in QR for an existing registration id.
func writeCheckInQR(params runParams) error {
	registrationID, err := parseRegistrationID(params.Flags.qrFor)
	if err != nil {
		return err
	}

	pngBytes, err := params.QRService.GenerateCheckInQR(registrationID.id, registrationID.code)
	if err != nil {
		return fmt.Errorf("failed to generate check-in QR: %w", err)
	}

	if err := os.WriteFile(params.Flags.qrOut, pngBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write QR file: %w", err)
	}
	params.Logger.Info("Wrote check-in QR", slog.String("path", params.Flags.qrOut))

	return nil
}

type registrationRef struct {
	id   uuid.UUID
	code string
}

// parseRegistrationID splits "-qr id[:code]" into its parts.
func parseRegistrationID(raw string) (registrationRef, error) {
	idPart, code := raw, ""
	if i := strings.IndexByte(raw, ':'); i >= 0 {
		idPart, code = raw[:i], raw[i+1:]
	}

	id, err := uuid.Parse(idPart)
	if err != nil {
		return registrationRef{}, fmt.Errorf("invalid registration id %q: %w", idPart, err)
	}

	return registrationRef{id: id, code: code}, nil
}
