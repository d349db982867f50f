package app

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"pixshield/internal/backend"
	"pixshield/internal/config"
	"pixshield/internal/detect"
	"pixshield/internal/services"
	"pixshield/internal/store"
	"pixshield/pkg/pixkey"
)

type App struct {
	Config *config.Config

	Backend    *backend.Client
	Classifier *pixkey.Classifier
	Store      store.TransactionStore

	// --- Initialized Services ---
	KeyService     *services.KeyService
	PixService     *services.PixService
	AccountService *services.AccountService
}

// NewApp wires the backend client and the services from cfg. It does not
// contact the backend.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	app := &App{Config: cfg}

	if err := app.initLogging(); err != nil {
		return nil, err
	}
	if err := app.initBackend(); err != nil {
		return nil, err
	}
	if err := app.initClassifier(); err != nil {
		return nil, err
	}
	app.initCoreServices()

	log.WithField("backend", app.Backend.BaseURL()).Debug("application initialization complete")
	return app, nil
}

// NewDetector returns a key detector using the configured delay and threshold.
func (a *App) NewDetector(opts ...detect.Option) *detect.Detector {
	base := []detect.Option{
		detect.WithDelay(a.Config.Detect.Delay),
		detect.WithMinLength(a.Config.Detect.MinLength),
	}
	return detect.NewDetector(a.Classifier, append(base, opts...)...)
}

// --- Private Helper Methods ---

func (a *App) initLogging() error {
	level, err := log.ParseLevel(a.Config.Log.Level)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	if strings.EqualFold(a.Config.Log.Format, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func (a *App) initBackend() error {
	contract, err := backend.ParseContract(a.Config.Backend.Contract)
	if err != nil {
		return fmt.Errorf("init backend client: %w", err)
	}
	a.Backend = backend.New(a.Config.Backend.BaseURL, a.Config.Backend.Timeout, contract)
	return nil
}

func (a *App) initClassifier() error {
	fallback, err := pixkey.ParseFallback(a.Config.PixKey.Fallback)
	if err != nil {
		return fmt.Errorf("init classifier: %w", err)
	}
	a.Classifier = pixkey.New(pixkey.WithFallback(fallback))
	return nil
}

func (a *App) initCoreServices() {
	a.Store = store.NewMemoryStore(a.Config.History.MaxRecords)
	a.KeyService = services.NewKeyService(a.Classifier)
	a.PixService = services.NewPixService(a.Backend, a.KeyService, services.WithTransactionStore(a.Store))
	a.AccountService = services.NewAccountService(a.Config.Account.Holder, a.Config.Account.BalanceCents)
}
