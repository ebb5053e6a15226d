// Package bootstrap wires configuration into stores, transports, services
// and the HTTP router.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"forms-backend/internal/applications"
	"forms-backend/internal/contact"
	"forms-backend/internal/mailer"
	"forms-backend/internal/resumes"
	"forms-backend/internal/services/health"
	"forms-backend/internal/shared/config"
	"forms-backend/internal/shared/server"
	"forms-backend/internal/shared/storage/db"
	"forms-backend/internal/shared/storage/object"
	localstore "forms-backend/internal/shared/storage/object/local"
	s3store "forms-backend/internal/shared/storage/object/s3"
	"forms-backend/internal/shared/telemetry"
)

const defaultAWSRegion = "us-east-1"

// App holds shared dependencies.
type App struct {
	Config             config.Config
	Router             *gin.Engine
	DB                 *sql.DB
	Store              object.ObjectStore
	Records            applications.Repo
	Mailer             *mailer.Mailer
	ContactService     *contact.Service
	ApplicationService *applications.Service
}

// Build prepares every dependency and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	if err := os.MkdirAll(cfg.TemplatesDir, 0o755); err != nil {
		return nil, fmt.Errorf("create templates dir: %w", err)
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Store: store}

	if err := buildRecords(ctx, app); err != nil {
		return nil, err
	}

	transport, err := buildTransport(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Mailer = mailer.New(mailer.Config{
		CompanyName:  cfg.CompanyName,
		Sender:       cfg.Mail.SenderEmail,
		TemplatesDir: cfg.TemplatesDir,
		AssetsDir:    cfg.AssetsDir,
	}, transport)

	app.ContactService = &contact.Service{
		Notifier:     app.Mailer,
		CompanyInbox: cfg.Mail.ReceiverEmail,
	}
	app.ApplicationService = &applications.Service{
		Repo:     app.Records,
		Resumes:  resumes.NewIntake(store),
		Notifier: app.Mailer,
	}

	healthSvc := health.NewService(nil)
	if app.DB != nil {
		healthSvc = health.NewService(app.DB)
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         cfg,
		Health:         healthSvc,
		ContactHandler: &contact.Handler{Svc: app.ContactService},
		ApplicationHandler: &applications.Handler{
			Svc:            app.ApplicationService,
			MaxUploadBytes: cfg.MaxUploadBytes,
		},
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":            cfg.Env,
		"object_store":   cfg.ObjectStoreType,
		"record_store":   cfg.RecordStoreType,
		"mail_transport": cfg.Mail.Transport,
		"company_inbox":  cfg.Mail.ReceiverEmail != "",
	})
	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
		a.DB = nil
	}
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, awsRegion(cfg), cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		if err := os.MkdirAll(cfg.ResumesDir, 0o755); err != nil {
			return nil, fmt.Errorf("create resumes dir: %w", err)
		}
		return localstore.New(cfg.ResumesDir), nil
	}
}

func buildRecords(ctx context.Context, app *App) error {
	cfg := app.Config
	if cfg.RecordStoreType == "postgres" {
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			return fmt.Errorf("connect record store: %w", err)
		}
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return fmt.Errorf("migrate record store: %w", err)
		}
		app.DB = sqlDB
		app.Records = &applications.PGRepo{DB: sqlDB}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.ApplicationsDB), 0o755); err != nil {
		return fmt.Errorf("create record store dir: %w", err)
	}
	app.Records = applications.NewFileRepo(cfg.ApplicationsDB)
	return nil
}

func buildTransport(ctx context.Context, cfg config.Config) (mailer.Transport, error) {
	switch cfg.Mail.Transport {
	case "ses":
		return mailer.NewSESTransport(ctx, awsRegion(cfg))
	case "log":
		return mailer.LogTransport{}, nil
	default:
		if cfg.Mail.SenderEmail == "" || cfg.Mail.SenderPassword == "" {
			telemetry.Warn("bootstrap.smtp_credentials_missing", map[string]any{
				"server": cfg.Mail.SMTPServer,
			})
		}
		return &mailer.SMTPTransport{
			Host:     cfg.Mail.SMTPServer,
			Port:     cfg.Mail.SMTPPort,
			Username: cfg.Mail.SenderEmail,
			Password: cfg.Mail.SenderPassword,
			UseTLS:   cfg.Mail.SMTPUseTLS,
			Timeout:  cfg.Mail.SMTPTimeout,
		}, nil
	}
}

func awsRegion(cfg config.Config) string {
	if strings.TrimSpace(cfg.AWSRegion) == "" {
		return defaultAWSRegion
	}
	return cfg.AWSRegion
}
