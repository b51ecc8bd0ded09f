package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"boutique/internal/config"
	"boutique/internal/database"
	"boutique/internal/logger"
	"boutique/internal/notifier"
	"boutique/internal/repositories"
	"boutique/internal/server"
	"boutique/internal/services"
	"boutique/internal/storage"
	"boutique/pkg/mailer"
	"boutique/pkg/rabbitmq"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.L().Error("command failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "boutique",
		Usage: "online boutique backend",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:   "seed",
				Usage:  "fill an empty catalog with the sample products",
				Action: seed,
			},
			{
				Name:   "init-theme",
				Usage:  "create the default theme if none exists",
				Action: initTheme,
			},
		},
		DefaultCommand: "serve",
	}
}

// bootstrap loads configuration, sets up logging and opens the migrated store.
func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Init(cfg.AppEnv)

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func serve(c *cli.Context) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.L()

	blobs, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return err
	}

	orderNotifier, closeNotifier := buildNotifier(cfg)
	defer closeNotifier()

	srv, err := server.New(server.Options{
		DB:        db,
		Blobs:     blobs,
		Notifier:  orderNotifier,
		JWTSecret: cfg.JWTSecret,
		Admin: services.AdminConfig{
			Email:        cfg.AdminEmail,
			Password:     cfg.AdminPassword,
			PasswordHash: cfg.AdminPasswordHash,
			JWTSecret:    cfg.JWTSecret,
		},
		NotifyTimeout: cfg.NotifyTimeout,
		PublicBaseURL: cfg.PublicBaseURL,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	themeInit := time.AfterFunc(cfg.ThemeInitDelay, func() {
		if err := srv.Theme.Initialize(ctx); err != nil {
			log.Error("theme initialization failed", zap.Error(err))
		}
	})
	defer themeInit.Stop()

	listenErr := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", cfg.AppPort), zap.String("env", cfg.AppEnv))
		listenErr <- srv.App.Listen(cfg.AppPort)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	if err := srv.App.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
	srv.Orders.Wait()
	log.Info("server gracefully stopped")
	return nil
}

func seed(c *cli.Context) error {
	_, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	products := services.NewProductService(repositories.NewGORMProductRepository(db), nil)
	n, err := products.SeedSampleProducts(c.Context)
	if err != nil {
		return err
	}
	if n == 0 {
		logger.L().Info("sample products already exist")
		return nil
	}
	logger.L().Info("sample products created", zap.Int("count", n))
	return nil
}

func initTheme(c *cli.Context) error {
	_, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	themes := services.NewThemeService(repositories.NewGORMThemeRepository(db))
	theme, err := themes.Current(c.Context)
	if err != nil {
		return err
	}
	logger.L().Info("theme ready", zap.String("theme", theme.ThemeName), zap.Int("version", theme.Version))
	return nil
}

// buildNotifier combines the configured order announcers. Mail falls back to
// the log when no SMTP host is set; an unreachable broker is skipped.
func buildNotifier(cfg *config.Config) (services.OrderNotifier, func()) {
	log := logger.L()
	var fanout notifier.Fanout
	var closers []io.Closer

	if cfg.SMTPHost != "" {
		client := mailer.NewClient(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
		})
		fanout = append(fanout, notifier.NewEmailNotifier(client, cfg.NotifyFrom, cfg.NotifyTo))
	} else {
		log.Warn("SMTP_HOST not set, order notifications go to the log")
		fanout = append(fanout, notifier.LogNotifier{})
	}

	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.RabbitMQExchange})
		if err != nil {
			log.Warn("RabbitMQ unavailable, order events disabled", zap.Error(err))
		} else {
			fanout = append(fanout, notifier.NewBrokerNotifier(mq))
			closers = append(closers, mq)
		}
	}

	return fanout, func() {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c.Close())
		}
		if err := errors.Join(errs...); err != nil {
			log.Warn("failed to close notifier", zap.Error(err))
		}
	}
}
