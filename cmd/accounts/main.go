package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/accounts/internal/pkg/config"
	"github.com/piresc/accounts/internal/pkg/database"
	"github.com/piresc/accounts/internal/pkg/health"
	"github.com/piresc/accounts/internal/pkg/jwt"
	"github.com/piresc/accounts/internal/pkg/logger"
	"github.com/piresc/accounts/internal/pkg/middleware"
	"github.com/piresc/accounts/internal/pkg/models"
	natspkg "github.com/piresc/accounts/internal/pkg/nats"
	nrpkg "github.com/piresc/accounts/internal/pkg/newrelic"
	nsqpkg "github.com/piresc/accounts/internal/pkg/nsq"
	"github.com/piresc/accounts/internal/pkg/otp"
	"github.com/piresc/accounts/internal/pkg/password"
	"github.com/piresc/accounts/internal/pkg/server"
	"github.com/piresc/accounts/internal/utils"
	"github.com/piresc/accounts/services/accounts/gateway"
	"github.com/piresc/accounts/services/accounts/handler"
	httpHandler "github.com/piresc/accounts/services/accounts/handler/http"
	"github.com/piresc/accounts/services/accounts/repository"
	"github.com/piresc/accounts/services/accounts/usecase"
)

func main() {
	appName := "accounts-service"
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to a .env, yaml, json or toml config file")
	flag.Parse()

	configs := config.InitConfig(*configPath)
	if err := config.Validate(configs); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.NewZapLogger(logger.ZapConfig{
		Level:    configs.Logger.Level,
		FilePath: configs.Logger.FilePath,
		Service:  appName,
	}, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	shutdown := server.NewShutdownManager(zapLogger)
	shutdown.Register("logger", func(context.Context) error { return zapLogger.Close() })
	if nrApp != nil {
		shutdown.Register("newrelic", func(context.Context) error {
			nrApp.Shutdown(5 * time.Second)
			return nil
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	shutdown.Register("postgres", func(context.Context) error { return postgresClient.Close() })

	if configs.Database.AutoMigrate {
		if err := postgresClient.Migrate(ctx); err != nil {
			zapLogger.Fatal("Failed to run migrations", logger.Err(err))
		}
	}

	checkers := map[string]health.Checker{
		"postgres": health.CheckerFunc(postgresClient.Ping),
	}

	// OTP store
	var otpStore otp.Store
	otpOpts := []otp.Option{otp.WithTTL(configs.OTP.TTL)}
	switch configs.OTP.Store {
	case models.OTPStoreMemory:
		memStore := otp.NewMemoryStore(otpOpts...)
		go memStore.RunSweeper(ctx, time.Minute)
		otpStore = memStore
	default:
		redisClient, err := database.NewRedisClient(configs.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
		}
		shutdown.Register("redis", func(context.Context) error { return redisClient.Close() })
		checkers["redis"] = health.CheckerFunc(redisClient.Ping)
		otpStore = otp.NewRedisStore(redisClient.GetClient(), otpOpts...)
	}

	// OTP delivery
	var natsPublisher gateway.NATSPublisher
	var nsqPublisher gateway.NSQPublisher
	switch configs.OTP.Delivery {
	case models.OTPDeliveryNATS:
		natsClient, err := natspkg.NewClient(configs.NATS.URL, appName)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
		}
		shutdown.Register("nats", func(context.Context) error {
			natsClient.Close()
			return nil
		})
		checkers["nats"] = health.CheckerFunc(func(context.Context) error {
			if !natsClient.IsConnected() {
				return errNATSDisconnected
			}
			return nil
		})
		natsPublisher = natsClient
	case models.OTPDeliveryNSQ:
		nsqProducer, err := nsqpkg.NewProducer(configs.NSQ.Address)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NSQ", logger.Err(err))
		}
		shutdown.Register("nsq", func(context.Context) error {
			nsqProducer.Stop()
			return nil
		})
		nsqPublisher = nsqProducer
	}

	// Initialize repository
	accountRepo := repository.NewAccountRepo(configs, postgresClient.GetDB())

	// Initialize Gateway
	accountGW, err := gateway.NewAccountGW(configs.OTP.Delivery, natsPublisher, nsqPublisher)
	if err != nil {
		zapLogger.Fatal("Failed to initialize OTP delivery", logger.Err(err))
	}

	// Initialize UseCase
	tokens := jwt.NewManager(configs.JWT)
	accountUC := usecase.NewAccountUC(
		accountRepo,
		accountGW,
		otpStore,
		password.NewHasher(password.DefaultCost),
		tokens,
		configs,
	)

	// Handlers for HTTP
	accountHandler := httpHandler.NewAccountHandler(accountUC)
	Handler := handler.NewHandler(accountHandler, tokens)

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewRequestValidator()

	// Add middlewares
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(nrpkg.EchoMiddleware(nrApp))
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	// Register health endpoints
	health.RegisterHealthEndpoints(e, appName, checkers)

	// Register service routes
	Handler.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server)
	if err := srv.Run(ctx); err != nil {
		zapLogger.Error("Server stopped with error", logger.Err(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdown.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown finished with errors: %v", err)
	}
}
