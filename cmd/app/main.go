package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"production/cmd"
	httpin "production/internal/adapters/in/http"
	"production/internal/adapters/out/postgres"
	"production/internal/adapters/out/settings"
	"production/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	configs, err := getConfigs()
	if err != nil {
		log.Fatalf("Error reading configuration: %v", err)
	}

	logger, err := newLogger(configs.LogLevel)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err = postgres.Migrate(configs.DSN()); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		logger.Fatal("wiring failed", zap.Error(err))
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		logger.Fatal("starting jobs failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startWebServer(ctx, app, configs.HTTPPort, logger)
	jobManager.StopAll()
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string, logger *zap.Logger) {
	e, err := httpin.NewRouter(app.CreateServer(), logger)
	if err != nil {
		logger.Fatal("building router failed", zap.Error(err))
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server stopped", zap.Error(err))
		}
	}()
	logger.Info("http server started", zap.String("port", port))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "" {
		level = "info"
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}

func getConfigs() (cmd.Config, error) {
	config := cmd.Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),
		LogLevel:   os.Getenv("LOG_LEVEL"),
		TimeZone:   os.Getenv("TIME_ZONE"),

		FinishMoMessageTemplateName:     os.Getenv("FINISH_MO_MESSAGE_TEMPLATE"),
		PartFinishMoMessageTemplateName: os.Getenv("PART_FINISH_MO_MESSAGE_TEMPLATE"),
		OperationsFinishedSchedule:      envOr("OPERATIONS_FINISHED_SCHEDULE", jobs.DefaultOperationsFinishedSchedule),
	}

	var errList []error
	config.NbDecimalDigitForUnitPrice, errList = envInt32(errList, "NB_DECIMAL_DIGIT_FOR_UNIT_PRICE",
		settings.DefaultNbDecimalDigitForUnitPrice)
	config.NbDecimalDigitForBomQty, errList = envInt32(errList, "NB_DECIMAL_DIGIT_FOR_BOM_QTY",
		settings.DefaultNbDecimalDigitForBomQty)
	config.SupplychainEnabled, errList = envBool(errList, "SUPPLYCHAIN_ENABLED", true)
	config.FinishMoAutomaticEmail, errList = envBool(errList, "FINISH_MO_AUTOMATIC_EMAIL", false)
	config.PartFinishMoAutomaticEmail, errList = envBool(errList, "PART_FINISH_MO_AUTOMATIC_EMAIL", false)
	config.OperationsFinishedTimeout, errList = envDuration(errList, "OPERATIONS_FINISHED_TIMEOUT", 30*time.Second)
	config.TemplateCacheTTL, errList = envDuration(errList, "TEMPLATE_CACHE_TTL", settings.DefaultTemplateCacheTTL)

	return config, errors.Join(errList...)
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envInt32(errList []error, key string, def int32) (int32, []error) {
	v := os.Getenv(key)
	if v == "" {
		return def, errList
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return def, append(errList, fmt.Errorf("%s: %w", key, err))
	}
	return int32(n), errList
}

func envBool(errList []error, key string, def bool) (bool, []error) {
	v := os.Getenv(key)
	if v == "" {
		return def, errList
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, append(errList, fmt.Errorf("%s: %w", key, err))
	}
	return b, errList
}

func envDuration(errList []error, key string, def time.Duration) (time.Duration, []error) {
	v := os.Getenv(key)
	if v == "" {
		return def, errList
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, append(errList, fmt.Errorf("%s: %w", key, err))
	}
	return d, errList
}
