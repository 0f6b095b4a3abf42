package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deskhive/deskhive-backend/api"
	"github.com/deskhive/deskhive-backend/infra"
	"github.com/deskhive/deskhive-backend/repositories"
	"github.com/deskhive/deskhive-backend/usecases"
	"github.com/deskhive/deskhive-backend/utils"
)

type AppConfiguration struct {
	env  string
	port string

	pgConfig infra.PgConfig

	triggerSecret string
	jwtSigningKey string
}

func loadConfiguration() AppConfiguration {
	return AppConfiguration{
		env:  utils.GetEnv("ENV", "development"),
		port: utils.GetEnv("PORT", "8080"),
		pgConfig: infra.PgConfig{
			Hostname: utils.GetRequiredEnv[string]("PG_HOSTNAME"),
			Port:     utils.GetEnv("PG_PORT", "5432"),
			User:     utils.GetRequiredEnv[string]("PG_USER"),
			Password: utils.GetRequiredEnv[string]("PG_PASSWORD"),
			Database: utils.GetEnv("PG_DATABASE", "deskhive"),
		},
		triggerSecret: utils.GetRequiredEnv[string]("AUTOMATION_TRIGGER_SECRET"),
		jwtSigningKey: utils.GetRequiredEnv[string]("AUTHENTICATION_JWT_SIGNING_KEY"),
	}
}

func runServer(ctx context.Context, conf AppConfiguration) error {
	logger := utils.LoggerFromContext(ctx)

	pool, err := infra.NewPostgresConnectionPool(ctx, conf.pgConfig.GetConnectionString())
	if err != nil {
		return err
	}
	defer pool.Close()

	executorGetter := repositories.NewExecutorGetter(pool)
	uc := usecases.NewUsecases(executorGetter)
	auth := api.NewAuthentication(conf.triggerSecret, []byte(conf.jwtSigningKey))

	router := initRouter(ctx, conf)
	api.InitRoutes(router, auth, uc)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%s", conf.port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.InfoContext(ctx, "starting server", "port", conf.port, "env", conf.env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "server error", "error", err.Error())
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	shouldRunMigrations := flag.Bool("migrations", false, "run database migrations")
	shouldRunServer := flag.Bool("server", false, "run the automation engine server")
	flag.Parse()

	logger := utils.NewLogger(utils.GetEnv("LOGGING_FORMAT", "text"))
	ctx, stop := signal.NotifyContext(
		utils.StoreLoggerInContext(context.Background(), logger),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	conf := loadConfiguration()

	if *shouldRunMigrations {
		if err := repositories.RunMigrations(ctx, conf.pgConfig, logger); err != nil {
			logger.ErrorContext(ctx, "error running migrations", "error", err.Error())
			os.Exit(1)
		}
	}

	if *shouldRunServer {
		if err := runServer(ctx, conf); err != nil {
			logger.ErrorContext(ctx, "error running server", "error", err.Error())
			os.Exit(1)
		}
	}
}
