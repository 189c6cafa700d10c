package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"course_service/internal/handlers"
	"course_service/internal/logger"
	"course_service/internal/repository"
	"course_service/internal/repository/db"
	"course_service/internal/server"
	"course_service/internal/service"

	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// load config.yml first so the log level comes from it
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log_level"))

	// open DB
	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services, err := service.NewService(repos, seedCredentials())
	if err != nil {
		log.Fatalw("failed to init services", "err", err)
	}
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// seedCredentials reads the fixed principal set from configuration.
func seedCredentials() []service.Credential {
	var creds []service.Credential
	if err := viper.UnmarshalKey("auth.users", &creds); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("invalid auth.users config", "err", err)
	}
	return creds
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "courses.db")
		dbPath = "courses.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		port := viper.GetString("port")
		if port == "" {
			port = "8080"
		}
		origin := viper.GetString("cors.origin")
		log.Infow("starting http server", "port", port, "cors_origin", origin)
		if err := srv.Run(port, origin, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw(fmt.Sprintf("error starting server on port %s", port), "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and drains in-flight requests.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
