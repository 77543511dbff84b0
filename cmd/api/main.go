package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/punch-analytics/internal/config"
	"github.com/cmlabs-hris/punch-analytics/internal/domain/punch"
	appHTTP "github.com/cmlabs-hris/punch-analytics/internal/handler/http"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/cron"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/database"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/jwt"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/nager"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/sse"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/storage"
	"github.com/cmlabs-hris/punch-analytics/internal/repository/filestore"
	"github.com/cmlabs-hris/punch-analytics/internal/repository/postgresql"
	"github.com/cmlabs-hris/punch-analytics/internal/repository/sqlite"
	attendanceService "github.com/cmlabs-hris/punch-analytics/internal/service/attendance"
	holidayService "github.com/cmlabs-hris/punch-analytics/internal/service/holiday"
	statisticsService "github.com/cmlabs-hris/punch-analytics/internal/service/statistics"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	punchRepo, closeRepo, err := openPunchRepository(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize punch storage: ", err)
	}
	defer closeRepo()

	location := cfg.Location()
	hub := sse.NewHub()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	holidaySvc, err := holidayService.NewHolidayService(
		nager.NewClient(cfg.Holiday.BaseURL, cfg.Holiday.Timeout),
		cfg.Holiday.Country,
		cfg.Holiday.CacheSize,
	)
	if err != nil {
		log.Fatal("Failed to initialize holiday service: ", err)
	}

	attendanceSvc := attendanceService.NewAttendanceService(punchRepo, hub)
	if _, err := attendanceSvc.Restore(ctx); err != nil {
		// serve an empty index rather than refuse to start
		slog.Error("Failed to restore persisted punches", "error", err)
	}
	statisticsSvc := statisticsService.NewStatisticsService(attendanceSvc, holidaySvc, location)

	scheduler := cron.NewScheduler()
	cron.NewHolidayJobs(holidaySvc, cfg.Holiday.WarmInterval, location).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Env:         cfg.App.Env,
			Version:     version,
			CORSOrigins: cfg.App.CORSOrigins,
		},
		JWTService,
		appHTTP.NewPunchHandler(attendanceSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewStatisticsHandler(statisticsSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "storage", cfg.Storage.Type)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
		}
	case <-ctx.Done():
		slog.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}
}

// openPunchRepository selects the blob store named by STORAGE_TYPE. The
// returned func releases whatever connection the store holds.
func openPunchRepository(ctx context.Context, cfg *config.Config) (punch.PunchRepository, func(), error) {
	switch cfg.Storage.Type {
	case config.StoragePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, nil, err
		}
		if err := postgresql.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgresql.NewPunchRepository(db), db.Close, nil

	case config.StorageSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo, err := sqlite.NewPunchRepository(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, func() { _ = db.Close() }, nil

	case config.StorageLocal:
		files, err := storage.NewLocalStorage(cfg.Storage.BasePath)
		if err != nil {
			return nil, nil, err
		}
		return filestore.NewPunchRepository(files), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage type %q", cfg.Storage.Type)
	}
}

func logLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
