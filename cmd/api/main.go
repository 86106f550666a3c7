package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpadp "coop-loan-backend/internal/adapter/http"
	idemp "coop-loan-backend/internal/adapter/middleware"
	"coop-loan-backend/internal/adapter/repository/mysql"
	"coop-loan-backend/internal/config"
	"coop-loan-backend/internal/infrastructure/blob"
	"coop-loan-backend/internal/infrastructure/cache"
	"coop-loan-backend/internal/infrastructure/db"
	"coop-loan-backend/internal/infrastructure/metrics"
	"coop-loan-backend/internal/infrastructure/render"
	"coop-loan-backend/internal/usecase/aggregate"
	"coop-loan-backend/internal/usecase/dashboard"
	"coop-loan-backend/internal/usecase/importer"
	"coop-loan-backend/internal/usecase/member"
	"coop-loan-backend/internal/usecase/organization"
	"coop-loan-backend/internal/usecase/report"
	"coop-loan-backend/internal/usecase/workflow"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), db.Options{Debug: cfg.LogLevel == "debug", Log: logger})
	if err != nil {
		logger.WithError(err).Fatal("open database")
	}
	if err := mysql.Migrate(gdb); err != nil {
		logger.WithError(err).Fatal("migrate database")
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		logger.WithError(err).Fatal("database handle")
	}
	defer sqlDB.Close()

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.WithError(err).Fatal("open redis")
	}
	defer rdb.Close()

	store, err := blob.Open(ctx, blob.Config{
		Driver: blob.Driver(cfg.BlobDriver),
		Root:   cfg.BlobRoot,
		S3: blob.S3Config{
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			PathStyle:       cfg.S3PathStyle,
		},
	})
	if err != nil {
		logger.WithError(err).Fatal("open blob store")
	}
	catalog, err := report.LoadCatalog(cfg.ReportCatalogPath)
	if err != nil {
		logger.WithError(err).Fatal("load report catalog")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	tx := mysql.NewGormUoW(gdb)
	width := cfg.MemberNumberWidth
	agg := aggregate.NewUsecase(tx, width, m)
	handlers := httpadp.Handlers{
		Common: httpadp.NewHandler(
			dashboard.NewUsecase(tx, cache.NewJSON(rdb, "coop"), time.Duration(cfg.DashboardCacheSecs)*time.Second, logger),
			organization.NewUsecase(tx),
			map[string]httpadp.Pinger{
				"db":    sqlDB.PingContext,
				"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			},
		),
		Members: httpadp.NewMemberHandler(
			member.NewUsecase(tx, width, logger),
			importer.NewUsecase(tx, importer.Options{NumberWidth: width, PhoneRegion: cfg.PhoneRegion, Metrics: m, Logger: logger}),
		),
		Workflow: httpadp.NewWorkflowHandler(workflow.NewUsecase(tx, width, m, logger)),
		Reports: httpadp.NewReportHandler(report.NewUsecase(tx, agg, render.NewDocx(cfg.TemplateDir), store, report.Options{
			Catalog:     catalog,
			Concurrency: cfg.RenderConcurrency,
			NumberWidth: width,
			Metrics:     m,
			Logger:      logger,
		})),
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	httpadp.Register(e, handlers, idemp.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, logger))

	go func() {
		addr := ":" + cfg.AppPort
		logger.WithField("addr", addr).WithField("blob_driver", store.Driver()).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("shutdown")
	}
}
