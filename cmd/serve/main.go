// Package classification Channel Admin Service.
//
// Console for the SOAP channel definitions of service bus clusters
//
// Terms Of Service:
//
// there are no TOS at this moment, use at your own risk we take no responsibility
//
//	Version: 0.1.0
//	Contact: <info@dhis2.org> https://github.com/dhis2-sre/channel-admin
//
//	Consumes:
//	  - application/json
//	  - application/x-www-form-urlencoded
//
//	Produces:
//	  - application/json
//	  - text/html
//
//	SecurityDefinitions:
//	  basicAuth:
//	    type: basic
//
// swagger:meta
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dhis2-sre/channel-admin/internal/handler"
	"github.com/dhis2-sre/channel-admin/internal/log"
	"github.com/dhis2-sre/channel-admin/internal/metrics"
	"github.com/dhis2-sre/channel-admin/internal/middleware"
	"github.com/dhis2-sre/channel-admin/internal/server"
	"github.com/dhis2-sre/channel-admin/pkg/adminservice"
	"github.com/dhis2-sre/channel-admin/pkg/channel/soap"
	"github.com/dhis2-sre/channel-admin/pkg/cluster"
	"github.com/dhis2-sre/channel-admin/pkg/config"
	"github.com/dhis2-sre/channel-admin/pkg/event"
	"github.com/dhis2-sre/channel-admin/pkg/security"
	"github.com/dhis2-sre/channel-admin/pkg/storage"
	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Failed to run channel admin", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger, err := log.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogPretty)
	if err != nil {
		return fmt.Errorf("failed to create logger: %v", err)
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := metrics.Register(); err != nil {
		return fmt.Errorf("failed to register metrics: %v", err)
	}

	if err := handler.RegisterValidation(); err != nil {
		return err
	}

	db, err := storage.NewDatabase(logger, cfg.Postgresql)
	if err != nil {
		return err
	}

	clusterService := cluster.NewService(cluster.NewRepository(db))
	if cfg.ClustersFile != "" {
		if err := cluster.LoadClusters(ctx, logger, cfg.ClustersFile, clusterService); err != nil {
			return err
		}
	}

	broker := event.NewBroker()
	sinks := map[string]event.Sink{"broker": broker}
	if cfg.RabbitMQ != nil {
		conn, err := amqp.Dial(cfg.RabbitMQ.GetUrl())
		if err != nil {
			return fmt.Errorf("failed to connect to RabbitMQ: %v", err)
		}
		defer func() {
			_ = conn.Close()
		}()

		amqpPublisher, err := event.NewAMQPPublisher(conn, cfg.RabbitMQ.Exchange)
		if err != nil {
			return err
		}
		defer func() {
			_ = amqpPublisher.Close()
		}()
		sinks["rabbitmq"] = amqpPublisher
	}
	publisher := event.NewPublisher(logger, sinks)

	adminServiceClient := adminservice.NewClient(logger, &http.Client{}, adminservice.Config{
		Path:     cfg.AdminService.Path,
		Username: cfg.AdminService.Username,
		Password: cfg.AdminService.Password,
		Timeout:  cfg.AdminService.Timeout,
	})
	channelService := soap.NewService(logger, clusterService, adminServiceClient, soap.NewRepository(db), publisher)
	securityService := security.NewService(security.NewRepository(db), clusterService)

	authentication := middleware.NewAuthentication(cfg.Authentication.Username, cfg.Authentication.PasswordHash)

	engine := server.GetEngine(logger, cfg.BasePath)
	router := engine.Group(cfg.BasePath)
	cluster.Routes(router, authentication, cluster.NewHandler(clusterService))
	security.Routes(router, authentication, security.NewHandler(securityService))
	soap.Routes(router, authentication, soap.NewHandler(logger, clusterService, securityService, channelService))
	event.Routes(router, authentication, event.NewHandler(logger, broker))

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	// event streams only end once their subscription is gone
	srv.RegisterOnShutdown(broker.Close)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(gctx, "Starting channel admin", "addr", srv.Addr, "basePath", cfg.BasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down channel admin")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
