package main

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	config "github.com/clubnest/club-nest-go/config"
	db "github.com/clubnest/club-nest-go/db"
	middleware "github.com/clubnest/club-nest-go/middleware"
	payments "github.com/clubnest/club-nest-go/payments"
	routes "github.com/clubnest/club-nest-go/routes"
	store "github.com/clubnest/club-nest-go/store"
	utils "github.com/clubnest/club-nest-go/utils"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := db.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("mongo connect failed", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Close(shutdownCtx); err != nil {
			logger.Warn("mongo disconnect failed", zap.Error(err))
		}
	}()

	if err := client.EnsureIndexes(ctx); err != nil {
		logger.Fatal("index creation failed", zap.Error(err))
	}

	serviceAccount, err := base64.StdEncoding.DecodeString(cfg.FirebaseServiceAccount)
	if err != nil {
		logger.Fatal("firebase service account is not valid base64", zap.Error(err))
	}
	verifier, err := middleware.NewFirebaseVerifier(ctx, serviceAccount)
	if err != nil {
		logger.Fatal("firebase init failed", zap.Error(err))
	}

	database := client.Database()
	users := store.NewUsers(database)
	managers := store.NewManagers(database)
	clubs := store.NewClubs(database)
	memberships := store.NewMemberships(database)
	paymentLedger := store.NewPayments(database)
	events := store.NewEvents(database, clubs)
	registrations := store.NewRegistrations(database)
	stats := store.NewStats(database)

	var mailer payments.ReceiptMailer
	if m := utils.NewMailer(cfg.ZeptoAPIURL, cfg.ZeptoAPIKey, cfg.EmailFrom); m != nil {
		mailer = m
	}

	provider := payments.NewStripeProvider(cfg.StripeSecret, cfg.SiteDomain)
	reconciler := payments.NewReconciler(
		provider, paymentLedger, memberships, clubs,
		client.WithTransaction, mailer, logger,
	)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.SiteDomain},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, &routes.Deps{
		Users:         users,
		Managers:      managers,
		Clubs:         clubs,
		Memberships:   memberships,
		Payments:      paymentLedger,
		Events:        events,
		Registrations: registrations,
		Stats:         stats,
		Reconciler:    reconciler,
		Verifier:      verifier,
		Log:           logger,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown failed", zap.Error(err))
	}
}
