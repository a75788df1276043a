package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"foodcourt/internal/config"
	"foodcourt/internal/db"
	"foodcourt/internal/httpserver"
	menurepo "foodcourt/internal/repository/menu"
	orderrepo "foodcourt/internal/repository/order"
	userrepo "foodcourt/internal/repository/user"
	authsvc "foodcourt/internal/service/auth"
	cartsvc "foodcourt/internal/service/cart"
	checkoutsvc "foodcourt/internal/service/checkout"
	menusvc "foodcourt/internal/service/menu"
	ordersvc "foodcourt/internal/service/order"
	"foodcourt/internal/session"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	sessions := session.NewStore(cfg.SessionTTL)

	userRepo := userrepo.NewPostgres(dbpool, logger)
	menuRepo := menurepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	authService := authsvc.New(userRepo, sessions, logger)
	menuService := menusvc.New(menuRepo)
	cartService := cartsvc.New(menuRepo)
	checkoutService := checkoutsvc.New(orderRepo, logger)
	orderService := ordersvc.New(orderRepo, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Sessions:    sessions,
		AuthSvc:     authService,
		MenuSvc:     menuService,
		CartSvc:     cartService,
		CheckoutSvc: checkoutService,
		OrderSvc:    orderService,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
