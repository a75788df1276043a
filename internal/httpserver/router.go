package httpserver

import (
	"context"
	"errors"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodcourt/internal/domain"
	cartsvc "foodcourt/internal/service/cart"
	checkoutsvc "foodcourt/internal/service/checkout"
	ordersvc "foodcourt/internal/service/order"
	"foodcourt/internal/session"
)

// Deps groups the collaborators the router needs.
type Deps struct {
	Sessions    SessionStore
	AuthSvc     AuthService
	MenuSvc     MenuService
	CartSvc     CartService
	CheckoutSvc CheckoutService
	OrderSvc    OrderService
}

type SessionStore interface {
	Lookup(token string) (*session.Session, bool)
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*session.Session, error)
	Logout(token string)
}

type MenuService interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
}

type CartService interface {
	AddFromMenu(ctx context.Context, sess *session.Session, item string, quantity int) (*cartsvc.AddResult, error)
	Get(sess *session.Session) (domain.Cart, int64)
}

type CheckoutService interface {
	SubmitDetails(ctx context.Context, sess *session.Session, address string, mode domain.PaymentMode) (*checkoutsvc.Result, error)
	ConfirmPayment(ctx context.Context, sess *session.Session) (*checkoutsvc.Result, error)
}

type OrderService interface {
	ListByOwner(ctx context.Context, username string) ([]domain.Order, error)
	AdminDashboard(ctx context.Context) (*ordersvc.Dashboard, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.Sessions == nil {
		return nil, errors.New("session store required")
	}
	if deps.AuthSvc == nil || deps.MenuSvc == nil || deps.CartSvc == nil ||
		deps.CheckoutSvc == nil || deps.OrderSvc == nil {
		return nil, errors.New("all services required")
	}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.POST("/login", loginHandler(deps.AuthSvc))

	authed := router.Group("/", sessionMiddleware(deps.Sessions))
	authed.POST("/logout", logoutHandler(deps.AuthSvc))
	authed.GET("/menu", menuHandler(deps.MenuSvc))
	authed.GET("/cart", getCartHandler(deps.CartSvc))
	authed.POST("/cart/items", addCartItemHandler(deps.CartSvc))
	authed.POST("/checkout", checkoutHandler(deps.CheckoutSvc))
	authed.POST("/checkout/confirm", confirmPaymentHandler(deps.CheckoutSvc))
	authed.GET("/orders", listOrdersHandler(deps.OrderSvc))

	admin := authed.Group("/admin", adminMiddleware())
	admin.GET("/dashboard", adminDashboardHandler(deps.OrderSvc))
	admin.PUT("/orders/:id/status", updateStatusHandler(deps.OrderSvc))

	return router, nil
}
