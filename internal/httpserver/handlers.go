package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodcourt/internal/domain"
	authsvc "foodcourt/internal/service/auth"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type addItemRequest struct {
	Item     string `json:"item" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

type checkoutRequest struct {
	Address     string `json:"address" binding:"required"`
	PaymentMode string `json:"paymentMode" binding:"required"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func loginHandler(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
			return
		}
		sess, err := svc.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, authsvc.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"token":    sess.Token(),
			"username": sess.Username(),
			"role":     sess.Role(),
		})
	}
}

func logoutHandler(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		svc.Logout(sess.Token())
		c.Status(http.StatusNoContent)
	}
}

func menuHandler(svc MenuService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu unavailable"})
			return
		}
		if items == nil {
			items = []domain.MenuItem{}
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func getCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, total := svc.Get(currentSession(c))
		if cart == nil {
			cart = domain.Cart{}
		}
		c.JSON(http.StatusOK, gin.H{"cart": cart, "totalCents": total})
	}
}

func addCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "item and quantity required"})
			return
		}
		res, err := svc.AddFromMenu(c.Request.Context(), currentSession(c), req.Item, req.Quantity)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func checkoutHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "address and paymentMode required"})
			return
		}
		mode, err := domain.ParsePaymentMode(req.PaymentMode)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		res, err := svc.SubmitDetails(c.Request.Context(), currentSession(c), req.Address, mode)
		if err != nil {
			writeError(c, err)
			return
		}
		if res.AwaitingPayment {
			c.JSON(http.StatusAccepted, res)
			return
		}
		c.JSON(http.StatusCreated, res)
	}
}

func confirmPaymentHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svc.ConfirmPayment(c.Request.Context(), currentSession(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, res)
	}
}

func listOrdersHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListByOwner(c.Request.Context(), currentSession(c).Username())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "orders unavailable"})
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func adminDashboardHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		dash, err := svc.AdminDashboard(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "dashboard unavailable"})
			return
		}
		c.JSON(http.StatusOK, dash)
	}
}

func updateStatusHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status required"})
			return
		}
		if err := svc.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// writeError maps domain errors onto HTTP codes. Unrecognized errors
// are treated as client input problems; storage failures are surfaced
// as retryable 503s.
func writeError(c *gin.Context, err error) {
	var storageErr *domain.StorageError
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.As(err, &storageErr):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporary storage failure, retry"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
