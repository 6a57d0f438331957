package handlers

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ibraheembello/Restaurant-Chatbot/internal/bot"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/middleware"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/payment"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type initializePaymentRequest struct {
	Email string `json:"email"`
}

// InitializePayment starts the gateway payment flow for the visitor's most
// recent placed order. Email is optional; a placeholder address is derived
// from the session when absent.
func InitializePayment(engine *bot.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/payment/initialize"
		defer handlePanic(c, route)

		var req initializePaymentRequest
		_ = c.ShouldBindJSON(&req)

		if req.Email != "" && !emailRe.MatchString(req.Email) {
			respondWithError(c, http.StatusBadRequest, route, "Invalid email format")
			return
		}

		visitorID := middleware.VisitorID(c)

		ctx, cancel := gatewayContext(c)
		defer cancel()

		result, err := engine.InitializePayment(ctx, visitorID, req.Email)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Failed to initialize payment")
			return
		}

		if result.PaymentURL == "" {
			respondWithError(c, http.StatusBadRequest, route, result.Message)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"message":    result.Message,
				"paymentUrl": result.PaymentURL,
			},
		})
	}
}

// PaymentCallback handles the gateway's redirect after a payment attempt and
// forwards the visitor to a success/failure landing indicator.
func PaymentCallback(engine *bot.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/payment/callback"
		defer handlePanic(c, route)

		reference := c.Query("reference")
		if reference == "" {
			reference = c.Query("trxref")
		}
		if reference == "" {
			c.Redirect(http.StatusFound, "/?payment=error&message=No reference provided")
			return
		}

		ctx, cancel := gatewayContext(c)
		defer cancel()

		if _, ok := engine.HandlePaymentCallback(ctx, reference); ok {
			c.Redirect(http.StatusFound, "/?payment=success")
			return
		}
		c.Redirect(http.StatusFound, "/?payment=failed")
	}
}

// VerifyPayment is a read-only status passthrough for polling and debugging.
func VerifyPayment(bridge *payment.Bridge) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/payment/verify"
		defer handlePanic(c, route)

		reference := c.Param("reference")
		if len(reference) < 5 || len(reference) > 100 {
			respondWithError(c, http.StatusBadRequest, route, "Invalid payment reference format")
			return
		}

		ctx, cancel := gatewayContext(c)
		defer cancel()

		result := bridge.Status(ctx, reference)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"status":  result.Status,
				"message": result.Message,
			},
		})
	}
}

// PaystackPublicKey exposes the gateway public key for the frontend widget.
func PaystackPublicKey(publicKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"publicKey": publicKey},
		})
	}
}

// gatewayContext allows for the externally-latent payment round trip; the
// gateway client's own timeout still bounds each call.
func gatewayContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 30*time.Second)
}
