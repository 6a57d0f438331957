package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/ibraheembello/Restaurant-Chatbot/internal/bot"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/middleware"
)

const maxMessageLength = 500

type chatMessageRequest struct {
	Message *string `json:"message"`
}

// InitChat ensures the visitor's session exists and returns the welcome
// message with the main-menu options.
func InitChat(engine *bot.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/chat/init"
		defer handlePanic(c, route)

		visitorID := middleware.VisitorID(c)

		ctx, cancel := requestContext(c)
		defer cancel()

		if _, err := engine.InitSession(ctx, visitorID); err != nil {
			log.Printf("[%s] session init failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "Failed to initialize chat")
			return
		}

		welcome := engine.Welcome()
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"sessionId": visitorID,
				"message":   welcome.Message,
			},
		})
	}
}

// ProcessMessage validates the inbound chat message and routes it through
// the conversation engine.
func ProcessMessage(engine *bot.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/chat/message"
		defer handlePanic(c, route)

		var req chatMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Message == nil {
			respondWithError(c, http.StatusBadRequest, route, "Message is required")
			return
		}

		trimmed := strings.TrimSpace(*req.Message)
		if trimmed == "" {
			respondWithError(c, http.StatusBadRequest, route, "Message cannot be empty")
			return
		}
		if utf8.RuneCountInString(trimmed) > maxMessageLength {
			respondWithError(c, http.StatusBadRequest, route, "Message is too long. Maximum 500 characters allowed.")
			return
		}

		visitorID := middleware.VisitorID(c)

		ctx, cancel := requestContext(c)
		defer cancel()

		resp, err := engine.Process(ctx, visitorID, trimmed)
		if err != nil {
			log.Printf("[%s] engine error: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "Failed to process message")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"message":       resp.Message,
				"showPayButton": resp.ShowPayButton,
			},
		})
	}
}

// GetSessionState returns the visitor's current conversational state.
func GetSessionState(engine *bot.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/chat/session"
		defer handlePanic(c, route)

		visitorID := middleware.VisitorID(c)

		ctx, cancel := requestContext(c)
		defer cancel()

		session, err := engine.InitSession(ctx, visitorID)
		if err != nil {
			log.Printf("[%s] session lookup failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "Failed to get session state")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"sessionId": visitorID,
				"state":     session.State,
			},
		})
	}
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 5*time.Second)
}
