package apihandlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pixshield/internal/app"
	"pixshield/internal/backend"
)

const requestIDKey = "request_id"

// RequestID tags every request with an X-Request-ID, reusing the caller's
// when present, and puts it on the request context for the backend client.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(backend.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Request = c.Request.WithContext(backend.WithRequestID(c.Request.Context(), id))
		c.Header(backend.RequestIDHeader, id)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// NewRouter builds the HTTP API over a.
func NewRouter(a *app.App) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), RequestID())

	h := NewAPIHandler(a)

	v1 := router.Group("/api/v1")
	{
		pixGroup := v1.Group("/pix")
		{
			pixGroup.POST("/keys/classify", h.ClassifyKeyHandler)
			pixGroup.POST("/send", h.SendPixHandler)
			pixGroup.POST("/generate", h.GeneratePixHandler)
			pixGroup.GET("/transactions", h.ListTransactionsHandler)
			pixGroup.GET("/transactions/:id", h.GetTransactionHandler)
		}

		v1.GET("/amount/format", h.FormatAmountHandler)

		accountGroup := v1.Group("/account")
		{
			accountGroup.GET("/balance", h.BalanceHandler)
			accountGroup.POST("/transfer", h.TransferHandler)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}
