package routes

import (
	"quote_negotiation/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathQuoteRequests = "/quote-requests"
)

func addQuoteRequestRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc, h *handlers.QuoteRequestHandler) {
	quoteRequests := rg.Group(PathQuoteRequests, auth)
	{
		quoteRequests.POST("", h.CreateQuoteRequest)
		quoteRequests.GET("", h.ListQuoteRequests)
		quoteRequests.GET("/:id", h.GetQuoteRequest)
		quoteRequests.DELETE("/:id", h.DeleteQuoteRequest)

		// Resolution: the generic form takes the action in the body.
		quoteRequests.POST("/:id/resolve", h.ResolveQuoteRequest)
		quoteRequests.PATCH("/:id/accept", h.AcceptQuoteRequest)
		quoteRequests.PATCH("/:id/decline", h.DeclineQuoteRequest)
		quoteRequests.PATCH("/:id/counter", h.CounterQuoteRequest)
	}
}
