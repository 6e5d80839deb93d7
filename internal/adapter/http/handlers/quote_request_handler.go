package handlers

import (
	"errors"
	"io"
	"net/http"

	request "quote_negotiation/internal/adapter/http/dto/request"
	response "quote_negotiation/internal/adapter/http/dto/response"
	"quote_negotiation/internal/adapter/http/middleware"
	"quote_negotiation/internal/domain/entities"
	"quote_negotiation/internal/usecase"
	"quote_negotiation/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidQuoteRequestPayload = pkg.NewDomainErrorSimple("VALIDATION_ERROR", "Invalid quote request payload", http.StatusBadRequest)
)

// QuoteRequestHandler exposes the quote negotiation use case over HTTP.
// Every route expects middleware.Authenticate in front of it.
type QuoteRequestHandler struct {
	usecase usecase.IQuoteRequestUseCase
}

func NewQuoteRequestHandler(uc usecase.IQuoteRequestUseCase) *QuoteRequestHandler {
	return &QuoteRequestHandler{usecase: uc}
}

// CreateQuoteRequest godoc
// @Summary      Ask a freelancer for a quote
// @Tags         quote-requests
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body      request.CreateQuoteRequestRequest  true  "Quote request"
// @Success      201   {object}  response.QuoteRequestResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      401   {object}  pkg.HTTPError
// @Router       /quote-requests [post]
func (h *QuoteRequestHandler) CreateQuoteRequest(c *gin.Context) {
	var payload request.CreateQuoteRequestRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := errInvalidQuoteRequestPayload.WithDetails(request.DescribeBindingError(err))
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	in, err := payload.ToNewQuoteRequest()
	if err != nil {
		appErr := mapQuoteRequestError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	q, err := h.usecase.Create(c.Request.Context(), middleware.CallerID(c), in)
	if err != nil {
		appErr := mapQuoteRequestError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromQuoteRequest(q))
}

// GetQuoteRequest godoc
// @Summary      Get a quote request the caller takes part in
// @Tags         quote-requests
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Quote request id"
// @Success      200  {object}  response.QuoteRequestResponse
// @Failure      403  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Router       /quote-requests/{id} [get]
func (h *QuoteRequestHandler) GetQuoteRequest(c *gin.Context) {
	q, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		appErr := mapQuoteRequestError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuoteRequest(q))
}

// ListQuoteRequests godoc
// @Summary      List the caller's quote requests, newest first
// @Tags         quote-requests
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  response.QuoteRequestListResponse
// @Failure      401  {object}  pkg.HTTPError
// @Router       /quote-requests [get]
func (h *QuoteRequestHandler) ListQuoteRequests(c *gin.Context) {
	items, err := h.usecase.ListForParticipant(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		appErr := mapQuoteRequestError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuoteRequests(items))
}

// ResolveQuoteRequest godoc
// @Summary      Accept, decline or counter a pending quote request
// @Tags         quote-requests
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path      string                              true  "Quote request id"
// @Param        body  body      request.ResolveQuoteRequestRequest  true  "Resolution"
// @Success      200   {object}  response.QuoteRequestResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      403   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Router       /quote-requests/{id}/resolve [post]
func (h *QuoteRequestHandler) ResolveQuoteRequest(c *gin.Context) {
	var payload request.ResolveQuoteRequestRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := errInvalidQuoteRequestPayload.WithDetails(request.DescribeBindingError(err))
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	var counter entities.CounterProposal
	if payload.IsCounter() {
		var err error
		if counter, err = payload.ResolveCounter(); err != nil {
			appErr := mapQuoteRequestError(err)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
	}

	h.resolveQuoteRequestByAction(c, payload.Action, counter)
}

// AcceptQuoteRequest godoc
// @Summary      Accept a pending quote request
// @Tags         quote-requests
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Quote request id"
// @Success      200  {object}  response.QuoteRequestResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /quote-requests/{id}/accept [patch]
func (h *QuoteRequestHandler) AcceptQuoteRequest(c *gin.Context) {
	h.resolveQuoteRequestByAction(c, string(entities.QuoteActionAccept), entities.CounterProposal{})
}

// DeclineQuoteRequest godoc
// @Summary      Decline a pending quote request
// @Tags         quote-requests
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Quote request id"
// @Success      200  {object}  response.QuoteRequestResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /quote-requests/{id}/decline [patch]
func (h *QuoteRequestHandler) DeclineQuoteRequest(c *gin.Context) {
	h.resolveQuoteRequestByAction(c, string(entities.QuoteActionDecline), entities.CounterProposal{})
}

// CounterQuoteRequest godoc
// @Summary      Counter a pending quote request
// @Tags         quote-requests
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path      string                          true   "Quote request id"
// @Param        body  body      request.CounterProposalRequest  false  "Counter proposal"
// @Success      200   {object}  response.QuoteRequestResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Router       /quote-requests/{id}/counter [patch]
func (h *QuoteRequestHandler) CounterQuoteRequest(c *gin.Context) {
	var payload request.CounterProposalRequest
	// An empty body is a counter with no fields.
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		appErr := errInvalidQuoteRequestPayload.WithDetails(request.DescribeBindingError(err))
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	counter, err := payload.ResolveCounter()
	if err != nil {
		appErr := mapQuoteRequestError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	h.resolveQuoteRequestByAction(c, string(entities.QuoteActionCounter), counter)
}

// DeleteQuoteRequest godoc
// @Summary      Delete a quote request at any status
// @Tags         quote-requests
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Quote request id"
// @Success      200  {object}  response.DeleteQuoteRequestResponse
// @Failure      403  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Router       /quote-requests/{id} [delete]
func (h *QuoteRequestHandler) DeleteQuoteRequest(c *gin.Context) {
	id, err := h.usecase.Remove(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		appErr := mapQuoteRequestError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromDeletedQuoteRequest(id))
}

func (h *QuoteRequestHandler) resolveQuoteRequestByAction(c *gin.Context, action string, counter entities.CounterProposal) {
	q, err := h.usecase.Resolve(c.Request.Context(), c.Param("id"), middleware.CallerID(c), action, counter)
	if err != nil {
		appErr := mapQuoteRequestError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuoteRequest(q))
}

func mapQuoteRequestError(err error) *pkg.AppError {
	var validationErr *entities.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return pkg.NewDomainErrorSimple("VALIDATION_ERROR", "Invalid quote request input", http.StatusBadRequest).
			WithDetails(validationErr.Error())
	case errors.Is(err, usecase.ErrUnauthenticated):
		return pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Authentication required", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrNotQuoteFreelancer):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Only the freelancer can resolve this quote request", http.StatusForbidden)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Caller is not a participant of this quote request", http.StatusForbidden)
	case errors.Is(err, usecase.ErrQuoteRequestNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_REQUEST_NOT_FOUND", "Quote request not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteRequestAlreadyResolved):
		return pkg.NewDomainErrorSimple("QUOTE_REQUEST_ALREADY_RESOLVED", "Quote request is no longer pending", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
