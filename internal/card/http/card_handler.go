// Package http provides HTTP handlers for card issuance, listing, lifecycle
// changes and transfers.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/cardvault/internal/auth/domain"
	authHTTP "github.com/allisson/cardvault/internal/auth/http"
	cardDomain "github.com/allisson/cardvault/internal/card/domain"
	"github.com/allisson/cardvault/internal/card/http/dto"
	cardUseCase "github.com/allisson/cardvault/internal/card/usecase"
	"github.com/allisson/cardvault/internal/httputil"
	customValidation "github.com/allisson/cardvault/internal/validation"
)

// CardHandler handles card HTTP requests. Every route requires an identity
// placed in the context by authHTTP.AuthenticationMiddleware.
type CardHandler struct {
	cardUseCase     cardUseCase.CardUseCase
	transferUseCase cardUseCase.TransferUseCase
	logger          *slog.Logger
}

// NewCardHandler creates a new card handler with required dependencies.
func NewCardHandler(
	cardUseCase cardUseCase.CardUseCase,
	transferUseCase cardUseCase.TransferUseCase,
	logger *slog.Logger,
) *CardHandler {
	return &CardHandler{
		cardUseCase:     cardUseCase,
		transferUseCase: transferUseCase,
		logger:          logger,
	}
}

// actor returns the authenticated identity or writes 401 and returns false.
func (h *CardHandler) actor(c *gin.Context) (authDomain.Identity, bool) {
	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, authDomain.ErrInvalidToken, h.logger)
		return authDomain.Identity{}, false
	}
	return *identity, true
}

// CreateHandler issues a card for a user.
// POST /v1/cards - ADMIN. Returns 201 Created with the masked card.
func (h *CardHandler) CreateHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	card, err := h.cardUseCase.Create(c.Request.Context(), actor, req.ToCreateCardInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.respondCard(c, http.StatusCreated, card)
}

// ListOwnHandler lists the caller's cards newest first.
// GET /v1/cards?offset=0&limit=50&number_filter=1234 - USER.
func (h *CardHandler) ListOwnHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var query dto.ListOwnQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := query.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	page, err := h.cardUseCase.ListOwn(c.Request.Context(), actor, cardUseCase.ListOwnInput{
		NumberFilter: query.NumberFilter,
		Offset:       offset,
		Limit:        limit,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	data, err := dto.MapCardsToResponses(page.Cards)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.OwnCardsResponse{Data: data, Total: page.Total})
}

// ListAllHandler lists every card ordered by balance descending.
// GET /v1/cards/all?offset=0&limit=50 - ADMIN.
func (h *CardHandler) ListAllHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	cards, err := h.cardUseCase.ListAll(c.Request.Context(), actor, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	data, err := dto.MapCardsToResponses(cards)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.CardListResponse{Data: data})
}

// TransferHandler moves funds between two of the caller's cards.
// POST /v1/cards/transfer - USER. Returns 204 No Content.
func (h *CardHandler) TransferHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.transferUseCase.Transfer(c.Request.Context(), actor, req.ToTransferInput()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// BlockHandler blocks a card.
// PATCH /v1/cards/:id/block - ADMIN.
func (h *CardHandler) BlockHandler(c *gin.Context) {
	h.transition(c, h.cardUseCase.Block)
}

// RequestBlockHandler asks an administrator to block one of the caller's cards.
// PATCH /v1/cards/:id/block-request - USER.
func (h *CardHandler) RequestBlockHandler(c *gin.Context) {
	h.transition(c, h.cardUseCase.RequestBlock)
}

// ActivateHandler activates a card.
// PATCH /v1/cards/:id/activate - ADMIN.
func (h *CardHandler) ActivateHandler(c *gin.Context) {
	h.transition(c, h.cardUseCase.Activate)
}

// DeleteHandler hard deletes a card.
// DELETE /v1/cards/:id - ADMIN. Returns 204 No Content.
func (h *CardHandler) DeleteHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	id, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.cardUseCase.Delete(c.Request.Context(), actor, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

type transitionFunc func(
	ctx context.Context,
	actor authDomain.Identity,
	id uuid.UUID,
) (*cardDomain.Card, error)

func (h *CardHandler) transition(c *gin.Context, change transitionFunc) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	id, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	card, err := change(c.Request.Context(), actor, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.respondCard(c, http.StatusOK, card)
}

func (h *CardHandler) respondCard(c *gin.Context, status int, card *cardDomain.Card) {
	response, err := dto.MapCardToResponse(card)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(status, response)
}
