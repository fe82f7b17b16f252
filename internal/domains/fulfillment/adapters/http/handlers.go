package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CeDev0224/inventree/internal/domains/fulfillment/adapters/http/mapper"
	fulfillmenttypes "github.com/CeDev0224/inventree/internal/domains/fulfillment/application/types"
	"github.com/CeDev0224/inventree/internal/domains/fulfillment/domain"
	"github.com/CeDev0224/inventree/internal/domains/fulfillment/ports"
	sharederrors "github.com/CeDev0224/inventree/internal/shared/errors"
)

// Handlers exposes the fulfillment workflow over HTTP. Scan and search
// cycles go through the workflow orchestrator; everything else calls the
// service directly.
type Handlers struct {
	service      ports.Service
	orchestrator ports.WorkflowOrchestrator
	responder    *sharederrors.ChainedResponder
}

// NewHandlers wires the HTTP adapter.
func NewHandlers(service ports.Service, orchestrator ports.WorkflowOrchestrator) *Handlers {
	return &Handlers{
		service:      service,
		orchestrator: orchestrator,
		responder:    sharederrors.NewChainedResponder("", mapServiceError),
	}
}

// mapServiceError folds the port taxonomy into problem responses.
func mapServiceError(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrValidation):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrTransport):
		return sharederrors.ErrBadGateway.WithDetail(err.Error()), true
	case errors.Is(err, domain.ErrInvalidOrderID), errors.Is(err, domain.ErrInvalidLineID):
		return sharederrors.ErrBadRequest.WithDetail(err.Error()), true
	}
	return sharederrors.ProblemDetail{}, false
}

// ListOpenOrders returns the orders needing fulfillment with priorities.
func (h *Handlers) ListOpenOrders(c *gin.Context) {
	summaries, err := h.service.ListOpenOrders(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromOrderSummaries(summaries))
}

// OrderDetail returns the order header, lines, and progress.
func (h *Handlers) OrderDetail(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}
	view, err := h.service.OrderDetail(c.Request.Context(), fulfillmenttypes.OrderRef{OrderID: orderID})
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromOrderView(*view))
}

// Progress returns the derived fulfillment progress of an order.
func (h *Handlers) Progress(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}
	view, err := h.service.Progress(c.Request.Context(), fulfillmenttypes.OrderRef{OrderID: orderID})
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromOrderView(*view).Progress)
}

// Scan runs one barcode-driven fulfillment cycle.
func (h *Handlers) Scan(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}
	var req mapper.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	outcome, err := h.orchestrator.RunScanCycle(c.Request.Context(), fulfillmenttypes.ScanInput{
		OrderID: orderID,
		Barcode: req.Barcode,
	})
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromCycleOutcome(*outcome))
}

// Search runs one manual-SKU fulfillment cycle.
func (h *Handlers) Search(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}
	var req mapper.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	outcome, err := h.orchestrator.RunSearchCycle(c.Request.Context(), fulfillmenttypes.SearchInput{
		OrderID: orderID,
		Query:   req.Query,
	})
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromCycleOutcome(*outcome))
}

// Substitute confirms a proposed substitution and fulfills the line.
func (h *Handlers) Substitute(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}
	var req mapper.SubstituteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	result, err := h.service.ConfirmSubstitution(c.Request.Context(), fulfillmenttypes.SubstitutionInput{
		OrderID: orderID,
		LineID:  req.Line,
		PartID:  req.Part,
	})
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromFulfillmentResult(*result))
}

// Unavailable marks a line the picker cannot fulfill.
func (h *Handlers) Unavailable(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}
	var req mapper.UnavailableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	if err := h.service.MarkUnavailable(c.Request.Context(), fulfillmenttypes.UnavailableInput{
		OrderID: orderID,
		LineID:  req.Line,
		Notes:   req.Notes,
	}); err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) orderID(c *gin.Context) (int64, bool) {
	raw := c.Param("orderID")
	orderID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || orderID <= 0 {
		h.responder.BadRequest(c, "orderID must be a positive integer")
		return 0, false
	}
	return orderID, true
}
