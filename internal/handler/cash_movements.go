package handler

import (
	"net/http"

	"github.com/HostingCuenca/vet-system/internal/apierror"
	"github.com/HostingCuenca/vet-system/internal/dto"
	"github.com/HostingCuenca/vet-system/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CashMovementsHandler struct{ svc service.CashMovementService }

func NewCashMovementsHandler(svc service.CashMovementService) *CashMovementsHandler {
	return &CashMovementsHandler{svc: svc}
}

// Create godoc
// @Summary Registra un movimiento manual en una sesion abierta
// @Tags cash-movements
// @Accept json
// @Produce json
// @Param body body dto.CreateCashMovementRequest true "Movimiento"
// @Success 201 {object} model.CashMovement
// @Failure 400 {object} apierror.APIError
// @Router /cash-movements [post]
func (h *CashMovementsHandler) Create(c *gin.Context) {
	var req dto.CreateCashMovementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	mov, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mov)
}

// List godoc
// @Summary Lista movimientos, opcionalmente de una sola sesion
// @Tags cash-movements
// @Produce json
// @Param sessionId query string false "ID de sesion"
// @Success 200 {array} model.CashMovement
// @Router /cash-movements [get]
func (h *CashMovementsHandler) List(c *gin.Context) {
	var sessionID *uuid.UUID
	if raw := c.Query("sessionId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("sessionId inválido"))
			return
		}
		sessionID = &id
	}
	movs, err := h.svc.List(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movs)
}
