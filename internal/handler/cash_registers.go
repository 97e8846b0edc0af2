package handler

import (
	"net/http"

	"github.com/HostingCuenca/vet-system/internal/dto"
	"github.com/HostingCuenca/vet-system/internal/service"

	"github.com/gin-gonic/gin"
)

type CashRegistersHandler struct{ svc service.CashRegisterService }

func NewCashRegistersHandler(svc service.CashRegisterService) *CashRegistersHandler {
	return &CashRegistersHandler{svc: svc}
}

// List godoc
// @Summary Lista las cajas activas con su sesion abierta
// @Tags cash-registers
// @Produce json
// @Success 200 {array} model.CashRegister
// @Router /cash-registers [get]
func (h *CashRegistersHandler) List(c *gin.Context) {
	regs, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, regs)
}

// Create godoc
// @Summary Crea una caja registradora
// @Tags cash-registers
// @Accept json
// @Produce json
// @Param body body dto.CreateCashRegisterRequest true "Nombre y ubicacion"
// @Success 201 {object} model.CashRegister
// @Failure 400 {object} apierror.APIError
// @Router /cash-registers [post]
func (h *CashRegistersHandler) Create(c *gin.Context) {
	var req dto.CreateCashRegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	reg, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reg)
}

// Deactivate godoc
// @Summary Desactiva una caja (no debe tener sesion abierta)
// @Tags cash-registers
// @Param id path string true "ID de caja"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /cash-registers/{id} [delete]
func (h *CashRegistersHandler) Deactivate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
