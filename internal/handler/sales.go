package handler

import (
	"net/http"

	"github.com/HostingCuenca/vet-system/internal/dto"
	"github.com/HostingCuenca/vet-system/internal/service"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

// Create godoc
// @Summary Registra una venta contra una sesion abierta
// @Tags sales
// @Accept json
// @Produce json
// @Param body body dto.CreateSaleRequest true "Venta"
// @Success 201 {object} model.Sale
// @Failure 400 {object} apierror.APIError
// @Router /sales [post]
func (h *SalesHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sale, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// List godoc
// @Summary Lista las ventas con items, sesion y recibo
// @Tags sales
// @Produce json
// @Success 200 {array} model.Sale
// @Router /sales [get]
func (h *SalesHandler) List(c *gin.Context) {
	sales, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// Get godoc
// @Summary Detalle de una venta
// @Tags sales
// @Produce json
// @Param id path string true "ID de venta"
// @Success 200 {object} model.Sale
// @Failure 404 {object} apierror.APIError
// @Router /sales/{id} [get]
func (h *SalesHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	sale, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}
