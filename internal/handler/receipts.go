package handler

import (
	"net/http"

	"github.com/HostingCuenca/vet-system/internal/dto"
	"github.com/HostingCuenca/vet-system/internal/service"

	"github.com/gin-gonic/gin"
)

type ReceiptsHandler struct{ svc service.ReceiptService }

func NewReceiptsHandler(svc service.ReceiptService) *ReceiptsHandler {
	return &ReceiptsHandler{svc: svc}
}

// Create godoc
// @Summary Emite el recibo de una venta (uno por venta)
// @Tags receipts
// @Accept json
// @Produce json
// @Param body body dto.CreateReceiptRequest true "Recibo"
// @Success 201 {object} model.Receipt
// @Failure 400 {object} apierror.APIError
// @Router /receipts [post]
func (h *ReceiptsHandler) Create(c *gin.Context) {
	var req dto.CreateReceiptRequest
	if !bindAndValidate(c, &req) {
		return
	}
	rec, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// List godoc
// @Summary Lista los recibos
// @Tags receipts
// @Produce json
// @Success 200 {array} model.Receipt
// @Router /receipts [get]
func (h *ReceiptsHandler) List(c *gin.Context) {
	recs, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

// Get godoc
// @Summary Detalle de un recibo
// @Tags receipts
// @Produce json
// @Param id path string true "ID de recibo"
// @Success 200 {object} model.Receipt
// @Failure 404 {object} apierror.APIError
// @Router /receipts/{id} [get]
func (h *ReceiptsHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rec, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// PDF godoc
// @Summary Descarga el recibo en PDF
// @Tags receipts
// @Produce application/pdf
// @Param id path string true "ID de recibo"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /receipts/{id}/pdf [get]
func (h *ReceiptsHandler) PDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	data, rec, err := h.svc.RenderPDF(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="recibo_`+rec.ReceiptNumber+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
