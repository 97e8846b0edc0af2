package handler

import (
	"net/http"

	"github.com/HostingCuenca/vet-system/internal/dto"
	"github.com/HostingCuenca/vet-system/internal/service"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct{ svc service.CatalogService }

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler { return &CatalogHandler{svc: svc} }

// ListProducts godoc
// @Summary Lista productos (activos, o todos con ?all=true)
// @Tags catalog
// @Produce json
// @Param all query bool false "Incluir inactivos"
// @Success 200 {array} model.Product
// @Router /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.svc.ListProducts(c.Request.Context(), c.Query("all") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// CreateProduct godoc
// @Summary Crea un producto
// @Tags catalog
// @Accept json
// @Produce json
// @Param body body dto.CreateProductRequest true "Producto"
// @Success 201 {object} model.Product
// @Failure 400 {object} apierror.APIError
// @Router /products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p, err := h.svc.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// ListServices godoc
// @Summary Lista servicios (activos, o todos con ?all=true)
// @Tags catalog
// @Produce json
// @Param all query bool false "Incluir inactivos"
// @Success 200 {array} model.ServiceCatalog
// @Router /services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.svc.ListServices(c.Request.Context(), c.Query("all") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// CreateService godoc
// @Summary Crea un servicio
// @Tags catalog
// @Accept json
// @Produce json
// @Param body body dto.CreateServiceRequest true "Servicio"
// @Success 201 {object} model.ServiceCatalog
// @Failure 400 {object} apierror.APIError
// @Router /services [post]
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req dto.CreateServiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	svc, err := h.svc.CreateService(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}
