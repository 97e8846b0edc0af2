package handler

import (
	"net/http"

	"github.com/HostingCuenca/vet-system/internal/apierror"
	"github.com/HostingCuenca/vet-system/internal/dto"
	"github.com/HostingCuenca/vet-system/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type CashSessionsHandler struct{ svc service.CashSessionService }

func NewCashSessionsHandler(svc service.CashSessionService) *CashSessionsHandler {
	return &CashSessionsHandler{svc: svc}
}

// Action godoc
// @Summary Abre o cierra una sesion de caja segun "action"
// @Description action=open: {cashRegisterId, openingBalance, openedBy} -> 201
// @Description action=close: {sessionId, finalBalance, closedBy} -> 200 con la liquidacion
// @Tags cash-sessions
// @Accept json
// @Produce json
// @Param body body dto.CashSessionActionRequest true "Accion"
// @Success 200 {object} dto.CloseCashSessionResponse
// @Success 201 {object} model.CashSession
// @Failure 400 {object} apierror.APIError
// @Router /cash-sessions [post]
func (h *CashSessionsHandler) Action(c *gin.Context) {
	var req dto.CashSessionActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return
	}

	switch req.Action {
	case "open":
		open := req.Open()
		if !validateStruct(c, &open) {
			return
		}
		session, err := h.svc.Open(c.Request.Context(), open)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, session)

	case "close":
		closeReq := req.Close()
		if !validateStruct(c, &closeReq) {
			return
		}
		resp, err := h.svc.Close(c.Request.Context(), closeReq)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)

	default:
		c.JSON(http.StatusBadRequest, apierror.New(service.ErrInvalidAction.Error()+`: use "open" o "close"`))
	}
}

// List godoc
// @Summary Lista las sesiones de caja (mas recientes primero)
// @Tags cash-sessions
// @Produce json
// @Success 200 {array} model.CashSession
// @Router /cash-sessions [get]
func (h *CashSessionsHandler) List(c *gin.Context) {
	sessions, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// Get godoc
// @Summary Detalle de una sesion; si esta abierta incluye el saldo esperado actual
// @Tags cash-sessions
// @Produce json
// @Param id path string true "ID de sesion"
// @Success 200 {object} dto.CashSessionDetail
// @Failure 404 {object} apierror.APIError
// @Router /cash-sessions/{id} [get]
func (h *CashSessionsHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	detail, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Report godoc
// @Summary Descarga la liquidacion de la sesion en XLSX
// @Tags cash-sessions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "ID de sesion"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /cash-sessions/{id}/report.xlsx [get]
func (h *CashSessionsHandler) Report(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	data, filename, err := h.svc.ExportReport(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
