package handler

import (
	"net/http"

	"github.com/alperendnc/jewelery-app-sub000/internal/dto"
	"github.com/alperendnc/jewelery-app-sub000/internal/middleware"
	"github.com/alperendnc/jewelery-app-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// CashHandler scopes every operation to the authenticated operator taken
// from the JWT claims. There is no way to address another operator's till.
type CashHandler struct{ svc service.CashService }

func NewCashHandler(svc service.CashService) *CashHandler {
	return &CashHandler{svc: svc}
}

func (h *CashHandler) OpenDay(c *gin.Context) {
	var req dto.OpenDayRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.OpenDay(c.Request.Context(), claims.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CashHandler) CloseDay(c *gin.Context) {
	var req dto.CloseDayRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.CloseDay(c.Request.Context(), claims.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CashHandler) GetDay(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.GetDay(c.Request.Context(), claims.UserID, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CashHandler) History(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.History(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
