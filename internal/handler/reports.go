package handler

import (
	"fmt"
	"net/http"

	"github.com/alperendnc/jewelery-app-sub000/internal/apierror"
	"github.com/alperendnc/jewelery-app-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// Daily returns the aggregated report for one date. An empty date means
// today.
func (h *ReportsHandler) Daily(c *gin.Context) {
	resp, err := h.svc.Daily(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) Range(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, apierror.New("from and to are required"))
		return
	}
	resp, err := h.svc.Range(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DailyPDF streams the daily report as a PDF download.
func (h *ReportsHandler) DailyPDF(c *gin.Context) {
	date := c.Query("date")
	data, err := h.svc.DailyPDF(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	filename := "daily_report.pdf"
	if date != "" {
		filename = fmt.Sprintf("daily_report_%s.pdf", date)
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
