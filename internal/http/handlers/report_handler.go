// README: Report submission handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"omaga/internal/http/middleware"
	"omaga/internal/modules/report"
	"omaga/internal/types"
)

type ReportHandler struct {
	reports *report.Service
}

func NewReportHandler(reportSvc *report.Service) *ReportHandler {
	return &ReportHandler{reports: reportSvc}
}

type createReportReq struct {
	OrderID     string `json:"order_id"`
	Message     string `json:"message"`
	IsAnonymous bool   `json:"is_anonymous"`
}

func (h *ReportHandler) Create(c *gin.Context) {
	var req createReportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	r, err := h.reports.Create(c.Request.Context(), report.CreateCommand{
		OrderID:     types.ID(req.OrderID),
		UserID:      middleware.Caller(c).ID,
		Message:     req.Message,
		IsAnonymous: req.IsAnonymous,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"id": r.ID, "created_at": r.CreatedAt})
}
