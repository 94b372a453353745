package handler

import (
	"net/http"

	report "barangaylink-backend/internal/modules/report/service"
	requestDto "barangaylink-backend/internal/modules/request/dto"
	"barangaylink-backend/pkg/apperror"
	"barangaylink-backend/pkg/response"
	"barangaylink-backend/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service report.ReportService
}

func NewReportHandler(service report.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) RequestsCSV(c *gin.Context) {
	var filter requestDto.ListRequestsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="requests_report.csv"`)
	c.Status(http.StatusOK)

	if err := h.service.WriteRequestsCSV(c.Request.Context(), filter, c.Writer); err != nil {
		// Headers are already out; nothing sensible left to send.
		c.Error(err)
	}
}
