package handler

import (
	"net/http"

	"barangaylink-backend/internal/modules/resident/dto"
	resident "barangaylink-backend/internal/modules/resident/service"
	"barangaylink-backend/pkg/apperror"
	"barangaylink-backend/pkg/response"
	"barangaylink-backend/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ResidentHandler struct {
	service resident.ResidentService
}

func NewResidentHandler(service resident.ResidentService) *ResidentHandler {
	return &ResidentHandler{service: service}
}

func (h *ResidentHandler) ListResidents(c *gin.Context) {
	residents, err := h.service.ListResidents(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, residents)
}

func (h *ResidentHandler) CreateResident(c *gin.Context) {
	var req dto.CreateResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	created, err := h.service.CreateResident(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *ResidentHandler) GetResident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, "invalid id format", apperror.ErrInvalidInput))
		return
	}

	res, err := h.service.GetResident(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ResidentHandler) UpdateResident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, "invalid id format", apperror.ErrInvalidInput))
		return
	}

	var req dto.UpdateResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	updated, err := h.service.UpdateResident(c.Request.Context(), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *ResidentHandler) DeleteResident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, "invalid id format", apperror.ErrInvalidInput))
		return
	}

	if err := h.service.DeleteResident(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
