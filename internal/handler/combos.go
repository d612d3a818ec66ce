package handler

import (
	"net/http"

	"github.com/VishnuMK2006/inventory-management-sub001/internal/apierror"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/dto"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CombosHandler struct{ svc service.CatalogService }

func NewCombosHandler(svc service.CatalogService) *CombosHandler {
	return &CombosHandler{svc: svc}
}

func (h *CombosHandler) Create(c *gin.Context) {
	var req dto.CreateComboRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateCombo(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CombosHandler) List(c *gin.Context) {
	resp, err := h.svc.ListCombos(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CombosHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.GetCombo(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
