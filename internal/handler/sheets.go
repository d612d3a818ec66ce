package handler

import (
	"net/http"

	"github.com/VishnuMK2006/inventory-management-sub001/internal/apierror"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/dto"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SheetsHandler struct{ svc service.SheetService }

func NewSheetsHandler(svc service.SheetService) *SheetsHandler {
	return &SheetsHandler{svc: svc}
}

// Ingest accepts pre-extracted rows as JSON.
func (h *SheetsHandler) Ingest(c *gin.Context) {
	var req dto.IngestSheetRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Ingest(c.Request.Context(), req.FileName, req.Rows)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Upload accepts a multipart .xlsx file; rows come from the first worksheet.
func (h *SheetsHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("multipart field 'file' required"))
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("cannot read upload"))
		return
	}
	defer f.Close()

	resp, err := h.svc.IngestWorkbook(c.Request.Context(), fileHeader.Filename, f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SheetsHandler) List(c *gin.Context) {
	var filter dto.SheetFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListSheets(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SheetsHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.GetSheet(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SheetsHandler) UpdateRow(c *gin.Context) {
	sheetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid sheet id"))
		return
	}
	rowID, err := uuid.Parse(c.Param("rowId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid row id"))
		return
	}
	var patch dto.SheetRowPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return
	}
	resp, err := h.svc.UpdateRow(c.Request.Context(), sheetID, rowID, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SheetsHandler) DeleteRow(c *gin.Context) {
	sheetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid sheet id"))
		return
	}
	rowID, err := uuid.Parse(c.Param("rowId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid row id"))
		return
	}
	resp, err := h.svc.DeleteRow(c.Request.Context(), sheetID, rowID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SheetsHandler) AppendRow(c *gin.Context) {
	sheetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid sheet id"))
		return
	}
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return
	}
	resp, err := h.svc.AppendRow(c.Request.Context(), sheetID, raw)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
