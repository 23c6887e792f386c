package http

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mantenpro/mantenpro-api/internal/application/dieselimport"
	"github.com/mantenpro/mantenpro-api/internal/application/dto"
	"github.com/mantenpro/mantenpro-api/internal/application/report"
	"github.com/mantenpro/mantenpro-api/internal/domain"
	"github.com/mantenpro/mantenpro-api/internal/domain/repository"
	"github.com/mantenpro/mantenpro-api/pkg/config"
)

// DieselHandler maneja la importación del libro de diesel y las consultas de
// lotes conciliados.
type DieselHandler struct {
	importUC *dieselimport.ImportUseCase
	queryUC  *dieselimport.BatchQueryUseCase
	reportUC *report.BatchReportUseCase
	cfg      config.ImportConfig
}

// NewDieselHandler construye el handler de diesel.
func NewDieselHandler(
	importUC *dieselimport.ImportUseCase,
	queryUC *dieselimport.BatchQueryUseCase,
	reportUC *report.BatchReportUseCase,
	cfg config.ImportConfig,
) *DieselHandler {
	return &DieselHandler{importUC: importUC, queryUC: queryUC, reportUC: reportUC, cfg: cfg}
}

// Preview godoc
// @Summary      Vista previa de una importación del libro de diesel
// @Description  Corre el pipeline completo sobre el xlsx sin persistir nada.
// @Tags         diesel
// @Accept       multipart/form-data
// @Produce      json
// @Param        file   formData  file    true   "export xlsx del libro de diesel"
// @Param        sheet  query     string  false  "hoja a leer (default: configurada)"
// @Success      200    {object}  dto.ImportPreviewDTO
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/diesel/import/preview [post]
func (h *DieselHandler) Preview(c *fiber.Ctx) error {
	file, filename, ok := h.openUpload(c)
	if !ok {
		return nil
	}
	defer file.Close()

	out, err := h.importUC.Preview(c.Context(), file, filename, h.sheet(c))
	if err != nil {
		return importError(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar una importación del libro de diesel
// @Description  Persiste todos los lotes del archivo en una sola transacción y
// @Description  actualiza el inventario de las bodegas conocidas.
// @Tags         diesel
// @Accept       multipart/form-data
// @Produce      json
// @Param        file   formData  file    true   "export xlsx del libro de diesel"
// @Param        sheet  query     string  false  "hoja a leer (default: configurada)"
// @Success      201    {object}  dto.ImportResultDTO
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/diesel/import/confirm [post]
func (h *DieselHandler) Confirm(c *fiber.Ctx) error {
	file, filename, ok := h.openUpload(c)
	if !ok {
		return nil
	}
	defer file.Close()

	out, err := h.importUC.Confirm(c.Context(), file, filename, h.sheet(c))
	if err != nil {
		return importError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBatches godoc
// @Summary      Listar lotes conciliados
// @Tags         diesel
// @Produce      json
// @Param        planta  query  string  false  "código de planta"
// @Param        bodega  query  string  false  "número de bodega"
// @Param        status  query  string  false  "pendiente|conciliado|aceptado|rechazado"
// @Success      200     {array}   dto.BatchSummaryDTO
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/diesel/batches [get]
func (h *DieselHandler) ListBatches(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()

	filter := repository.BatchFilter{
		Planta: c.Query("planta"),
		Bodega: c.Query("bodega"),
		Status: c.Query("status"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	list, err := h.queryUC.List(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetBatch godoc
// @Summary      Detalle de un lote (filas y lecturas)
// @Tags         diesel
// @Produce      json
// @Param        id   path      string  true  "ID del lote"
// @Success      200  {object}  dto.BatchDetailDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/diesel/batches/{id} [get]
func (h *DieselHandler) GetBatch(c *fiber.Ctx) error {
	detail, err := h.queryUC.GetByID(c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(detail)
}

// RejectBatch godoc
// @Summary      Anular un lote aceptado
// @Tags         diesel
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/diesel/batches/{id}/reject [post]
func (h *DieselHandler) RejectBatch(c *fiber.Ctx) error {
	err := h.queryUC.Reject(c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
		}
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el lote ya está rechazado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BatchReport godoc
// @Summary      Reporte PDF de conciliación de un lote
// @Tags         diesel
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/diesel/batches/{id}/report [get]
func (h *DieselHandler) BatchReport(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.reportUC.GenerateByBatchID(c.Context(), id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="conciliacion-`+id+`.pdf"`)
	return c.Send(pdf)
}

// openUpload valida y abre el xlsx del multipart. Si el archivo no sirve
// responde el error directamente y devuelve ok=false.
func (h *DieselHandler) openUpload(c *fiber.Ctx) (file multipart.File, filename string, ok bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo multipart 'file' requerido"})
		return nil, "", false
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "solo se aceptan archivos .xlsx"})
		return nil, "", false
	}
	if max := int64(h.cfg.MaxFileSizeMB) * 1024 * 1024; fh.Size > max {
		_ = c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "el archivo excede el tamaño máximo"})
		return nil, "", false
	}
	f, err := fh.Open()
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo abrir el archivo"})
		return nil, "", false
	}
	return f, fh.Filename, true
}

func (h *DieselHandler) sheet(c *fiber.Ctx) string {
	if s := c.Query("sheet"); s != "" {
		return s
	}
	return h.cfg.DefaultSheet
}

func importError(c *fiber.Ctx, err error) error {
	if err == domain.ErrEmptyImport {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_IMPORT", Message: "el archivo no contiene movimientos"})
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "IMPORT_FAILED", Message: err.Error()})
}
