package sheetstub

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/vitrine/internal/sheetstub/domain"
	"go.uber.org/zap"
)

// BasePath is where the sheet is mounted. BACKEND_URL points here by default.
const BasePath = "/api/v1/catalog"

type Handler struct {
	svc domain.Service
	log *zap.Logger
}

func NewHandler(svc domain.Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log.Named("sheetstub.http")}
}

func (h *Handler) Register(r gin.IRouter) {
	sheet := r.Group(BasePath)
	{
		sheet.GET("", h.List)
		sheet.POST("", h.Append)
		sheet.PATCH("/id/:id", h.Update)
		sheet.DELETE("/id/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Append accepts a record, a list of records, or either wrapped in "data".
func (h *Handler) Append(c *gin.Context) {
	var body any
	if err := decodeBody(c, &body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	records, ok := recordsFromBody(body)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected an object or a list of objects"})
		return
	}

	created, err := h.svc.Append(c.Request.Context(), records)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"created": created})
}

func (h *Handler) Update(c *gin.Context) {
	var body map[string]any
	if err := decodeBody(c, &body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if data, ok := body["data"].(map[string]any); ok {
		body = data
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func (h *Handler) Delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (h *Handler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrInvalidID), errors.Is(err, domain.ErrEmptyRecord):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Error("sheet operation failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func recordsFromBody(body any) ([]map[string]any, bool) {
	if wrapper, ok := body.(map[string]any); ok {
		if data, ok := wrapper["data"]; ok {
			body = data
		}
	}

	switch v := body.(type) {
	case map[string]any:
		return []map[string]any{v}, true
	case []any:
		records := make([]map[string]any, 0, len(v))
		for _, item := range v {
			record, ok := item.(map[string]any)
			if !ok {
				return nil, false
			}
			records = append(records, record)
		}
		return records, len(records) > 0
	default:
		return nil, false
	}
}

// decodeBody keeps numbers as json.Number so large ids are stored digit for
// digit.
func decodeBody(c *gin.Context, v any) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	return dec.Decode(v)
}
