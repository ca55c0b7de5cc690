package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/vitrine/internal/catalog/dispatch"
	"github.com/smallbiznis/vitrine/internal/catalog/domain"
)

type patchStockRequest struct {
	Estoque *int64 `json:"estoque"`
}

func (s *Server) ListProducts(c *gin.Context) {
	if !s.catalog.Loaded() {
		if err := s.catalog.Load(c.Request.Context()); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": s.catalog.Search(c.Query("q"))})
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req domain.Product
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	product, err := s.builder.FromRecord(req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.catalog.Create(c.Request.Context(), product); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

func (s *Server) RemoveProduct(c *gin.Context) {
	id, err := domain.ParseProductID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.dispatcher.Dispatch(c.Request.Context(), dispatch.Command{
		Action:    domain.ActionRemove,
		ProductID: id,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": id.String()}})
}

// PatchProductStock sets an absolute stock value.
func (s *Server) PatchProductStock(c *gin.Context) {
	id, err := domain.ParseProductID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req patchStockRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Estoque == nil {
		AbortWithError(c, newValidationError("estoque", "invalid_estoque", "invalid estoque"))
		return
	}
	if *req.Estoque < 0 {
		AbortWithError(c, newValidationError("estoque", "invalid_estoque", "estoque cannot be negative"))
		return
	}

	if err := s.catalog.PatchStock(c.Request.Context(), id.Int64(), *req.Estoque); err != nil {
		AbortWithError(c, err)
		return
	}

	for _, p := range s.catalog.Products() {
		if p.ID == id.Int64() {
			c.JSON(http.StatusOK, gin.H{"data": p})
			return
		}
	}
	AbortWithError(c, ErrNotFound)
}
