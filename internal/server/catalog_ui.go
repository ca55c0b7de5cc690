package server

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/vitrine/internal/catalog/dispatch"
	"github.com/smallbiznis/vitrine/internal/catalog/domain"
	"github.com/smallbiznis/vitrine/internal/catalog/intake"
	"github.com/smallbiznis/vitrine/internal/catalog/render"
	"go.uber.org/zap"
)

const htmlContentType = "text/html; charset=utf-8"

// Index renders the whole panel from the cached catalog, loading it on the
// first visit.
func (s *Server) Index(c *gin.Context) {
	notice := s.flash.Pop(c)

	if !s.catalog.Loaded() {
		if err := s.catalog.Load(c.Request.Context()); err != nil {
			_ = c.Error(err)
			if notice == "" {
				notice = domain.UserMessage(err)
			}
		}
	}

	query := c.Query("q")
	var buf bytes.Buffer
	if err := s.renderer.RenderPage(&buf, render.Page{
		Products: s.catalog.Search(query),
		Query:    query,
		Notice:   notice,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}

// ListFragment serves the product list container for a search query. It
// never contacts the backend.
func (s *Server) ListFragment(c *gin.Context) {
	var buf bytes.Buffer
	if err := s.renderer.RenderList(&buf, s.catalog.Search(c.Query("q"))); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}

func (s *Server) SubmitProduct(c *gin.Context) {
	image, err := c.FormFile("imagem")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		s.redirectWithError(c, invalidRequestError())
		return
	}

	product, err := s.builder.Build(intake.Form{
		Nome:      c.PostForm("nome"),
		Descricao: c.PostForm("descricao"),
		Preco:     c.PostForm("preco"),
		Tipo:      c.PostForm("tipo"),
		Estoque:   c.PostForm("estoque"),
		Image:     image,
	})
	if err != nil {
		s.redirectWithError(c, err)
		return
	}

	if err := s.catalog.Create(c.Request.Context(), product); err != nil {
		s.redirectWithError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// CardAction handles the three card controls. The stock counter value the
// operator saw arrives in the displayed field.
func (s *Server) CardAction(c *gin.Context) {
	id, err := domain.ParseProductID(c.Param("id"))
	if err != nil {
		s.redirectWithError(c, err)
		return
	}

	cmd := dispatch.Command{
		Action:    domain.ParseAction(c.PostForm("action")),
		ProductID: id,
		Displayed: intake.ParseStock(c.PostForm("displayed")),
	}
	if err := s.dispatcher.Dispatch(c.Request.Context(), cmd); err != nil {
		s.redirectWithError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) Reload(c *gin.Context) {
	if err := s.catalog.Load(c.Request.Context()); err != nil {
		s.redirectWithError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) redirectWithError(c *gin.Context, err error) {
	_ = c.Error(err)

	message := domain.UserMessage(err)
	if message == "" {
		message = "Erro inesperado. Tente novamente mais tarde."
	}
	if flashErr := s.flash.Set(c, message); flashErr != nil {
		s.log.Warn("flash not stored", zap.Error(flashErr))
	}
	c.Redirect(http.StatusSeeOther, "/")
}
