package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/vitrine/internal/catalog/domain"
	"github.com/smallbiznis/vitrine/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer() *Renderer {
	return New(config.NewStaticPanelConfigHolder(config.DefaultPanelConfig()))
}

func chair() domain.Product {
	return domain.Product{
		ID:        1,
		Imagem:    "data:image/png;base64,iVBORw0KGgo=",
		Nome:      "Chair",
		Descricao: "Oak",
		Preco:     decimal.RequireFromString("19.9"),
		Tipo:      "Móveis de Sala",
		Estoque:   5,
	}
}

func TestRenderListCard(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer().RenderList(&buf, []domain.Product{chair()}))
	html := buf.String()

	assert.Contains(t, html, `<img src="data:image/png;base64,iVBORw0KGgo="`)
	assert.Contains(t, html, `<h3>Chair</h3>`)
	assert.Contains(t, html, `<p class="price">R$19.90</p>`)
	assert.Contains(t, html, `<span id="stock-1">5</span>`)
	assert.Contains(t, html, `Tipo: Móveis de Sala`)
	assert.Contains(t, html, `data-tipo="moveis-de-sala"`)
	for _, class := range []string{"decrease-stock", "increase-stock", "remove-product"} {
		assert.Contains(t, html, `class="`+class+`" data-id="1"`)
	}
}

func TestRenderListPreservesOrderAndCount(t *testing.T) {
	products := []domain.Product{
		{ID: 3, Nome: "Lamp"},
		{ID: 1, Nome: "Chair"},
		{ID: 2, Nome: "Table"},
	}
	var buf bytes.Buffer
	require.NoError(t, newRenderer().RenderList(&buf, products))
	html := buf.String()

	assert.Equal(t, 3, strings.Count(html, `class="product-card"`))
	lamp := strings.Index(html, "Lamp")
	chairAt := strings.Index(html, "Chair")
	table := strings.Index(html, "Table")
	assert.True(t, lamp < chairAt && chairAt < table)
}

func TestRenderListEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer().RenderList(&buf, nil))
	assert.NotContains(t, buf.String(), "product-card")
}

func TestRenderEscapesText(t *testing.T) {
	p := chair()
	p.Nome = `<script>alert(1)</script>`
	var buf bytes.Buffer
	require.NoError(t, newRenderer().RenderList(&buf, []domain.Product{p}))

	assert.NotContains(t, buf.String(), "<script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestImageURLRejectsScripts(t *testing.T) {
	assert.Equal(t, "", string(imageURL("javascript:alert(1)")))
	assert.Equal(t, "", string(imageURL("data:text/html;base64,PGI+")))
	assert.Equal(t, "https://cdn.example.com/a.png", string(imageURL("https://cdn.example.com/a.png")))
}

func TestFormatPrice(t *testing.T) {
	p := domain.Product{Preco: decimal.RequireFromString("7")}
	assert.Equal(t, "R$7.00", FormatPrice("R$", p))

	p.Preco = decimal.RequireFromString("3.456")
	assert.Equal(t, "R$3.46", FormatPrice("R$", p))
}

func TestRenderPageWithNotice(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer().RenderPage(&buf, Page{
		Products: []domain.Product{chair()},
		Query:    "cha",
		Notice:   "Por favor, selecione uma imagem.",
	}))
	html := buf.String()

	assert.Contains(t, html, "<title>Painel de Produtos</title>")
	assert.Contains(t, html, `value="cha"`)
	assert.Contains(t, html, `alert("Por favor, selecione uma imagem.")`)
	assert.Contains(t, html, `<span id="stock-1">5</span>`)
}

func TestRenderPageWithoutNoticeHasNoAlert(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer().RenderPage(&buf, Page{}))
	assert.NotContains(t, buf.String(), "alert(")
}

func TestRenderUsesPanelCurrency(t *testing.T) {
	r := New(config.NewStaticPanelConfigHolder(config.PanelConfig{Title: "Loja", CurrencyPrefix: "US$ "}))
	var buf bytes.Buffer
	require.NoError(t, r.RenderList(&buf, []domain.Product{chair()}))
	assert.Contains(t, buf.String(), "US$ 19.90")
}

func TestRenderedControlsParseBackToActions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer().RenderList(&buf, []domain.Product{chair()}))
	html := buf.String()

	for _, action := range []domain.Action{domain.ActionDecreaseStock, domain.ActionIncreaseStock, domain.ActionRemove} {
		class := action.Class()
		require.NotEmpty(t, class)
		assert.Contains(t, html, `value="`+class+`" class="`+class+`"`)
		assert.Equal(t, action, domain.ParseAction(class))
	}
}
