package render

import (
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"github.com/smallbiznis/vitrine/internal/catalog/domain"
	"github.com/smallbiznis/vitrine/internal/config"
)

// Page is the full panel view.
type Page struct {
	Products []domain.Product
	Query    string
	Notice   string
}

type pageView struct {
	Title  string
	Query  string
	Notice string
	Cards  []cardView
}

type cardView struct {
	ID       string
	Image    template.URL
	Nome     string
	Price    string
	Estoque  int64
	Tipo     string
	TipoSlug string
}

// Renderer projects products into cards. Every call writes the complete
// output; nothing is diffed against what was rendered before.
type Renderer struct {
	tpl   *template.Template
	panel *config.PanelConfigHolder
}

func New(panel *config.PanelConfigHolder) *Renderer {
	tpl := template.Must(template.New("render").Funcs(template.FuncMap{
		"control": controlClass,
	}).Parse(listTemplate))
	template.Must(tpl.New("page").Parse(pageTemplate))
	return &Renderer{tpl: tpl, panel: panel}
}

// RenderList writes the cards for products, in order, as the whole content
// of the product list container.
func (r *Renderer) RenderList(w io.Writer, products []domain.Product) error {
	return r.tpl.ExecuteTemplate(w, "list", r.cards(products))
}

func (r *Renderer) RenderPage(w io.Writer, page Page) error {
	return r.tpl.ExecuteTemplate(w, "page", pageView{
		Title:  r.panel.Get().Title,
		Query:  page.Query,
		Notice: page.Notice,
		Cards:  r.cards(page.Products),
	})
}

var controls = map[string]domain.Action{
	"remove":   domain.ActionRemove,
	"increase": domain.ActionIncreaseStock,
	"decrease": domain.ActionDecreaseStock,
}

// controlClass is the class and action value of a card control, shared with
// the dispatcher through domain.Action.
func controlClass(name string) string {
	return controls[name].Class()
}

func (r *Renderer) cards(products []domain.Product) []cardView {
	prefix := r.panel.Get().CurrencyPrefix
	out := make([]cardView, 0, len(products))
	for _, p := range products {
		out = append(out, cardView{
			ID:       strconv.FormatInt(p.ID, 10),
			Image:    imageURL(p.Imagem),
			Nome:     p.Nome,
			Price:    FormatPrice(prefix, p),
			Estoque:  p.Estoque,
			Tipo:     p.Tipo,
			TipoSlug: slug.Make(p.Tipo),
		})
	}
	return out
}

// FormatPrice renders the price with exactly two fractional digits.
func FormatPrice(prefix string, p domain.Product) string {
	return prefix + p.Preco.StringFixed(2)
}

// imageURL only trusts inline images and absolute web URLs; html/template
// would otherwise neutralize data URLs entirely.
func imageURL(raw string) template.URL {
	value := strings.TrimSpace(raw)
	lower := strings.ToLower(value)
	switch {
	case strings.HasPrefix(lower, "data:image/"):
		return template.URL(value)
	case strings.HasPrefix(lower, "https://"), strings.HasPrefix(lower, "http://"):
		return template.URL(value)
	default:
		return ""
	}
}
