package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/vitrine/internal/catalog/dispatch"
	"github.com/smallbiznis/vitrine/internal/catalog/domain"
	"github.com/smallbiznis/vitrine/internal/catalog/intake"
	"github.com/smallbiznis/vitrine/internal/catalog/render"
	"github.com/smallbiznis/vitrine/internal/catalog/search"
	"github.com/smallbiznis/vitrine/internal/config"
	"github.com/smallbiznis/vitrine/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	products  []domain.Product
	loaded    bool
	loadCalls int
	loadErr   error
	mutateErr error

	created []domain.Product
	removed []int64
	patched map[int64]int64
}

func (f *fakeCatalog) Load(context.Context) error {
	f.loadCalls++
	if f.loadErr != nil {
		return domain.Failed(domain.OpLoad, f.loadErr)
	}
	f.loaded = true
	return nil
}

func (f *fakeCatalog) Create(_ context.Context, p domain.Product) error {
	if f.mutateErr != nil {
		return domain.Failed(domain.OpCreate, f.mutateErr)
	}
	f.created = append(f.created, p)
	f.products = append(f.products, p)
	return nil
}

func (f *fakeCatalog) Remove(_ context.Context, id int64) error {
	if f.mutateErr != nil {
		return domain.Failed(domain.OpRemove, f.mutateErr)
	}
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeCatalog) PatchStock(_ context.Context, id int64, stock int64) error {
	if f.mutateErr != nil {
		return domain.Failed(domain.OpStock, f.mutateErr)
	}
	if f.patched == nil {
		f.patched = map[int64]int64{}
	}
	f.patched[id] = stock
	for i := range f.products {
		if f.products[i].ID == id {
			f.products[i].Estoque = stock
		}
	}
	return nil
}

func (f *fakeCatalog) Loaded() bool { return f.loaded }
func (f *fakeCatalog) Products() []domain.Product {
	return append([]domain.Product(nil), f.products...)
}
func (f *fakeCatalog) Search(q string) []domain.Product { return search.Filter(f.products, q) }

type sequenceIDs struct{ next int64 }

func (s *sequenceIDs) NextID() int64 {
	s.next++
	return s.next
}

func seedCatalog() *fakeCatalog {
	return &fakeCatalog{
		loaded: true,
		products: []domain.Product{
			{ID: 1, Nome: "Chair", Descricao: "Oak", Preco: decimal.RequireFromString("19.9"), Tipo: "Móveis", Estoque: 5},
			{ID: 2, Nome: "Table", Descricao: "Pine", Preco: decimal.NewFromInt(120), Tipo: "Móveis", Estoque: 2},
		},
	}
}

func newTestServer(t *testing.T, catalog *fakeCatalog) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{SessionSecret: "test-session-secret", MaxImageBytes: 1024}
	engine := NewEngine(observability.Config{Environment: "test"}, nil, nil)
	NewServer(ServerParams{
		Gin:        engine,
		Cfg:        cfg,
		Catalog:    catalog,
		Dispatcher: dispatch.New(catalog),
		Builder:    intake.NewBuilder(cfg, &sequenceIDs{next: 1000}),
		Renderer:   render.New(config.NewStaticPanelConfigHolder(config.DefaultPanelConfig())),
		Flash:      NewFlash(cfg),
	})
	return engine
}

func postForm(engine *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

// followWithCookies replays the redirect target with the cookies just set.
func followWithCookies(engine *gin.Engine, rec *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, rec.Header().Get("Location"), nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}
	next := httptest.NewRecorder()
	engine.ServeHTTP(next, req)
	return next
}

func TestIndexLoadsOnFirstVisit(t *testing.T) {
	catalog := seedCatalog()
	catalog.loaded = false
	engine := newTestServer(t, catalog)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, catalog.loadCalls)
	assert.Contains(t, rec.Body.String(), `<span id="stock-1">5</span>`)
	assert.Contains(t, rec.Body.String(), `<span id="stock-2">2</span>`)

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, 1, catalog.loadCalls)
}

func TestIndexShowsLoadFailure(t *testing.T) {
	catalog := &fakeCatalog{loadErr: errors.New("unreachable")}
	engine := newTestServer(t, catalog)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `alert("Erro ao carregar produtos. Tente novamente mais tarde.")`)
}

func TestSearchFragment(t *testing.T) {
	catalog := seedCatalog()
	engine := newTestServer(t, catalog)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products?q=chai", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h3>Chair</h3>")
	assert.NotContains(t, rec.Body.String(), "Table")
	assert.NotContains(t, rec.Body.String(), "<html")
	assert.Zero(t, catalog.loadCalls)
}

func TestSubmitWithoutImageIsBlocked(t *testing.T) {
	catalog := seedCatalog()
	engine := newTestServer(t, catalog)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("nome", "Lamp"))
	require.NoError(t, w.WriteField("preco", "10"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/products", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, catalog.created)

	page := followWithCookies(engine, rec)
	assert.Contains(t, page.Body.String(), `alert("Por favor, selecione uma imagem.")`)
}

func TestSubmitProduct(t *testing.T) {
	catalog := seedCatalog()
	engine := newTestServer(t, catalog)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("nome", "Lamp"))
	require.NoError(t, w.WriteField("descricao", "Desk lamp"))
	require.NoError(t, w.WriteField("preco", "35.5"))
	require.NoError(t, w.WriteField("tipo", "Iluminação"))
	require.NoError(t, w.WriteField("estoque", "4"))
	part, err := w.CreateFormFile("imagem", "lamp.gif")
	require.NoError(t, err)
	_, err = part.Write([]byte("GIF89a\x01\x00\x01\x00"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/products", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	require.Len(t, catalog.created, 1)
	created := catalog.created[0]
	assert.Equal(t, int64(1001), created.ID)
	assert.Equal(t, "Lamp", created.Nome)
	assert.Equal(t, "35.5", created.Preco.String())
	assert.Equal(t, int64(4), created.Estoque)
	assert.True(t, strings.HasPrefix(created.Imagem, "data:image/gif;base64,"))
}

func TestCardActionDecreasesDisplayedValue(t *testing.T) {
	catalog := seedCatalog()
	engine := newTestServer(t, catalog)

	for _, displayed := range []string{"5", "4", "3"} {
		rec := postForm(engine, "/products/1/actions", url.Values{
			"action":    {"decrease-stock"},
			"displayed": {displayed},
		})
		require.Equal(t, http.StatusSeeOther, rec.Code)
	}

	assert.Equal(t, int64(2), catalog.patched[1])
}

func TestCardActionRemove(t *testing.T) {
	catalog := seedCatalog()
	engine := newTestServer(t, catalog)

	rec := postForm(engine, "/products/2/actions", url.Values{"action": {"remove-product"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []int64{2}, catalog.removed)
}

func TestCardActionFailureFlashesCategory(t *testing.T) {
	catalog := seedCatalog()
	catalog.mutateErr = errors.New("backend down")
	engine := newTestServer(t, catalog)

	rec := postForm(engine, "/products/1/actions", url.Values{
		"action":    {"increase-stock"},
		"displayed": {"5"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	page := followWithCookies(engine, rec)
	assert.Contains(t, page.Body.String(), `alert("Erro ao atualizar estoque. Tente novamente mais tarde.")`)
	assert.Equal(t, 1, strings.Count(page.Body.String(), "alert("))
}

func TestCardActionUnknownAction(t *testing.T) {
	catalog := seedCatalog()
	engine := newTestServer(t, catalog)

	rec := postForm(engine, "/products/1/actions", url.Values{"action": {"explode"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, catalog.patched)
	assert.Empty(t, catalog.removed)
}

func TestReload(t *testing.T) {
	catalog := seedCatalog()
	engine := newTestServer(t, catalog)

	rec := postForm(engine, "/products/reload", url.Values{})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 1, catalog.loadCalls)
}

func TestAPIListProducts(t *testing.T) {
	engine := newTestServer(t, seedCatalog())

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products?q=pine", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data []domain.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Table", resp.Data[0].Nome)
}

func TestAPICreateRequiresImage(t *testing.T) {
	catalog := seedCatalog()
	engine := newTestServer(t, catalog)

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"nome":"Lamp","preco":"3"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Type)
	require.Len(t, resp.Error.Errors, 1)
	assert.Equal(t, "imagem", resp.Error.Errors[0].Field)
	assert.Empty(t, catalog.created)
}

func TestAPIPatchStock(t *testing.T) {
	catalog := seedCatalog()
	engine := newTestServer(t, catalog)

	req := httptest.NewRequest(http.MethodPatch, "/api/products/1/stock", strings.NewReader(`{"estoque":9}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(9), catalog.patched[1])
	assert.Contains(t, rec.Body.String(), `"estoque":9`)
}

func TestAPIPatchStockFailure(t *testing.T) {
	catalog := seedCatalog()
	catalog.mutateErr = errors.New("backend down")
	engine := newTestServer(t, catalog)

	req := httptest.NewRequest(http.MethodPatch, "/api/products/1/stock", strings.NewReader(`{"estoque":9}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "operation_failed", resp.Error.Type)
	assert.Equal(t, "Erro ao atualizar estoque. Tente novamente mais tarde.", resp.Error.Message)
}

func TestAPIRemoveInvalidID(t *testing.T) {
	engine := newTestServer(t, seedCatalog())

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/products/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	engine := newTestServer(t, seedCatalog())

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	engine := newTestServer(t, seedCatalog())

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestIndexAndFragmentFilterTheSameQuery(t *testing.T) {
	catalog := seedCatalog()
	engine := newTestServer(t, catalog)

	page := httptest.NewRecorder()
	engine.ServeHTTP(page, httptest.NewRequest(http.MethodGet, "/?q=%20", nil))
	require.Equal(t, http.StatusOK, page.Code)

	fragment := httptest.NewRecorder()
	engine.ServeHTTP(fragment, httptest.NewRequest(http.MethodGet, "/products?q=%20", nil))
	require.Equal(t, http.StatusOK, fragment.Code)

	assert.NotContains(t, fragment.Body.String(), "<h3>Chair</h3>")
	assert.NotContains(t, page.Body.String(), "<h3>Chair</h3>")
	assert.NotContains(t, page.Body.String(), "<h3>Table</h3>")
}
