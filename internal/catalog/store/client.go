package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/smallbiznis/vitrine/internal/catalog/domain"
	"github.com/smallbiznis/vitrine/internal/config"
	"github.com/smallbiznis/vitrine/internal/observability/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrBaseURLRequired = errors.New("catalog backend url is required")

// StatusError reports a non-2xx backend response.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

type Params struct {
	fx.In

	Cfg     config.Config
	Log     *zap.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

// Client talks to a spreadsheet-as-API backend: the collection lives at the
// base URL and single rows are addressed as <base>/id/<id>.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

func New(p Params) (domain.Store, error) {
	return NewClient(p.Cfg.BackendURL, &http.Client{Timeout: p.Cfg.BackendTimeout}, p.Log, p.Metrics)
}

func NewClient(baseURL string, httpClient *http.Client, log *zap.Logger, m *metrics.Metrics) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		log:     log.Named("catalog.store"),
		metrics: m,
		tracer:  otel.Tracer("vitrine/catalog/store"),
	}, nil
}

func (c *Client) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := c.do(ctx, "list", http.MethodGet, "", nil, &products)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (c *Client) Create(ctx context.Context, product domain.Product) error {
	return c.do(ctx, "create", http.MethodPost, "", product, nil)
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, "delete", http.MethodDelete, rowPath(id), nil, nil)
}

func (c *Client) PatchStock(ctx context.Context, id int64, stock int64) error {
	body := struct {
		Estoque int64 `json:"estoque"`
	}{Estoque: stock}
	return c.do(ctx, "patch_stock", http.MethodPatch, rowPath(id), body, nil)
}

func rowPath(id int64) string {
	return "/id/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, op, method, path string, body any, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "catalog.store."+op, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("catalog.path", path),
	)
	start := time.Now()
	defer func() {
		c.metrics.ObserveBackend(op, time.Since(start), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, op+" failed")
		}
		span.End()
	}()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}

	c.log.Debug("backend call",
		zap.String("operation", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
