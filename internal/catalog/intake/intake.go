package intake

import (
	"encoding/base64"
	"fmt"
	"html"
	"io"
	"mime/multipart"
	"strings"

	"github.com/h2non/filetype"
	"github.com/microcosm-cc/bluemonday"
	"github.com/smallbiznis/vitrine/internal/catalog/domain"
	"github.com/smallbiznis/vitrine/internal/config"
)

const fallbackMIME = "application/octet-stream"

// Form is the raw add-product submission.
type Form struct {
	Nome      string
	Descricao string
	Preco     string
	Tipo      string
	Estoque   string

	Image *multipart.FileHeader
}

// Builder turns a submitted form into a product record.
type Builder struct {
	ids      IDGenerator
	policy   *bluemonday.Policy
	maxImage int64
}

func NewBuilder(cfg config.Config, ids IDGenerator) *Builder {
	return &Builder{
		ids:      ids,
		policy:   bluemonday.StrictPolicy(),
		maxImage: cfg.MaxImageBytes,
	}
}

// Build validates the image, converts it to a data URL and only then
// assembles the record with a fresh id.
func (b *Builder) Build(form Form) (domain.Product, error) {
	if form.Image == nil {
		return domain.Product{}, domain.Invalid("imagem", domain.ErrMissingImage)
	}
	if b.maxImage > 0 && form.Image.Size > b.maxImage {
		return domain.Product{}, domain.Invalid("imagem", domain.ErrImageTooLarge)
	}

	f, err := form.Image.Open()
	if err != nil {
		return domain.Product{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	dataURL, err := b.DataURL(f, form.Image.Header.Get("Content-Type"))
	if err != nil {
		return domain.Product{}, err
	}

	return b.Assemble(form, dataURL), nil
}

// Assemble builds the record from already converted image data.
func (b *Builder) Assemble(form Form, image string) domain.Product {
	return domain.Product{
		ID:        b.ids.NextID(),
		Imagem:    image,
		Nome:      b.Clean(form.Nome),
		Descricao: b.Clean(form.Descricao),
		Preco:     ParsePrice(form.Preco),
		Tipo:      b.Clean(form.Tipo),
		Estoque:   ParseStock(form.Estoque),
	}
}

// DataURL reads r in full and encodes it as data:<mime>;base64,<payload>.
func (b *Builder) DataURL(r io.Reader, declared string) (string, error) {
	limit := b.maxImage
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return "", domain.Invalid("imagem", domain.ErrImageTooLarge)
	}

	mime := sniffMIME(data, declared)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

const maxCleanPasses = 8

// Clean strips markup and returns plain text. Entities are decoded, so the
// decoded text is sanitized again until it stops changing; escaped markup
// never comes back as a live tag.
func (b *Builder) Clean(s string) string {
	for i := 0; i < maxCleanPasses; i++ {
		next := html.UnescapeString(b.policy.Sanitize(s))
		if next == s {
			return strings.TrimSpace(s)
		}
		s = next
	}
	return strings.TrimSpace(b.policy.Sanitize(s))
}

func sniffMIME(data []byte, declared string) string {
	kind, err := filetype.Match(data)
	if err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	declared = strings.TrimSpace(declared)
	if declared != "" {
		return declared
	}
	return fallbackMIME
}

// FromRecord prepares a record submitted as JSON, where the image already
// arrives as a data URL.
func (b *Builder) FromRecord(p domain.Product) (domain.Product, error) {
	image := strings.TrimSpace(p.Imagem)
	if image == "" {
		return domain.Product{}, domain.Invalid("imagem", domain.ErrMissingImage)
	}
	if b.maxImage > 0 && int64(base64.StdEncoding.DecodedLen(len(image))) > b.maxImage {
		return domain.Product{}, domain.Invalid("imagem", domain.ErrImageTooLarge)
	}

	p.ID = b.ids.NextID()
	p.Imagem = image
	p.Nome = b.Clean(p.Nome)
	p.Descricao = b.Clean(p.Descricao)
	p.Tipo = b.Clean(p.Tipo)
	return p, nil
}
