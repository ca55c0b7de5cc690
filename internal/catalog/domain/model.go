package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Product is a catalog row as stored in the spreadsheet backend.
type Product struct {
	ID        int64           `json:"id"`
	Imagem    string          `json:"imagem"`
	Nome      string          `json:"nome"`
	Descricao string          `json:"descricao"`
	Preco     decimal.Decimal `json:"preco"`
	Tipo      string          `json:"tipo"`
	Estoque   int64           `json:"estoque"`
}

type productWire struct {
	ID        json.Number `json:"id"`
	Imagem    string      `json:"imagem"`
	Nome      string      `json:"nome"`
	Descricao string      `json:"descricao"`
	Preco     json.Number `json:"preco"`
	Tipo      string      `json:"tipo"`
	Estoque   json.Number `json:"estoque"`
}

// MarshalJSON writes id, preco and estoque as JSON numbers.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(productWire{
		ID:        json.Number(strconv.FormatInt(p.ID, 10)),
		Imagem:    p.Imagem,
		Nome:      p.Nome,
		Descricao: p.Descricao,
		Preco:     json.Number(p.Preco.String()),
		Tipo:      p.Tipo,
		Estoque:   json.Number(strconv.FormatInt(p.Estoque, 10)),
	})
}

// UnmarshalJSON accepts numbers and numeric strings. Spreadsheet cells come
// back as strings; empty or garbage cells decode to zero.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        any `json:"id"`
		Imagem    any `json:"imagem"`
		Nome      any `json:"nome"`
		Descricao any `json:"descricao"`
		Preco     any `json:"preco"`
		Tipo      any `json:"tipo"`
		Estoque   any `json:"estoque"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	*p = Product{
		ID:        cellInt(raw.ID),
		Imagem:    cellString(raw.Imagem),
		Nome:      cellString(raw.Nome),
		Descricao: cellString(raw.Descricao),
		Preco:     cellDecimal(raw.Preco),
		Tipo:      cellString(raw.Tipo),
		Estoque:   cellInt(raw.Estoque),
	}
	return nil
}

func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		return cast.ToString(val)
	}
}

func cellInt(v any) int64 {
	s := strings.TrimSpace(cellString(v))
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	// "3.0" style cells
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return d.IntPart()
}

func cellDecimal(v any) decimal.Decimal {
	s := strings.TrimSpace(cellString(v))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil {
		return decimal.Zero
	}
	return d
}
