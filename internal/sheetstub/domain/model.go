package domain

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Columns is the sheet header, in display order.
var Columns = []string{"id", "imagem", "nome", "descricao", "preco", "tipo", "estoque"}

// Row is one spreadsheet line. Every cell is text, exactly as the sheet
// stores it.
type Row struct {
	RowID     int64     `gorm:"column:row_id;primaryKey;autoIncrement"`
	ID        string    `gorm:"column:id;type:text;not null;index:idx_catalog_rows_id"`
	Imagem    string    `gorm:"column:imagem;type:text;not null"`
	Nome      string    `gorm:"column:nome;type:text;not null"`
	Descricao string    `gorm:"column:descricao;type:text;not null"`
	Preco     string    `gorm:"column:preco;type:text;not null"`
	Tipo      string    `gorm:"column:tipo;type:text;not null"`
	Estoque   string    `gorm:"column:estoque;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (Row) TableName() string { return "catalog_rows" }

// Cells renders the row the way the sheet API returns it.
func (r Row) Cells() map[string]string {
	return map[string]string{
		"id":        r.ID,
		"imagem":    r.Imagem,
		"nome":      r.Nome,
		"descricao": r.Descricao,
		"preco":     r.Preco,
		"tipo":      r.Tipo,
		"estoque":   r.Estoque,
	}
}

// RowFromRecord stringifies a submitted record. Unknown keys are dropped.
func RowFromRecord(record map[string]any) Row {
	cells := CellsFromRecord(record)
	return Row{
		ID:        cells["id"],
		Imagem:    cells["imagem"],
		Nome:      cells["nome"],
		Descricao: cells["descricao"],
		Preco:     cells["preco"],
		Tipo:      cells["tipo"],
		Estoque:   cells["estoque"],
	}
}

// CellsFromRecord keeps only known columns and converts values to text.
func CellsFromRecord(record map[string]any) map[string]string {
	cells := make(map[string]string, len(record))
	for key, value := range record {
		column := strings.ToLower(strings.TrimSpace(key))
		if !isColumn(column) {
			continue
		}
		cells[column] = cast.ToString(value)
	}
	return cells
}

func isColumn(name string) bool {
	for _, c := range Columns {
		if c == name {
			return true
		}
	}
	return false
}
