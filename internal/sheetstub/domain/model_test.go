package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellsFromRecord(t *testing.T) {
	cells := CellsFromRecord(map[string]any{
		"id":      float64(1700000000000),
		"Preco":   19.9,
		"estoque": 3,
		"ativo":   true,
		"nome":    nil,
	})

	assert.Equal(t, map[string]string{
		"id":      "1700000000000",
		"preco":   "19.9",
		"estoque": "3",
		"nome":    "",
	}, cells)
}

func TestRowCells(t *testing.T) {
	row := RowFromRecord(map[string]any{"id": "7", "nome": "Lamp", "tipo": "Luz"})
	cells := row.Cells()

	assert.Len(t, cells, len(Columns))
	assert.Equal(t, "7", cells["id"])
	assert.Equal(t, "Lamp", cells["nome"])
	assert.Equal(t, "", cells["preco"])
}
