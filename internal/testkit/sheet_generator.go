package testkit

import (
	"fmt"
	"math/rand"
	"time"

	"sheetboard/domain/sheet"
)

// SheetGeneratorConfig configures the synthetic client sheet
type SheetGeneratorConfig struct {
	Rows      int
	Statuses  []string // cycled in order, so the split is deterministic
	StartDate time.Time
	Seed      int64
}

// DefaultSheetConfig returns a small sheet split 6/4 between two statuses
func DefaultSheetConfig() SheetGeneratorConfig {
	return SheetGeneratorConfig{
		Rows:      10,
		Statuses:  []string{"ativo", "ativo", "ativo", "pausado", "pausado"},
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Seed:      42,
	}
}

// SheetHeaders are the headers of every generated sheet
var SheetHeaders = []string{"Cliente", "Status", "Valor", "Prazo"}

// SheetGenerator produces client sheets with pt-BR formatted amounts
type SheetGenerator struct {
	config SheetGeneratorConfig
	rng    *rand.Rand
}

// NewSheetGenerator creates a generator seeded from the config
func NewSheetGenerator(config SheetGeneratorConfig) *SheetGenerator {
	return &SheetGenerator{config: config, rng: rand.New(rand.NewSource(config.Seed))}
}

// Raw returns the sheet as read from a file, header row first
func (g *SheetGenerator) Raw(fileName string) *sheet.RawSheet {
	rows := make([]sheet.Row, 0, g.config.Rows+1)
	header := make(sheet.Row, len(SheetHeaders))
	for i, h := range SheetHeaders {
		header[i] = sheet.Text(h)
	}
	rows = append(rows, header)
	rows = append(rows, g.Table().Rows...)
	return &sheet.RawSheet{FileInfo: sheet.FileInfo{Name: fileName, SheetName: "Sheet1"}, Rows: rows}
}

// Table returns the normalized table directly
func (g *SheetGenerator) Table() *sheet.Table {
	rows := make([]sheet.Row, 0, g.config.Rows)
	for i := 0; i < g.config.Rows; i++ {
		status := ""
		if len(g.config.Statuses) > 0 {
			status = g.config.Statuses[i%len(g.config.Statuses)]
		}
		cents := g.rng.Intn(500000) + 100
		rows = append(rows, sheet.Row{
			sheet.Text(fmt.Sprintf("Cliente %02d", i+1)),
			sheet.Text(status),
			sheet.Text(fmt.Sprintf("R$ %d,%02d", cents/100, cents%100)),
			sheet.Text(g.config.StartDate.AddDate(0, 0, i).Format("02/01/2006")),
		})
	}
	return &sheet.Table{Headers: append([]string(nil), SheetHeaders...), Rows: rows}
}
