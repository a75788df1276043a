package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"foodcourt/internal/domain"
)

type MenuWriter interface {
	Upsert(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
}

// CSVImporter reads menu exports (item, price_cents, image columns) and
// inserts/updates catalog entries.
type CSVImporter struct {
	reader   *csv.Reader
	menuRepo MenuWriter
}

func NewCSVImporter(r io.Reader, repo MenuWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:   csvr,
		menuRepo: repo,
	}
}

// Run parses CSV rows and upserts menu items. Rows with an empty item
// name are skipped; a malformed price aborts the import.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["item"]; !ok {
		return 0, errors.New("missing item column")
	}
	if _, ok := index["price_cents"]; !ok {
		return 0, errors.New("missing price_cents column")
	}

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		item := strings.TrimSpace(field(record, index, "item"))
		if item == "" {
			continue
		}
		priceRaw := strings.TrimSpace(field(record, index, "price_cents"))
		price, err := strconv.ParseInt(priceRaw, 10, 64)
		if err != nil || price < 0 {
			return imported, fmt.Errorf("row %d: bad price %q", line, priceRaw)
		}

		if _, err := i.menuRepo.Upsert(ctx, domain.MenuItem{
			Item:       item,
			PriceCents: price,
			Image:      strings.TrimSpace(field(record, index, "image")),
		}); err != nil {
			return imported, fmt.Errorf("upsert %s: %w", item, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
