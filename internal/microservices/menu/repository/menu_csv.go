package repository

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"restaurant-pos/internal/microservices/menu/domain"
)

// Column headers of the menu CSV export.
const (
	ColumnArticleNo = "Art.-Nr."
	ColumnName      = "Name"
	ColumnPrice     = "Preis (in €)"
)

type MenuCSV struct {
	path string
}

func NewMenuCSV(path string) *MenuCSV { return &MenuCSV{path: path} }

func (r *MenuCSV) LoadMenu(ctx context.Context) ([]domain.Entry, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open menu: %w", err)
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseCSV reads a comma separated menu with a header row. Extra columns are ignored.
func ParseCSV(in io.Reader) ([]domain.Entry, error) {
	raw, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read menu: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("menu csv is empty")
		}
		return nil, fmt.Errorf("read menu header: %w", err)
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, want := range []string{ColumnArticleNo, ColumnName, ColumnPrice} {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("menu csv: missing column %q", want)
		}
	}

	var out []domain.Entry
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read menu row: %w", err)
		}
		line, _ := cr.FieldPos(0)

		no, err := strconv.Atoi(strings.TrimSpace(rec[cols[ColumnArticleNo]]))
		if err != nil {
			return nil, fmt.Errorf("menu csv line %d: article number: %w", line, err)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(rec[cols[ColumnPrice]]))
		if err != nil {
			return nil, fmt.Errorf("menu csv line %d: price: %w", line, err)
		}
		out = append(out, domain.Entry{
			ArticleNo: no,
			Name:      strings.TrimSpace(rec[cols[ColumnName]]),
			Price:     price,
		})
	}
	return out, nil
}
