package exchangerate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/net/html"

	"github.com/VeliorGroup/fluxo/internal/encoding"
)

// DefaultBOAURL is the Bank of Albania official exchange rate page.
const DefaultBOAURL = "https://www.bankofalbania.org/Tregjet/Kursi_zyrtar_i_kembimit/"

var ErrRateNotFound = errors.New("EUR row not found in rate table")

// BOAFetcher scrapes the EUR row from the Bank of Albania rate table.
type BOAFetcher struct {
	client *http.Client
	url    string
}

func NewBOAFetcher(url string, timeout time.Duration) *BOAFetcher {
	if url == "" {
		url = DefaultBOAURL
	}

	return &BOAFetcher{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

func (f *BOAFetcher) Fetch(ctx context.Context) (Rate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return Rate{}, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return Rate{}, fmt.Errorf("fetching rate page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Rate{}, fmt.Errorf("fetching rate page: unexpected status %d", resp.StatusCode)
	}

	body, err := encoding.NewReaderWithHint(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return Rate{}, fmt.Errorf("decoding rate page: %w", err)
	}

	return ParseRateTable(body)
}

// ParseRateTable finds the first table row holding the consecutive cells
// "Euro", "EUR", rate and change. Cell text is compared case-insensitively
// after trimming.
func ParseRateTable(r io.Reader) (Rate, error) {
	z := html.NewTokenizer(r)

	var (
		row    []string
		cell   strings.Builder
		inCell bool
	)

	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return Rate{}, ErrRateNotFound
			}

			return Rate{}, fmt.Errorf("parsing rate page: %w", z.Err())

		case html.StartTagToken:
			name, _ := z.TagName()

			switch string(name) {
			case "tr":
				row = row[:0]
			case "td":
				inCell = true

				cell.Reset()
			}

		case html.TextToken:
			if inCell {
				cell.Write(z.Text())
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) != "td" || !inCell {
				continue
			}

			inCell = false
			row = append(row, strings.TrimSpace(cell.String()))

			if rate, ok := matchEuroRow(row); ok {
				return rate, nil
			}
		}
	}
}

// matchEuroRow checks whether the last four cells of row form the EUR entry.
func matchEuroRow(row []string) (Rate, bool) {
	if len(row) < 4 {
		return Rate{}, false
	}

	c := row[len(row)-4:]
	if !strings.EqualFold(c[0], "Euro") || !strings.EqualFold(c[1], "EUR") {
		return Rate{}, false
	}

	value, err := decimal.NewFromString(c[2])
	if err != nil || !value.IsPositive() || strings.ContainsAny(c[2], "+-") {
		return Rate{}, false
	}

	change, err := decimal.NewFromString(strings.TrimPrefix(c[3], "+"))
	if err != nil {
		return Rate{}, false
	}

	return Rate{Value: value, Change: change, Source: SourceBOA}, true
}
