// Package scraper pulls the official classification from the federation
// site: either a linked CSV/Excel download or the HTML table itself.
package scraper

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/webstats/crm/pkg/constant"
	"github.com/webstats/crm/pkg/utils"
)

type Fetcher struct {
	Client    *http.Client
	UserAgent string
	// ParseExcel handles linked .xls/.xlsx downloads when set.
	ParseExcel func(content []byte) ([]Row, error)
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		Client:    &http.Client{Timeout: 15 * time.Second},
		UserAgent: constant.SCRAPE_USER_AGENT,
	}
}

func (f *Fetcher) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, target)
	}
	return io.ReadAll(resp.Body)
}

// Fetch downloads the standings behind pageURL. It prefers a linked data
// file and falls back to the page's own classification table. The returned
// note describes which path produced the rows.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) ([]Row, string, error) {
	page, err := f.get(ctx, pageURL)
	if err != nil {
		return nil, "", err
	}

	if href, _ := FindDownloadLink(bytes.NewReader(page)); href != "" {
		fileURL := resolveURL(pageURL, href)
		content, err := f.get(ctx, fileURL)
		if err == nil {
			if rows, note := f.parseDownload(fileURL, content); len(rows) > 0 {
				return rows, note, nil
			}
		}
	}

	rows, err := ParseStandingsTable(bytes.NewReader(page))
	if err != nil {
		return nil, "", err
	}
	if len(rows) == 0 {
		return nil, "", fmt.Errorf("no standings table found at %s", pageURL)
	}
	return rows, "classification parsed from HTML table", nil
}

func (f *Fetcher) parseDownload(fileURL string, content []byte) ([]Row, string) {
	path := strings.ToLower(fileURL)
	if u, err := url.Parse(fileURL); err == nil {
		path = strings.ToLower(u.Path)
	}
	switch {
	case strings.HasSuffix(path, ".csv"):
		if rows, err := ParseCSVRows(bytes.NewReader(content)); err == nil && len(rows) > 0 {
			return rows, fmt.Sprintf("CSV download from %s", fileURL)
		}
	case strings.HasSuffix(path, ".xls"), strings.HasSuffix(path, ".xlsx"):
		if f.ParseExcel != nil {
			if rows, err := f.ParseExcel(content); err == nil && len(rows) > 0 {
				return rows, fmt.Sprintf("Excel download from %s", fileURL)
			}
		}
	}
	return nil, ""
}

func resolveURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	h, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(h).String()
}

// ParseCSVRows reads a header-keyed CSV into rows with normalized keys.
func ParseCSVRows(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = utils.NormalizeKey(h)
	}

	var rows []Row
	for _, record := range records[1:] {
		row := Row{}
		for i, cell := range record {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			row[headers[i]] = strings.TrimSpace(cell)
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
