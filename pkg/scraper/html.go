package scraper

import (
	"io"
	"strings"

	"github.com/webstats/crm/pkg/utils"
	"golang.org/x/net/html"
)

// Row is one standings line keyed by normalized header (pos, equipo, pts...).
type Row map[string]string

// Get returns the first non-empty value among the given header synonyms.
func (r Row) Get(keys ...string) string {
	for _, key := range keys {
		if v := r[utils.NormalizeKey(key)]; v != "" {
			return v
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func collect(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func cellTexts(row *html.Node) []string {
	var cells []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "td" || n.Data == "th") {
			cells = append(cells, nodeText(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return cells
}

// ParseStandingsTable finds the first table whose header row names a team
// column (equipo/team) or looks like a classification (pts and pj) and
// returns its data rows keyed by normalized header.
func ParseStandingsTable(r io.Reader) ([]Row, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	for _, table := range collect(doc, "table") {
		trs := collect(table, "tr")
		if len(trs) < 2 {
			continue
		}

		headerTexts := cellTexts(trs[0])
		joined := strings.ToLower(strings.Join(headerTexts, " "))
		if !strings.Contains(joined, "equipo") && !strings.Contains(joined, "team") &&
			!(strings.Contains(joined, "pts") && strings.Contains(joined, "pj")) {
			continue
		}

		headers := make([]string, len(headerTexts))
		for i, h := range headerTexts {
			headers[i] = utils.NormalizeKey(h)
		}

		var rows []Row
		for _, tr := range trs[1:] {
			cells := cellTexts(tr)
			if len(cells) < 2 {
				continue
			}
			row := Row{}
			for i, cell := range cells {
				if i >= len(headers) || headers[i] == "" {
					continue
				}
				row[headers[i]] = cell
			}
			if len(row) > 0 {
				rows = append(rows, row)
			}
		}
		if len(rows) > 0 {
			return rows, nil
		}
	}
	return nil, nil
}

// FindDownloadLink returns the href of the first anchor that advertises a
// data download ("descarg..." text or a .csv/.xls/.xlsx href).
func FindDownloadLink(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}
	for _, a := range collect(doc, "a") {
		href := attr(a, "href")
		if href == "" {
			continue
		}
		text := strings.ToLower(nodeText(a))
		lower := strings.ToLower(href)
		if strings.Contains(text, "descarg") ||
			strings.HasSuffix(lower, ".csv") || strings.HasSuffix(lower, ".xls") || strings.HasSuffix(lower, ".xlsx") {
			return href, nil
		}
	}
	return "", nil
}
