package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/webstats/crm/pkg/utils"
	"golang.org/x/net/html"
)

// RosterEntry is one player line from a rival squad page on the federation
// site: identity plus the season counters shown in the plantilla table.
type RosterEntry struct {
	Name        string `json:"name"`
	Position    string `json:"position"`
	Age         int    `json:"age"`
	Callups     int    `json:"callups"`
	Appearances int    `json:"appearances"`
	Starts      int    `json:"starts"`
	Minutes     int    `json:"minutes"`
	Goals       int    `json:"goals"`
	YellowCards int    `json:"yellow_cards"`
	RedCards    int    `json:"red_cards"`
}

func rowCellNodes(row *html.Node) []*html.Node {
	var cells []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "td" || n.Data == "th") {
			cells = append(cells, n)
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

// nameCellText prefers the last span inside the cell, where the site puts
// the player name next to status badges.
func nameCellText(cell *html.Node) string {
	spans := collect(cell, "span")
	for i := len(spans) - 1; i >= 0; i-- {
		if text := nodeText(spans[i]); text != "" {
			return text
		}
	}
	return nodeText(cell)
}

func statCell(cells []*html.Node, index map[string]int, key string) int {
	idx, ok := index[key]
	if !ok || idx >= len(cells) {
		return 0
	}
	text := strings.ReplaceAll(strings.ReplaceAll(nodeText(cells[idx]), ".", ""), ",", "")
	if text == "" || text == "-" {
		return 0
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}
	return int(n)
}

func findRosterTable(doc *html.Node) *html.Node {
	for _, table := range collect(doc, "table") {
		if attr(table, "id") == "tablePlantilla" {
			return table
		}
	}
	for _, table := range collect(doc, "table") {
		trs := collect(table, "tr")
		if len(trs) == 0 {
			continue
		}
		header := strings.ToLower(strings.Join(cellTexts(trs[0]), " "))
		if strings.Contains(header, "jugador") && strings.Contains(header, "min") {
			return table
		}
	}
	return nil
}

// ParseRoster extracts a rival squad from its plantilla page. It reads the
// tablePlantilla table (or any table headed by jugador/min) and falls back
// to line-oriented parsing when the page carries no table at all.
func ParseRoster(r io.Reader) ([]RosterEntry, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(strings.NewReader(string(raw)))
	if err != nil {
		return nil, err
	}

	table := findRosterTable(doc)
	if table == nil {
		return ParseRosterText(string(raw)), nil
	}

	trs := collect(table, "tr")
	if len(trs) < 2 {
		return nil, nil
	}

	index := map[string]int{}
	for i, h := range cellTexts(trs[0]) {
		if key := utils.NormalizeKey(h); key != "" {
			index[key] = i
		}
	}

	var roster []RosterEntry
	for _, tr := range trs[1:] {
		cells := rowCellNodes(tr)
		if len(cells) < 6 {
			continue
		}
		nameIdx, posIdx := 0, 1
		if idx, ok := index["jugador"]; ok && idx < len(cells) {
			nameIdx = idx
		}
		if idx, ok := index["demarcacion"]; ok && idx < len(cells) {
			posIdx = idx
		}
		name := nameCellText(cells[nameIdx])
		if name == "" {
			continue
		}
		roster = append(roster, RosterEntry{
			Name:        name,
			Position:    nodeText(cells[posIdx]),
			Age:         statCell(cells, index, "edad"),
			Callups:     statCell(cells, index, "pc"),
			Appearances: statCell(cells, index, "pj"),
			Starts:      statCell(cells, index, "pt"),
			Minutes:     statCell(cells, index, "min"),
			Goals:       statCell(cells, index, "goles"),
			YellowCards: statCell(cells, index, "ta"),
			RedCards:    statCell(cells, index, "tr"),
		})
	}
	return roster, nil
}

var rosterSkipMarkers = []string{
	"Renovado",
	"Nuevo Fichaje",
	"Jugador",
	"Cuerpo Técnico",
	"COMPETICIONES",
	"Ex-Jugadores",
	"Total de Jugadores",
}

var rosterPositionWords = []string{
	"Portero",
	"Lateral",
	"Central",
	"Medio",
	"Interior",
	"Media",
	"Extremo",
	"Delantero",
	"Pivote",
}

// ParseRosterText handles plain-text squad dumps: a name line followed by a
// line holding the position and the stat counters.
func ParseRosterText(raw string) []RosterEntry {
	var roster []RosterEntry
	lastName := ""
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if containsAny(line, rosterSkipMarkers) {
			continue
		}
		if isAllDigits(line) {
			continue
		}
		tokens := strings.Fields(line)
		if !containsAny(line, rosterPositionWords) || !hasNumericToken(tokens) {
			lastName = line
			continue
		}

		var positionParts []string
		var numbers []int
		for _, token := range tokens {
			cleaned := strings.Trim(token, "()")
			if cleaned == "-" {
				continue
			}
			if n, err := strconv.Atoi(cleaned); err == nil {
				numbers = append(numbers, n)
			} else {
				positionParts = append(positionParts, token)
			}
		}
		for len(numbers) < 8 {
			numbers = append(numbers, 0)
		}
		if lastName == "" {
			continue
		}
		roster = append(roster, RosterEntry{
			Name:        lastName,
			Position:    strings.Join(positionParts, " "),
			Age:         numbers[0],
			Callups:     numbers[1],
			Appearances: numbers[2],
			Starts:      numbers[3],
			Minutes:     numbers[4],
			Goals:       numbers[5],
			YellowCards: numbers[6],
			RedCards:    numbers[7],
		})
	}
	return roster
}

func containsAny(line string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

func isAllDigits(line string) bool {
	if line == "" {
		return false
	}
	for _, r := range line {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func hasNumericToken(tokens []string) bool {
	for _, token := range tokens {
		if isAllDigits(strings.Trim(token, "()")) {
			return true
		}
	}
	return false
}

// FetchRoster downloads and parses a rival team's squad page.
func (f *Fetcher) FetchRoster(ctx context.Context, teamURL string) ([]RosterEntry, error) {
	if teamURL == "" {
		return nil, fmt.Errorf("team url is required")
	}
	page, err := f.get(ctx, teamURL)
	if err != nil {
		return nil, err
	}
	return ParseRoster(bytes.NewReader(page))
}
