package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rosterPage = `<html><body>
<table id="tablePlantilla">
  <tr><th>Jugador</th><th>Demarcación</th><th>Edad</th><th>PC</th><th>PJ</th><th>PT</th><th>Min</th><th>Goles</th><th>TA</th><th>TR</th></tr>
  <tr><td><span class="badge">Renovado</span><span>Raúl Torres</span></td><td>Portero</td><td>28</td><td>12</td><td>12</td><td>12</td><td>1080</td><td>0</td><td>1</td><td>0</td></tr>
  <tr><td><span>Dani Vega</span></td><td>Delantero</td><td>24</td><td>12</td><td>11</td><td>10</td><td>905</td><td>8</td><td>3</td><td>1</td></tr>
  <tr><td><span>Luis Mata</span></td><td>Medio Centro</td><td>31</td><td>10</td><td>9</td><td>6</td><td>-</td><td>1</td><td>4</td><td>0</td></tr>
</table>
</body></html>`

func TestParseRoster(t *testing.T) {
	roster, err := ParseRoster(strings.NewReader(rosterPage))
	require.NoError(t, err)
	require.Len(t, roster, 3)

	assert.Equal(t, "Raúl Torres", roster[0].Name)
	assert.Equal(t, "Portero", roster[0].Position)
	assert.Equal(t, 28, roster[0].Age)
	assert.Equal(t, 1080, roster[0].Minutes)

	assert.Equal(t, "Dani Vega", roster[1].Name)
	assert.Equal(t, 8, roster[1].Goals)
	assert.Equal(t, 10, roster[1].Starts)
	assert.Equal(t, 1, roster[1].RedCards)

	// "-" cells read as zero
	assert.Equal(t, 0, roster[2].Minutes)
	assert.Equal(t, 4, roster[2].YellowCards)
}

func TestParseRosterFindsTableByHeader(t *testing.T) {
	page := `<table>
	  <tr><th>Jugador</th><th>Demarcación</th><th>Edad</th><th>PC</th><th>PJ</th><th>PT</th><th>Min</th><th>Goles</th><th>TA</th><th>TR</th></tr>
	  <tr><td>Pepe Gil</td><td>Lateral</td><td>22</td><td>8</td><td>8</td><td>5</td><td>520</td><td>0</td><td>2</td><td>0</td></tr>
	</table>`
	roster, err := ParseRoster(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "Pepe Gil", roster[0].Name)
	assert.Equal(t, 520, roster[0].Minutes)
}

func TestParseRosterTextFallback(t *testing.T) {
	raw := strings.Join([]string{
		"Plantilla",
		"Raúl Torres",
		"Portero 28 12 12 12 1080 0 1 0",
		"Dani Vega",
		"Renovado",
		"Delantero 24 12 11 10 905 8 3 1",
		"Total de Jugadores: 22",
	}, "\n")

	roster := ParseRosterText(raw)
	require.Len(t, roster, 2)
	assert.Equal(t, "Raúl Torres", roster[0].Name)
	assert.Equal(t, "Portero", roster[0].Position)
	assert.Equal(t, 1080, roster[0].Minutes)
	assert.Equal(t, "Dani Vega", roster[1].Name)
	assert.Equal(t, 8, roster[1].Goals)
}

func TestFetchRoster(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "webstats-crm/1.0", r.Header.Get("User-Agent"))
		w.Write([]byte(rosterPage))
	}))
	defer srv.Close()

	roster, err := NewFetcher().FetchRoster(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, roster, 3)
}

func TestFetchRosterRequiresURL(t *testing.T) {
	_, err := NewFetcher().FetchRoster(context.Background(), "")
	assert.Error(t, err)
}
