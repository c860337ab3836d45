package constant

// Defaults for the club's league structure, used when an import or scrape
// does not name them explicitly.
const (
	DEFAULT_COMPETITION = "División de Honor Andaluza"
	DEFAULT_SEASON      = "2025/2026"
	DEFAULT_GROUP       = "Grupo 2"
	DEFAULT_REGION      = "Andalucía"
	DEFAULT_LEVEL       = 5

	DEFAULT_SOURCE_NAME = "La Preferente"
	DEFAULT_SOURCE_URL  = "https://www.lapreferente.com"

	PRIMARY_TEAM_KEYWORD = "benagalbon"

	SCRAPE_USER_AGENT = "webstats-crm/1.0"
)
