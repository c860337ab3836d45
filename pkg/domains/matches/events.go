package matches

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/webstats/crm/pkg/utils"
)

// Keyword sets for classifying free-text match actions. Matching is
// substring-based over accent-stripped lowercase labels, so "Gol de falta"
// and "GOLES" both count as goals.
var (
	goalKeywords         = []string{"gol", "anotado", "marcado", "goal"}
	assistKeywords       = []string{"asistencia", "asist", "pase gol", "asiste"}
	yellowCardKeywords   = []string{"amarilla"}
	redCardKeywords      = []string{"roja"}
	substitutionKeywords = []string{"sustitucion", "cambio"}
	subEntryKeywords     = []string{"entrada", "entrante", "subida"}
	subExitKeywords      = []string{"salida", "saliente", "bajada"}

	successResults = []string{"ok", "ganado", "g", "gano", "goles", "anotado", "marcado"}
)

func containsKeyword(value string, keywords []string) bool {
	normalized := utils.NormalizeLabel(value)
	if normalized == "" {
		return false
	}
	for _, keyword := range keywords {
		if strings.Contains(normalized, keyword) {
			return true
		}
	}
	return false
}

func anyContains(keywords []string, values ...string) bool {
	for _, v := range values {
		if containsKeyword(v, keywords) {
			return true
		}
	}
	return false
}

func IsGoalEvent(eventType, result, observation string) bool {
	return anyContains(goalKeywords, eventType, result, observation)
}

func IsAssistEvent(eventType, result, observation string) bool {
	return anyContains(assistKeywords, eventType, result, observation)
}

func IsYellowCardEvent(eventType, result, zone string) bool {
	return anyContains(yellowCardKeywords, eventType, result, zone)
}

func IsRedCardEvent(eventType, result, zone string) bool {
	return anyContains(redCardKeywords, eventType, result, zone)
}

func IsSubstitutionEvent(eventType, zone string) bool {
	return anyContains(substitutionKeywords, eventType, zone)
}

func IsSubstitutionEntry(eventType, result, zone string) bool {
	return IsSubstitutionEvent(eventType, zone) && anyContains(subEntryKeywords, result, zone)
}

func IsSubstitutionExit(eventType, result, zone string) bool {
	return IsSubstitutionEvent(eventType, zone) && anyContains(subExitKeywords, result, zone)
}

func ResultIsSuccess(result string) bool {
	normalized := strings.ToLower(strings.TrimSpace(result))
	normalized = utils.NormalizeLabel(normalized)
	for _, s := range successResults {
		if normalized == s {
			return true
		}
	}
	return false
}

// ZoneToTercio buckets a field zone into the defensive, build-up or attacking
// third.
func ZoneToTercio(zone string) string {
	normalized := utils.NormalizeLabel(zone)
	switch {
	case normalized == "":
		return ""
	case strings.Contains(normalized, "defensa"):
		return "Defensa"
	case strings.Contains(normalized, "medio"), strings.Contains(normalized, "construccion"):
		return "Construcción"
	case strings.Contains(normalized, "ataque"):
		return "Ataque"
	}
	return ""
}

var roundNumberRe = regexp.MustCompile(`(\d+)`)

// ExtractRoundNumber pulls the jornada number out of labels like "Jornada 12".
func ExtractRoundNumber(value string) (int, bool) {
	m := roundNumberRe.FindString(value)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}
