package bootstrap

import (
	"strings"
)

const (
	staticAppMarker     = "'django.contrib.staticfiles',"
	staticAppInsert     = "'whitenoise.runserver_nostatic',\n    'django.contrib.staticfiles',"
	whitenoiseApp       = "whitenoise.runserver_nostatic"
	securityMiddleware  = "'django.middleware.security.SecurityMiddleware',"
	whitenoiseClass     = "WhiteNoiseMiddleware"
	middlewareInsert    = "'django.middleware.security.SecurityMiddleware',\n    'whitenoise.middleware.WhiteNoiseMiddleware',"
	emptyAllowedHosts   = "ALLOWED_HOSTS = []"
	openAllowedHosts    = "ALLOWED_HOSTS = ['*']"
	databaseMarker      = "DATABASES = {"
	databaseURLHook     = "dj_database_url"
	databaseURLOverride = `

# Use DATABASE_URL when provided; fall back to the local sqlite file.
import dj_database_url
DATABASES['default'] = dj_database_url.config(
    default='sqlite:///' + str(BASE_DIR / 'db.sqlite3'),
    conn_max_age=600,
)
`
)

// A patch applies one substring-gated edit. The edit runs only when applied
// is absent (the rule has not run before) and marker is present (the
// upstream template still matches).
type patch struct {
	name    string
	applied string
	marker  string
	edit    func(string) string
}

func replaceOnce(old, new string) func(string) string {
	return func(s string) string { return strings.Replace(s, old, new, 1) }
}

var patches = []patch{
	{
		name:    "whitenoise static app",
		applied: whitenoiseApp,
		marker:  staticAppMarker,
		edit:    replaceOnce(staticAppMarker, staticAppInsert),
	},
	{
		name:    "whitenoise middleware",
		applied: whitenoiseClass,
		marker:  securityMiddleware,
		edit:    replaceOnce(securityMiddleware, middlewareInsert),
	},
	{
		name:    "allowed hosts",
		applied: openAllowedHosts,
		marker:  emptyAllowedHosts,
		edit:    replaceOnce(emptyAllowedHosts, openAllowedHosts),
	},
	{
		name:    "database url",
		applied: databaseURLHook,
		marker:  databaseMarker,
		edit:    func(s string) string { return s + databaseURLOverride },
	},
}

// ApplyPatches runs every settings edit against content and returns the
// result plus the names of rules whose marker text was missing. Rules whose
// edit is already present are silently left alone.
func ApplyPatches(content string) (string, []string) {
	var skipped []string
	for _, p := range patches {
		if strings.Contains(content, p.applied) {
			continue
		}
		if !strings.Contains(content, p.marker) {
			skipped = append(skipped, p.name)
			continue
		}
		content = p.edit(content)
	}
	return content, skipped
}
