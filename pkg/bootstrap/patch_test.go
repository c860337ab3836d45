package bootstrap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const generatedSettings = `"""
Django settings for config project.
"""

from pathlib import Path

BASE_DIR = Path(__file__).resolve().parent.parent

DEBUG = True

ALLOWED_HOSTS = []

INSTALLED_APPS = [
    'django.contrib.admin',
    'django.contrib.auth',
    'django.contrib.contenttypes',
    'django.contrib.sessions',
    'django.contrib.messages',
    'django.contrib.staticfiles',
]

MIDDLEWARE = [
    'django.middleware.security.SecurityMiddleware',
    'django.contrib.sessions.middleware.SessionMiddleware',
    'django.middleware.common.CommonMiddleware',
]

DATABASES = {
    'default': {
        'ENGINE': 'django.db.backends.sqlite3',
        'NAME': BASE_DIR / 'db.sqlite3',
    }
}
`

func TestApplyPatchesAllRules(t *testing.T) {
	patched, skipped := ApplyPatches(generatedSettings)
	require.Empty(t, skipped)

	assert.Contains(t, patched, "'whitenoise.runserver_nostatic',\n    'django.contrib.staticfiles',")
	assert.Contains(t, patched, "'django.middleware.security.SecurityMiddleware',\n    'whitenoise.middleware.WhiteNoiseMiddleware',")
	assert.Contains(t, patched, "ALLOWED_HOSTS = ['*']")
	assert.NotContains(t, patched, "ALLOWED_HOSTS = []")
	assert.Contains(t, patched, "import dj_database_url")
	assert.Contains(t, patched, "DATABASES['default'] = dj_database_url.config(")
}

func TestApplyPatchesEachEditExactlyOnce(t *testing.T) {
	patched, _ := ApplyPatches(generatedSettings)

	assert.Equal(t, 1, strings.Count(patched, "whitenoise.runserver_nostatic"))
	assert.Equal(t, 1, strings.Count(patched, "WhiteNoiseMiddleware"))
	assert.Equal(t, 1, strings.Count(patched, "ALLOWED_HOSTS"))
	assert.Equal(t, 1, strings.Count(patched, "import dj_database_url"))
}

func TestApplyPatchesIdempotent(t *testing.T) {
	once, skipped := ApplyPatches(generatedSettings)
	require.Empty(t, skipped)

	twice, skipped := ApplyPatches(once)
	assert.Empty(t, skipped)
	assert.Equal(t, once, twice)
}

func TestApplyPatchesSkipsWhenStaticAppAlreadyPresent(t *testing.T) {
	pre := strings.Replace(generatedSettings,
		"'django.contrib.staticfiles',",
		"'whitenoise.runserver_nostatic',\n    'django.contrib.staticfiles',", 1)

	patched, _ := ApplyPatches(pre)
	assert.Equal(t, 1, strings.Count(patched, "whitenoise.runserver_nostatic"))
}

func TestApplyPatchesMissingMarkerLeavesFileAlone(t *testing.T) {
	// Upstream template changed: no empty allowlist literal.
	mangled := strings.Replace(generatedSettings, "ALLOWED_HOSTS = []", "ALLOWED_HOSTS = ['example.com']", 1)

	patched, skipped := ApplyPatches(mangled)
	assert.Contains(t, skipped, "allowed hosts")
	assert.Contains(t, patched, "ALLOWED_HOSTS = ['example.com']")
	assert.NotContains(t, patched, "ALLOWED_HOSTS = ['*']")
	// The other rules still apply.
	assert.Contains(t, patched, "WhiteNoiseMiddleware")
	assert.Contains(t, patched, "import dj_database_url")
}

func TestApplyPatchesReportsEveryMissingMarker(t *testing.T) {
	_, skipped := ApplyPatches("# not a settings file")
	assert.Len(t, skipped, 4)
}
