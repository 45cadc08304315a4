package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Default(t *testing.T) {
	c, err := Load("", "")
	require.NoError(t, err)

	assert.Equal(t, "en", c.Locale())
	assert.Equal(t, "Download", c.T("DOWNLOAD"))
	assert.Equal(t, "NO_SUCH_KEY", c.T("NO_SUCH_KEY"))
}

func TestCatalog_LocaleWithFallback(t *testing.T) {
	c, err := Load("fr", "")
	require.NoError(t, err)
	assert.Equal(t, "Télécharger", c.T("DOWNLOAD"))

	c, err = Load("de", "")
	require.NoError(t, err)
	assert.Equal(t, "Download", c.T("DOWNLOAD"))
}

func TestCatalog_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msgs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("DOWNLOAD: Get it\n"), 0o600))

	c, err := Load("en", path)
	require.NoError(t, err)
	assert.Equal(t, "Get it", c.T("DOWNLOAD"))
	assert.Equal(t, "Loading...", c.T("LOADING"))

	require.NoError(t, os.WriteFile(path, []byte("DOWNLOAD: [unterminated\n"), 0o600))
	_, err = Load("en", path)
	assert.Error(t, err)

	_, err = Load("en", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
