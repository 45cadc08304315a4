// Package i18n resolves user-facing banner text from YAML message catalogs.
package i18n

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var bundled embed.FS

// DefaultLocale is used when the requested locale has no catalog.
const DefaultLocale = "en"

// Catalog maps message keys to text for one locale, falling back to the
// default locale and finally to the key itself.
type Catalog struct {
	locale   string
	messages map[string]string
	fallback map[string]string
}

// Load builds a catalog for locale. overridePath, when set, points at a YAML
// file whose entries replace the bundled ones.
func Load(locale, overridePath string) (*Catalog, error) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		locale = DefaultLocale
	}

	fallback, err := readBundled(DefaultLocale)
	if err != nil {
		return nil, err
	}
	messages, err := readBundled(locale)
	if err != nil {
		messages = map[string]string{}
	}

	if overridePath != "" {
		data, err := os.ReadFile(overridePath)
		if err != nil {
			return nil, fmt.Errorf("read locale file: %w", err)
		}
		override, err := parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse locale file %s: %w", overridePath, err)
		}
		for k, v := range override {
			messages[k] = v
		}
	}

	return &Catalog{locale: locale, messages: messages, fallback: fallback}, nil
}

// Locale returns the catalog's locale tag.
func (c *Catalog) Locale() string {
	return c.locale
}

// T returns the text for key.
func (c *Catalog) T(key string) string {
	if v, ok := c.messages[key]; ok && v != "" {
		return v
	}
	if v, ok := c.fallback[key]; ok && v != "" {
		return v
	}
	return key
}

func readBundled(locale string) (map[string]string, error) {
	data, err := bundled.ReadFile("locales/" + locale + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("no bundled catalog for %q: %w", locale, err)
	}
	return parse(data)
}

func parse(data []byte) (map[string]string, error) {
	out := map[string]string{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
