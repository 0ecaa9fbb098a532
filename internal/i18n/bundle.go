// Package i18n provides the Arabic/English message bundles for wizard
// step titles and financial labels. Bundles are embedded; an override
// directory can shadow them and, in dev mode, is watched for live
// reload.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/injaz-app/injaz/pkg/core"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// DefaultLocale is used when language negotiation finds no match.
const DefaultLocale = "ar"

var supported = []language.Tag{
	language.Arabic, // first entry is the fallback
	language.English,
}

// Bundle holds the loaded message tables keyed by locale ("ar", "en").
type Bundle struct {
	mu          sync.RWMutex
	messages    map[string]map[string]string
	overrideDir string
	matcher     language.Matcher
}

// Load parses the embedded locale files.
func Load() (*Bundle, error) {
	b := &Bundle{
		messages: make(map[string]map[string]string),
		matcher:  language.NewMatcher(supported),
	}
	if err := b.loadFS(localeFS, "locales"); err != nil {
		return nil, err
	}
	return b, nil
}

// LoadOverrides layers locale files from dir on top of the embedded
// bundles and remembers the directory for Reload.
func (b *Bundle) LoadOverrides(dir string) error {
	b.mu.Lock()
	b.overrideDir = dir
	b.mu.Unlock()
	return b.Reload()
}

// Reload re-reads embedded bundles plus any override directory.
func (b *Bundle) Reload() error {
	fresh := make(map[string]map[string]string)
	if err := loadInto(fresh, localeFS, "locales"); err != nil {
		return err
	}

	b.mu.RLock()
	dir := b.overrideDir
	b.mu.RUnlock()

	if dir != "" {
		if err := loadInto(fresh, os.DirFS(dir), "."); err != nil {
			return err
		}
	}

	b.mu.Lock()
	b.messages = fresh
	b.mu.Unlock()
	return nil
}

func (b *Bundle) loadFS(fsys fs.FS, root string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return loadInto(b.messages, fsys, root)
}

func loadInto(dst map[string]map[string]string, fsys fs.FS, root string) error {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return fmt.Errorf("failed to read locale dir: %w", err)
	}
	for _, e := range entries {
		name := e.Name()
		ext := filepath.Ext(name)
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		locale := strings.TrimSuffix(name, ext)

		raw, err := fs.ReadFile(fsys, filepath.Join(root, name))
		if err != nil {
			return fmt.Errorf("failed to read locale %s: %w", name, err)
		}
		var tree map[string]any
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return fmt.Errorf("failed to parse locale %s: %w", name, err)
		}

		if dst[locale] == nil {
			dst[locale] = make(map[string]string)
		}
		flatten("", tree, dst[locale])
	}
	return nil
}

// flatten turns a nested yaml tree into dotted message keys.
func flatten(prefix string, tree map[string]any, out map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch x := v.(type) {
		case map[string]any:
			flatten(key, x, out)
		case string:
			out[key] = x
		default:
			out[key] = fmt.Sprint(x)
		}
	}
}

// Match negotiates a locale from an Accept-Language header value.
func (b *Bundle) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No {
		return DefaultLocale
	}
	base, _ := supported[idx].Base()
	return base.String()
}

// T resolves a dotted message key in the given locale, falling back to
// the default locale, falling back to the key itself.
func (b *Bundle) T(locale, key string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if msgs, ok := b.messages[locale]; ok {
		if v, ok := msgs[key]; ok {
			return v
		}
	}
	if msgs, ok := b.messages[DefaultLocale]; ok {
		if v, ok := msgs[key]; ok {
			return v
		}
	}
	return key
}

// StepTitle returns the localized title of a wizard step.
func (b *Bundle) StepTitle(locale string, id core.StepID) string {
	return b.T(locale, "steps."+string(id))
}
