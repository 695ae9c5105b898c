package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

const (
	LangRU = "ru"
	LangEN = "en"
)

//go:embed locales/*.json
var embeddedLocales embed.FS

type Manager struct {
	defaultLanguage string
	locales         map[string]map[string]string
	supported       []string
}

// NewDefaultManager loads the locales compiled into the binary.
func NewDefaultManager(defaultLanguage string) (*Manager, error) {
	locales, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, fmt.Errorf("open embedded locales: %w", err)
	}
	return NewManager(defaultLanguage, locales)
}

// NewManager loads every <language>.json file at the root of source. Both
// en and ru are required.
func NewManager(defaultLanguage string, source fs.FS) (*Manager, error) {
	manager := &Manager{locales: map[string]map[string]string{}}

	entries, err := fs.ReadDir(source, ".")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}

		language := strings.ToLower(strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
		content, err := fs.ReadFile(source, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", language, err)
		}
		messages := map[string]string{}
		if err := json.Unmarshal(content, &messages); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", language, err)
		}
		if len(messages) == 0 {
			return nil, fmt.Errorf("locale %s is empty", language)
		}

		manager.locales[language] = messages
		manager.supported = append(manager.supported, language)
	}

	for _, required := range []string{LangEN, LangRU} {
		if _, ok := manager.locales[required]; !ok {
			return nil, fmt.Errorf("required locale %q missing", required)
		}
	}

	sort.Strings(manager.supported)
	manager.defaultLanguage = LangEN
	manager.defaultLanguage = manager.NormalizeLanguage(defaultLanguage)
	return manager, nil
}

func (manager *Manager) DefaultLanguage() string {
	return manager.defaultLanguage
}

func (manager *Manager) SupportedLanguages() []string {
	result := make([]string, len(manager.supported))
	copy(result, manager.supported)
	return result
}

// NormalizeLanguage reduces tags like "ru-RU" to a supported base language,
// falling back to the default.
func (manager *Manager) NormalizeLanguage(raw string) string {
	if language := baseLanguage(raw); manager.isSupported(language) {
		return language
	}
	return manager.defaultLanguage
}

// DetectFromAcceptLanguage picks the first supported language of an
// Accept-Language header, ignoring quality weights.
func (manager *Manager) DetectFromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		if language := baseLanguage(strings.Split(part, ";")[0]); manager.isSupported(language) {
			return language
		}
	}
	return manager.defaultLanguage
}

func (manager *Manager) Translate(language string, key string) string {
	if value := strings.TrimSpace(manager.locales[manager.NormalizeLanguage(language)][key]); value != "" {
		return value
	}
	if value := strings.TrimSpace(manager.locales[manager.defaultLanguage][key]); value != "" {
		return value
	}
	return key
}

func (manager *Manager) Translatef(language string, key string, args ...any) string {
	return fmt.Sprintf(manager.Translate(language, key), args...)
}

// Label translates an enum value under a key prefix, e.g. Label(lang,
// "phase", "luteal") looks up "phase.luteal".
func (manager *Manager) Label(language string, prefix string, value string) string {
	return manager.Translate(language, prefix+"."+value)
}

func (manager *Manager) isSupported(language string) bool {
	if language == "" {
		return false
	}
	_, ok := manager.locales[language]
	return ok
}

func baseLanguage(raw string) string {
	language := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "_", "-")
	if separator := strings.Index(language, "-"); separator >= 0 {
		language = language[:separator]
	}
	return language
}
