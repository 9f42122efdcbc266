package i18n

import (
	"embed"
	"encoding/json"
	"os"
	"strings"
	"sync"

	gi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	mu        sync.RWMutex
	localizer *gi18n.Localizer
)

// Init builds a localizer for locale (falling back to the environment and then
// English) and makes it the one used by T.
func Init(locale string) (*gi18n.Localizer, error) {
	bundle := gi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+entry.Name()); err != nil {
			return nil, err
		}
	}

	if locale == "" {
		locale = detectLocale()
	}
	loc := gi18n.NewLocalizer(bundle, normalize(locale), language.English.String())

	mu.Lock()
	localizer = loc
	mu.Unlock()
	return loc, nil
}

// T returns the translation for messageID, or the ID itself when no
// translation exists.
func T(messageID string) string {
	mu.RLock()
	loc := localizer
	mu.RUnlock()
	if loc == nil {
		var err error
		if loc, err = Init(""); err != nil {
			return messageID
		}
	}
	msg, err := loc.Localize(&gi18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}

func detectLocale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return language.English.String()
}

// normalize turns POSIX locale strings such as "de_DE.UTF-8" into BCP 47 tags.
func normalize(locale string) string {
	locale, _, _ = strings.Cut(locale, ".")
	locale = strings.ReplaceAll(locale, "_", "-")
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English.String()
	}
	return tag.String()
}
