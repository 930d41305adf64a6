// Package i18n localizes the hub's own API messages. (The translations the
// service manages for its callers are a separate concern handled by the
// services layer.)
package i18n

import (
	"fmt"
	"strings"

	"transhub/internal/i18n/locales"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

var bundle *i18n.Bundle

// Init initializes the message bundle.
func Init() error {
	bundle = i18n.NewBundle(language.English)

	languages := []string{"en-US", "pt-BR", "es-ES"}
	for _, lang := range languages {
		if err := loadMessages(lang); err != nil {
			return fmt.Errorf("failed to load language %s: %w", lang, err)
		}
	}

	return nil
}

// loadMessages registers the compiled-in messages for one language.
func loadMessages(lang string) error {
	messages := getMessages(lang)
	tag, err := language.Parse(lang)
	if err != nil {
		return err
	}
	for id, msg := range messages {
		if err := bundle.AddMessages(tag, &i18n.Message{ID: id, Other: msg}); err != nil {
			return err
		}
	}
	return nil
}

func getMessages(lang string) map[string]string {
	switch lang {
	case "pt-BR":
		return locales.MessagesPtBR
	case "es-ES":
		return locales.MessagesEsES
	default:
		return locales.MessagesEnUS
	}
}

// GetLocalizer builds a localizer for an Accept-Language header value.
func GetLocalizer(acceptLang string) *i18n.Localizer {
	langs := parseAcceptLanguage(acceptLang)
	if len(langs) == 0 {
		langs = []string{"en-US"}
	}
	return i18n.NewLocalizer(bundle, langs...)
}

// parseAcceptLanguage takes the first language of an Accept-Language header.
func parseAcceptLanguage(acceptLang string) []string {
	if acceptLang == "" {
		return nil
	}

	parts := strings.Split(acceptLang, ",")
	if len(parts) == 0 {
		return nil
	}
	lang := strings.TrimSpace(parts[0])
	if idx := strings.Index(lang, ";"); idx > 0 {
		lang = lang[:idx]
	}
	return []string{normalizeLanguageCode(lang)}
}

// normalizeLanguageCode maps common language codes onto the bundled locales.
func normalizeLanguageCode(lang string) string {
	switch lowered := strings.ToLower(strings.TrimSpace(lang)); {
	case lowered == "pt" || lowered == "pt-br" || strings.HasPrefix(lowered, "pt"):
		return "pt-BR"
	case lowered == "es" || lowered == "es-es" || strings.HasPrefix(lowered, "es"):
		return "es-ES"
	default:
		return "en-US"
	}
}

// T translates a message.
func T(localizer *i18n.Localizer, msgID string, data ...map[string]any) string {
	config := &i18n.LocalizeConfig{MessageID: msgID}
	if len(data) > 0 {
		config.TemplateData = data[0]
	}

	msg, err := localizer.Localize(config)
	if err != nil {
		// Fall back to the message id so a missing entry is still visible.
		return msgID
	}
	return msg
}
