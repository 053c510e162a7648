// Package locale provides the localized strings the router renders itself.
package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var files embed.FS

// MsgLinkFallback is the label of a link whose content is not plain text.
const MsgLinkFallback = "LinkFallback"

var defaultMessages = map[string]*i18n.Message{
	MsgLinkFallback: {ID: MsgLinkFallback, Other: "Link"},
}

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
	bundleErr  error
)

// Bundle returns the shared message bundle loaded from the embedded files.
func Bundle() (*i18n.Bundle, error) {
	bundleOnce.Do(func() {
		b := i18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

		paths, err := fs.Glob(files, "locales/*.toml")
		if err != nil {
			bundleErr = err
			return
		}
		for _, p := range paths {
			if _, err := b.LoadMessageFileFS(files, p); err != nil {
				bundleErr = fmt.Errorf("load %s: %w", p, err)
				return
			}
		}
		bundle = b
	})
	return bundle, bundleErr
}

// Localizer resolves router strings for a list of preferred languages.
type Localizer struct {
	loc   *i18n.Localizer
	langs []string
}

// New creates a localizer for the given language preferences, e.g. "es" or
// "fr-CA, en;q=0.8". Unknown languages fall back to English.
func New(langs ...string) (*Localizer, error) {
	b, err := Bundle()
	if err != nil {
		return nil, err
	}
	return &Localizer{
		loc:   i18n.NewLocalizer(b, langs...),
		langs: langs,
	}, nil
}

// English returns a localizer that always answers in English. It cannot
// fail: when the bundle is unusable it serves the built-in defaults.
func English() *Localizer {
	l, err := New(language.English.String())
	if err != nil {
		return &Localizer{}
	}
	return l
}

// Message returns the localized text for id, or its English default.
func (l *Localizer) Message(id string) string {
	def := defaultMessages[id]
	if l == nil || l.loc == nil {
		if def != nil {
			return def.Other
		}
		return id
	}

	msg, err := l.loc.Localize(&i18n.LocalizeConfig{
		MessageID:      id,
		DefaultMessage: def,
	})
	if err != nil {
		if def != nil {
			return def.Other
		}
		return id
	}
	return msg
}

// LinkFallback returns the label used for links without plain-text content.
func (l *Localizer) LinkFallback() string {
	return l.Message(MsgLinkFallback)
}

// Languages returns the preferences the localizer was built with.
func (l *Localizer) Languages() []string {
	if l == nil {
		return nil
	}
	return append([]string(nil), l.langs...)
}

// Supported returns the language tags with embedded message files.
func Supported() []language.Tag {
	b, err := Bundle()
	if err != nil {
		return []language.Tag{language.English}
	}
	return b.LanguageTags()
}
