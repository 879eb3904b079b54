// Package country canonicalizes country identifiers across data sources.
package country

import (
	_ "embed"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var aliasYAML []byte

var aliases = loadAliases()

func loadAliases() map[string]string {
	var doc struct {
		Aliases map[string]string `yaml:"aliases"`
	}
	if err := yaml.Unmarshal(aliasYAML, &doc); err != nil {
		// The table is embedded at build time; a parse failure is a broken
		// build, not a runtime condition.
		zap.L().Error("country: parse alias table", zap.Error(err))
		return map[string]string{}
	}
	return doc.Aliases
}

// stripDiacritics removes combining marks after NFD decomposition, so
// "Côte d'Ivoire" and "Cote d'Ivoire" clean to the same key.
var stripDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

var titleCaser = cases.Title(language.English)

// Normalize maps a raw country name from any source to its canonical key.
// It is total (never fails, falls back to the cleaned string) and idempotent.
func Normalize(raw string) string {
	cleaned := clean(raw)
	if canonical, ok := aliases[cleaned]; ok {
		return canonical
	}
	return cleaned
}

// DisplayName renders a canonical key for human-readable reports.
func DisplayName(key string) string {
	return titleCaser.String(key)
}

func clean(raw string) string {
	s := strings.ToLower(raw)

	// Scraped cells carry non-breaking and thin spaces.
	s = strings.NewReplacer("\u00a0", " ", "\u202f", " ", "\u2009", " ").Replace(s)

	if folded, _, err := transform.String(stripDiacritics, s); err == nil {
		s = folded
	}

	s = dropBracketed(s)

	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '–':
			b.WriteByte(' ')
		}
		// Punctuation and footnote daggers are dropped outright.
	}

	s = strings.Join(strings.Fields(b.String()), " ")
	s = strings.TrimPrefix(s, "the ")
	return strings.TrimSpace(s)
}

// dropBracketed removes footnote references and parentheticals such as
// "china[a]" or "congo (kinshasa)".
func dropBracketed(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
