// Package i18n selects a message printer for command-line output.
package i18n

import (
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLang is the fallback language
var DefaultLang = language.English

// SupportedLangs are the languages we support
var SupportedLangs = []language.Tag{
	language.English,
	language.German,
}

var matcher = language.NewMatcher(SupportedLangs)

// Catalog keys for CLI output. English text is the key itself.
const (
	MsgOutcome      = "Outcome: %s\n"
	MsgWAN          = "WAN: %s\n"
	MsgKind         = "Kind: %s\n"
	MsgDevice       = "Device: %s\n"
	MsgNoDevice     = "Device: (none)\n"
	MsgHealthy      = "Internet reachable via %s\n"
	MsgUnhealthy    = "Internet unreachable via %s\n"
	MsgNoWan        = "No WAN interface found: %v\n"
	MsgDryRun       = "Dry run, would have executed:\n"
	MsgControlError = "Control step failed: %s\n"
)

func init() {
	de := language.German
	_ = message.SetString(de, MsgOutcome, "Ergebnis: %s\n")
	_ = message.SetString(de, MsgWAN, "WAN: %s\n")
	_ = message.SetString(de, MsgKind, "Art: %s\n")
	_ = message.SetString(de, MsgDevice, "Gerät: %s\n")
	_ = message.SetString(de, MsgNoDevice, "Gerät: (keines)\n")
	_ = message.SetString(de, MsgHealthy, "Internet erreichbar über %s\n")
	_ = message.SetString(de, MsgUnhealthy, "Internet nicht erreichbar über %s\n")
	_ = message.SetString(de, MsgNoWan, "Keine WAN-Schnittstelle gefunden: %v\n")
	_ = message.SetString(de, MsgDryRun, "Testlauf, folgende Befehle wären ausgeführt worden:\n")
	_ = message.SetString(de, MsgControlError, "Steuerschritt fehlgeschlagen: %s\n")
}

// MatchLanguage returns the best matching language for the given tags
func MatchLanguage(acceptLang string) language.Tag {
	tags, _, _ := language.ParseAcceptLanguage(acceptLang)
	tag, _, _ := matcher.Match(tags...)
	return tag
}

// NewPrinter returns a message printer for the given language
func NewPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// LocaleFromEnv resolves LC_ALL, then LANG, to a supported language.
func LocaleFromEnv(getenv func(string) string) language.Tag {
	lang := getenv("LC_ALL")
	if lang == "" {
		lang = getenv("LANG")
	}
	if lang == "" || lang == "C" || lang == "POSIX" {
		return DefaultLang
	}

	// Strip encoding and modifier ("de_DE.UTF-8@euro")
	if i := strings.IndexAny(lang, ".@"); i != -1 {
		lang = lang[:i]
	}
	lang = strings.ReplaceAll(lang, "_", "-")

	tag, err := language.Parse(lang)
	if err != nil {
		return MatchLanguage(lang)
	}
	tag, _, _ = matcher.Match(tag)
	return tag
}

// NewCLIPrinter returns a printer for the system's locale (from env vars)
func NewCLIPrinter() *message.Printer {
	return message.NewPrinter(LocaleFromEnv(os.Getenv))
}
