package app

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/JaimeStill/translation-console/pkg/apiclient"
)

// sourceLocales are the help center locales a batch can be pulled from.
// The first entry is the default.
var sourceLocales = []string{
	apiclient.DefaultLocale,
	"en-gb",
	"ja",
	"de",
	"fr",
	"es",
	"it",
	"pt-br",
	"zh-cn",
	"zh-tw",
	"ko",
	"nl",
}

// LocaleOption is one entry of the create-batch locale picker.
type LocaleOption struct {
	Code     string
	Label    string
	Selected bool
}

// LocaleOptions returns the picker entries with selected marked. An empty
// or unknown selection marks the default locale.
func LocaleOptions(selected string) []LocaleOption {
	selected = strings.ToLower(strings.TrimSpace(selected))
	known := false
	for _, code := range sourceLocales {
		if code == selected {
			known = true
			break
		}
	}
	if !known {
		selected = apiclient.DefaultLocale
	}

	options := make([]LocaleOption, 0, len(sourceLocales))
	for _, code := range sourceLocales {
		options = append(options, LocaleOption{
			Code:     code,
			Label:    localeLabel(code),
			Selected: code == selected,
		})
	}
	return options
}

// localeLabel names code in English, falling back to the code itself.
func localeLabel(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	name := display.English.Tags().Name(tag)
	if name == "" {
		return code
	}
	return name + " (" + code + ")"
}
