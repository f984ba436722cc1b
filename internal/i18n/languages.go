// Package i18n provides translation tables and the active-language provider.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Language describes a supported UI language.
type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"nativeName"`
}

// DefaultLanguage is the fallback language code.
const DefaultLanguage = "en"

// languageOrder fixes the listing order.
var languageOrder = []string{
	"en", "hi", "ta", "te", "kn", "ml", "bn", "gu", "mr", "pa", "ur", "as",
	"or", "ks", "brx", "doi", "kok", "mai", "mni", "ne", "sa", "sat", "sd",
}

var languages = map[string]Language{
	"en":  {Code: "en", Name: "English", NativeName: "English"},
	"hi":  {Code: "hi", Name: "Hindi", NativeName: "हिंदी"},
	"ta":  {Code: "ta", Name: "Tamil", NativeName: "தமிழ்"},
	"te":  {Code: "te", Name: "Telugu", NativeName: "తెలుగు"},
	"kn":  {Code: "kn", Name: "Kannada", NativeName: "ಕನ್ನಡ"},
	"ml":  {Code: "ml", Name: "Malayalam", NativeName: "മലയാളം"},
	"bn":  {Code: "bn", Name: "Bengali", NativeName: "বাংলা"},
	"gu":  {Code: "gu", Name: "Gujarati", NativeName: "ગુજરાતી"},
	"mr":  {Code: "mr", Name: "Marathi", NativeName: "मराठी"},
	"pa":  {Code: "pa", Name: "Punjabi", NativeName: "ਪੰਜਾਬੀ"},
	"ur":  {Code: "ur", Name: "Urdu", NativeName: "اردو"},
	"as":  {Code: "as", Name: "Assamese", NativeName: "অসমীয়া"},
	"or":  {Code: "or", Name: "Odia", NativeName: "ଓଡ଼ିଆ"},
	"ks":  {Code: "ks", Name: "Kashmiri", NativeName: "कॉशुर"},
	"brx": {Code: "brx", Name: "Bodo", NativeName: "बड़ो"},
	"doi": {Code: "doi", Name: "Dogri", NativeName: "डोगरी"},
	"kok": {Code: "kok", Name: "Konkani", NativeName: "कोंकणी"},
	"mai": {Code: "mai", Name: "Maithili", NativeName: "मैथिली"},
	"mni": {Code: "mni", Name: "Manipuri", NativeName: "মৈতৈলোন্"},
	"ne":  {Code: "ne", Name: "Nepali", NativeName: "नेपाली"},
	"sa":  {Code: "sa", Name: "Sanskrit", NativeName: "संस्कृतम्"},
	"sat": {Code: "sat", Name: "Santali", NativeName: "ᱥᱟᱱᱛᱟᱲᱤ"},
	"sd":  {Code: "sd", Name: "Sindhi", NativeName: "سنڌي"},
}

// Languages lists the supported languages in display order.
func Languages() []Language {
	out := make([]Language, 0, len(languageOrder))
	for _, code := range languageOrder {
		out = append(out, languages[code])
	}
	return out
}

// Info returns the language for code, or English when unsupported.
func Info(code string) Language {
	if resolved, ok := ResolveCode(code); ok {
		return languages[resolved]
	}
	return languages[DefaultLanguage]
}

// ResolveCode maps a BCP 47 tag ("hi", "hi-IN", "TA") to a supported
// language code. The bool is false when the tag is malformed or unsupported.
func ResolveCode(code string) (string, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if _, ok := languages[code]; ok {
		return code, true
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	if _, ok := languages[base.String()]; ok {
		return base.String(), true
	}
	return "", false
}

// MatchAcceptLanguage picks the first supported language from an
// Accept-Language header value, in the header's preference order.
func MatchAcceptLanguage(header string) (string, bool) {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return "", false
	}
	for _, tag := range tags {
		if code, ok := ResolveCode(tag.String()); ok {
			return code, true
		}
	}
	return "", false
}
