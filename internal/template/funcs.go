package template

import (
	"strconv"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	titleCaser := cases.Title(language.English)
	return template.FuncMap{
		// String functions
		"lower":     strings.ToLower,
		"upper":     strings.ToUpper,
		"title":     titleCaser.String,
		"trimSpace": strings.TrimSpace,
		"replace":   strings.ReplaceAll,
		"join":      strings.Join,

		// Go source functions
		"quote":    strconv.Quote,
		"exported": Exported,
		"ident":    ident,
	}
}

// Exported returns name with its first letter upper-cased and the rest
// untouched, so "appVersion" becomes "AppVersion" rather than "Appversion".
func Exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// ident joins an optional prefix and a constant name into an exported identifier.
func ident(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return Exported(prefix) + name
}
