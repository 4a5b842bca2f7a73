package server

import (
	"net/http"

	"golang.org/x/text/language"
)

// supported are the interface languages, English first as the fallback.
var supported = []language.Tag{
	language.English,
	language.French,
}

var matcher = language.NewMatcher(supported)

// resolveLanguage picks "en" or "fr" for a request. An explicit body value
// wins; otherwise the Accept-Language header is matched; the fallback is
// English.
func resolveLanguage(r *http.Request, explicit string) string {
	if explicit != "" {
		if tag, err := language.Parse(explicit); err == nil {
			_, index, _ := matcher.Match(tag)
			return tagCode(index)
		}
	}
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err == nil && len(tags) > 0 {
		_, index, _ := matcher.Match(tags...)
		return tagCode(index)
	}
	return "en"
}

func tagCode(index int) string {
	if index >= 0 && index < len(supported) {
		base, _ := supported[index].Base()
		return base.String()
	}
	return "en"
}
