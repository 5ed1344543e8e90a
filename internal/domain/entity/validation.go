package entity

import (
	"fmt"
	"net/url"
	"unicode/utf8"

	"booksaetong/internal/utils/text"
)

const (
	// MaxKeywordLength bounds search keywords, in characters.
	MaxKeywordLength = 100
	// MaxLocationLength bounds location scopes, in characters.
	MaxLocationLength = 200
	// MaxTitleLength bounds listing titles, in characters.
	MaxTitleLength = 200

	maxURLLength = 2048
)

// ValidateKeyword checks a search keyword. The empty keyword is valid and means
// "no keyword filter".
func ValidateKeyword(keyword string) error {
	if !utf8.ValidString(keyword) {
		return &ValidationError{Field: "keyword", Message: "keyword must be valid UTF-8"}
	}
	if text.CountRunes(keyword) > MaxKeywordLength {
		return &ValidationError{
			Field:   "keyword",
			Message: fmt.Sprintf("keyword must not exceed %d characters", MaxKeywordLength),
		}
	}
	return nil
}

// ValidateLocationScope checks a location scope. The empty scope is valid and means
// "everywhere".
func ValidateLocationScope(scope string) error {
	if !utf8.ValidString(scope) {
		return &ValidationError{Field: "location", Message: "location must be valid UTF-8"}
	}
	if text.CountRunes(scope) > MaxLocationLength {
		return &ValidationError{
			Field:   "location",
			Message: fmt.Sprintf("location must not exceed %d characters", MaxLocationLength),
		}
	}
	return nil
}

// ValidateProfileURL checks that a profile image URL is an absolute http(s) URL.
func ValidateProfileURL(rawURL string) error {
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "profile_url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "profile_url", Message: "url is malformed"}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &ValidationError{Field: "profile_url", Message: "url must use http or https scheme"}
	}
	if parsed.Host == "" {
		return &ValidationError{Field: "profile_url", Message: "url must have a valid host"}
	}
	return nil
}
