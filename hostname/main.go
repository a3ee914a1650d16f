// Package hostname turns free-form operator input into canonical hostnames,
// proxy URLs and directory slugs.
package hostname

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/45air/airlocal/errors"
	"github.com/gosimple/slug"
)

var schemeRe = regexp.MustCompile(`(?i)^https?://`)

var localSuffixes = []string{".test", ".local", ".localhost", ".docker"}

// Normalize strips whitespace, a leading http(s):// and everything from the
// first slash on. It never fails.
func Normalize(raw string) string {
	value := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	value = schemeRe.ReplaceAllString(value, "")

	if i := strings.Index(value, "/"); i >= 0 {
		value = value[:i]
	}
	return value
}

// NormalizeProxyURL makes sure a proxy URL carries a scheme and has no
// leading or trailing slashes.
func NormalizeProxyURL(raw string) string {
	value := raw
	if len(value) > 3 && !schemeRe.MatchString(value) {
		value = "http://" + value
	}
	return strings.TrimRight(strings.TrimLeft(value, "/"), "/")
}

// Split breaks a space separated list of hostnames into normalized entries,
// dropping empty ones.
func Split(raw string) []string {
	hosts := []string{}
	for _, field := range strings.Fields(raw) {
		if host := Normalize(field); host != "" {
			hosts = append(hosts, host)
		}
	}
	return hosts
}

// Slug maps a hostname to the lowercase, hyphen separated name used for the
// environment directory, compose project and database.
func Slug(host string) string {
	return slug.Make(host)
}

// DefaultProxy guesses the production URL of a local hostname.
func DefaultProxy(host string) string {
	base := strings.ToLower(Normalize(host))
	for _, suffix := range localSuffixes {
		if strings.HasSuffix(base, suffix) {
			base = strings.TrimSuffix(base, suffix) + ".com"
			break
		}
	}
	return "http://" + base
}

func ValidateNotEmpty(value string) error {
	if strings.TrimSpace(value) == "" {
		return &errors.ValidationError{Message: "This field is required"}
	}
	return nil
}
