package config

import (
	"net/url"
	"strings"
)

// RedactURL replaces the password in a database connection URL with "***".
// SQLite file paths and URLs without a password are returned unchanged.
func RedactURL(raw string) string {
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}

	if _, hasPassword := u.User.Password(); !hasPassword {
		return raw
	}

	// Splice the raw string rather than re-encoding through url.URL,
	// so the host and query portions come back byte for byte.
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return raw
	}

	userinfo, hostpart, ok := strings.Cut(rest, "@")
	if !ok {
		return raw
	}

	username, _, ok := strings.Cut(userinfo, ":")
	if !ok {
		return raw
	}

	return scheme + "://" + username + ":***@" + hostpart
}
