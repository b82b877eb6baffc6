package logger

import (
	"net/url"
	"strings"
)

// sensitiveParams are query parameter names whose values must never reach the
// request log.
var sensitiveParams = map[string]bool{
	"token":         true,
	"password":      true,
	"secret":        true,
	"key":           true,
	"authorization": true,
	"api_key":       true,
	"access_token":  true,
	"refresh_token": true,
}

// HasSensitiveParams reports whether a raw query string contains any
// credential-bearing parameter.
func HasSensitiveParams(rawQuery string) bool {
	if rawQuery == "" {
		return false
	}

	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		// Unparseable query strings are treated as sensitive
		return true
	}

	for name := range values {
		if sensitiveParams[strings.ToLower(name)] {
			return true
		}
	}

	return false
}
