package validation

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// SocialMediaResult carries the validator's three-way outcome: cleaned
// values to write, hard errors that abort the mutation, and warnings
// for auto-corrections that are applied anyway.
type SocialMediaResult struct {
	ValidatedUpdates map[string]string
	Errors           map[string]string
	Warnings         map[string]string
}

// ValidationError is the machine-readable failure a non-empty error map
// turns into. Its Error() string is the JSON encoding so callers over
// any transport can decode type/field details.
type ValidationError struct {
	Type   string            `json:"type"`
	Errors map[string]string `json:"errors"`
}

func (e *ValidationError) Error() string {
	b, err := json.Marshal(e)
	if err != nil {
		return e.Type
	}
	return string(b)
}

var platformHosts = map[string][]string{
	"facebook_url":  {"facebook.com", "fb.com"},
	"instagram_url": {"instagram.com"},
	"twitter_url":   {"twitter.com", "x.com"},
	"linkedin_url":  {"linkedin.com"},
	"tiktok_url":    {"tiktok.com"},
	"youtube_url":   {"youtube.com", "youtu.be"},
}

// ValidateBusinessSocialMedia normalizes and validates the social URL
// fields of an update payload. Non-URL payload keys are ignored. Empty
// strings pass through validated (clearing a link is always allowed).
func ValidateBusinessSocialMedia(updates map[string]interface{}) SocialMediaResult {
	result := SocialMediaResult{
		ValidatedUpdates: make(map[string]string),
		Errors:           make(map[string]string),
		Warnings:         make(map[string]string),
	}

	for field, hosts := range platformHosts {
		raw, ok := updates[field]
		if !ok {
			continue
		}

		value, ok := raw.(string)
		if !ok {
			result.Errors[field] = "must be a string"
			continue
		}

		value = strings.TrimSpace(value)
		if value == "" {
			result.ValidatedUpdates[field] = ""
			continue
		}

		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			value = "https://" + value
			result.Warnings[field] = "missing scheme, assumed https"
		}

		parsed, err := url.Parse(value)
		if err != nil || parsed.Host == "" {
			result.Errors[field] = "not a valid URL"
			continue
		}

		host := strings.ToLower(strings.TrimPrefix(parsed.Hostname(), "www."))
		if !hostAllowed(host, hosts) {
			result.Errors[field] = fmt.Sprintf("host %q does not belong to this platform", host)
			continue
		}

		if parsed.Scheme == "http" {
			parsed.Scheme = "https"
			result.Warnings[field] = "upgraded to https"
		}

		result.ValidatedUpdates[field] = parsed.String()
	}

	return result
}

func hostAllowed(host string, allowed []string) bool {
	for _, a := range allowed {
		if host == a || strings.HasSuffix(host, "."+a) {
			return true
		}
	}
	return false
}
