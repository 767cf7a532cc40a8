// Package whatsapp builds wa.me deep links that open a chat with a form
// submitter and prefill a greeting.
package whatsapp

import (
	"net/url"
	"strings"

	"github.com/wolfman30/submissions-dashboard/internal/phone"
)

const (
	// DefaultBaseURL is the click-to-chat endpoint.
	DefaultBaseURL = "https://wa.me/"

	greetingBody = "! Thank you for your form submission. We're contacting you from our support team. How can we assist you today?"
)

// Builder composes messaging links. The zero value uses DefaultBaseURL and
// Greeting.
type Builder struct {
	BaseURL string
	// Message overrides the prefilled text.
	Message func(displayName string) string
}

// Greeting returns the prefilled message, addressing displayName as given
// when it is non-empty.
func Greeting(displayName string) string {
	if displayName == "" {
		return "Hello" + greetingBody
	}
	return "Hello " + displayName + greetingBody
}

// BuildLink normalizes raw and returns the chat link. ok is false when the
// number could not be normalized.
func (b Builder) BuildLink(raw, displayName string) (link string, ok bool) {
	canonical, err := phone.Normalize(raw)
	if err != nil {
		return "", false
	}
	base := strings.TrimSpace(b.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	message := b.Message
	if message == nil {
		message = Greeting
	}
	return base + strings.TrimPrefix(canonical, "+") + "?text=" + EncodeComponent(message(displayName)), true
}

// BuildLink uses the default builder.
func BuildLink(raw, displayName string) (string, bool) {
	return Builder{}.BuildLink(raw, displayName)
}

// url.QueryEscape differs from browser component encoding on space and on
// the sub-delims !'()*.
var componentFixups = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s the way browsers encode a URI component.
func EncodeComponent(s string) string {
	return componentFixups.Replace(url.QueryEscape(s))
}
