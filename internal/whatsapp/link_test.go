package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLinkWithName(t *testing.T) {
	link, ok := BuildLink("0771234567", "Alice")
	require.True(t, ok)

	prefix := "https://wa.me/94771234567?text="
	require.True(t, strings.HasPrefix(link, prefix), link)

	decoded, err := url.PathUnescape(strings.TrimPrefix(link, prefix))
	require.NoError(t, err)
	assert.Equal(t, "Hello Alice! Thank you for your form submission. We're contacting you from our support team. How can we assist you today?", decoded)
}

func TestBuildLinkWithoutName(t *testing.T) {
	link, ok := BuildLink("0771234567", "")
	require.True(t, ok)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u.Query().Get("text"), "Hello!"))
	assert.Equal(t, "/94771234567", u.Path)
}

func TestBuildLinkInvalidPhone(t *testing.T) {
	link, ok := BuildLink("123", "Bob")
	assert.False(t, ok)
	assert.Empty(t, link)

	_, ok = BuildLink("", "Bob")
	assert.False(t, ok)
}

func TestBuildLinkEncodesLikeBrowsers(t *testing.T) {
	link, ok := BuildLink("+94771234567", "Zoë & Co")
	require.True(t, ok)
	assert.Contains(t, link, "Hello%20Zo%C3%AB%20%26%20Co!")
	assert.Contains(t, link, "We're")
	assert.NotContains(t, link, "+")
}

func TestBuilderCustomBase(t *testing.T) {
	link, ok := Builder{BaseURL: "https://api.whatsapp.com/send"}.BuildLink("771234567", "")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(link, "https://api.whatsapp.com/send/94771234567?text=Hello!"))
}

func TestBuilderMessageOverride(t *testing.T) {
	b := Builder{Message: func(name string) string { return "Hi " + name }}
	link, ok := b.BuildLink("0771234567", "Ann")
	require.True(t, ok)
	assert.Equal(t, "https://wa.me/94771234567?text=Hi%20Ann", link)
}

func TestGreetingKeepsNameAsGiven(t *testing.T) {
	assert.True(t, strings.HasPrefix(Greeting(""), "Hello!"))
	assert.True(t, strings.HasPrefix(Greeting(" "), "Hello  !"))
	assert.True(t, strings.HasPrefix(Greeting(" Alice "), "Hello  Alice !"))

	link, ok := BuildLink("0771234567", " ")
	require.True(t, ok)
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u.Query().Get("text"), "Hello  ! Thank you"))
}

func TestEncodeComponent(t *testing.T) {
	tests := map[string]string{
		"a b":     "a%20b",
		"a+b":     "a%2Bb",
		"(x)*!'~": "(x)*!'~",
		"?&=/":    "%3F%26%3D%2F",
	}
	for in, want := range tests {
		assert.Equal(t, want, EncodeComponent(in), in)
	}
}
