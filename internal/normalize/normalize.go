// Package normalize defines the pluggable text-normalization and
// language-identification collaborators the core consults as black boxes,
// plus a Recipe type standing in for the external recipe configuration
// (regexp rewrites, forbidden characters, translation tables) normalizers
// are built from.
package normalize

import "fmt"

// Recipe is the opaque configuration the Normalizer is built from. The core
// never inspects its fields; it only ever calls Normalizer.Normalize.
type Recipe struct {
	Regexps         []string          `json:"regexps" mapstructure:"regexps"`
	UnacceptedChars string            `json:"unaccepted_chars" mapstructure:"unaccepted_chars"`
	Translations    map[string]string `json:"translations" mapstructure:"translations"`
}

// UnacceptedCharsError is returned by a Normalizer when input text contains
// characters the recipe forbids.
type UnacceptedCharsError struct {
	Text string
	Char rune
}

func (e *UnacceptedCharsError) Error() string {
	return fmt.Sprintf("unaccepted character %q in text", e.Char)
}

// Normalizer applies a deterministic rewrite pipeline to raw transcript
// prose, producing lowercase, whitespace-normalized token streams. The core
// depends only on this interface; concrete implementations are supplied by
// the caller.
type Normalizer interface {
	Normalize(text string) (string, error)
}

// LanguageIdentifier is consulted as a black box to assign a language to
// statements whose language tag is empty. The core never calls this
// directly; it is available for the driver to apply before handing
// statements to the matcher.
type LanguageIdentifier interface {
	Identify(text string) (string, error)
}

// NoopIdentifier always returns an empty language, used when no LID
// collaborator has been wired in.
type NoopIdentifier struct{}

// Identify implements LanguageIdentifier.
func (NoopIdentifier) Identify(string) (string, error) { return "", nil }
