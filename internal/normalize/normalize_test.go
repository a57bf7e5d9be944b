package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnacceptedCharsErrorMessage(t *testing.T) {
	err := &UnacceptedCharsError{Text: "héllo", Char: 'é'}
	assert.Contains(t, err.Error(), "'é'")
}

func TestNoopIdentifierAlwaysReturnsEmptyLanguage(t *testing.T) {
	lang, err := NoopIdentifier{}.Identify("jotain suomea")
	assert.NoError(t, err)
	assert.Empty(t, lang)
}

type upperNormalizer struct{}

func (upperNormalizer) Normalize(text string) (string, error) {
	out := make([]rune, 0, len(text))
	for _, r := range text {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out), nil
}

func TestNormalizerInterfaceIsSatisfiedByCustomImplementations(t *testing.T) {
	var n Normalizer = upperNormalizer{}
	out, err := n.Normalize("moi")
	assert.NoError(t, err)
	assert.Equal(t, "MOI", out)
}
