package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeParsesSubsectionsAndStatements(t *testing.T) {
	data := []byte(`{
		"number": 1,
		"year": 2015,
		"begin_time": "2015-04-23T14:00:00",
		"subsections": [{
			"number": "1",
			"title": "Opening",
			"statements": [{
				"type": "L",
				"mp_id": 7,
				"firstname": "Matti",
				"lastname": "Meikalainen",
				"language": "fi",
				"text": "hyvat edustajat"
			}]
		}]
	}`)

	tr, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 1, tr.Number)
	assert.Equal(t, 2015, tr.Year)
	require.Len(t, tr.Subsections, 1)
	assert.Equal(t, "Opening", tr.Subsections[0].Title)
	require.Len(t, tr.Subsections[0].Statements, 1)

	s := tr.Subsections[0].Statements[0]
	assert.Equal(t, KindLong, s.Type)
	assert.Equal(t, 7, s.MPID)
	assert.Equal(t, "Matti Meikalainen", s.SpeakerName())
	assert.False(t, s.IsSwedish())
	assert.Nil(t, s.Embedded)
}

func TestDecodeParsesEmbeddedStatement(t *testing.T) {
	data := []byte(`{
		"number": 1,
		"year": 2015,
		"subsections": [{
			"statements": [{
				"type": "L",
				"language": "sv.p",
				"text": "puhetta #ch_statement loppuu",
				"embedded_statement": {
					"firstname": "Puhemies",
					"lastname": "X",
					"text": "asia on nyt kasittelyssa"
				}
			}]
		}]
	}`)

	tr, err := Decode(data)
	require.NoError(t, err)
	s := tr.Subsections[0].Statements[0]
	require.NotNil(t, s.Embedded)
	assert.Equal(t, "asia on nyt kasittelyssa", s.Embedded.Text)
	assert.True(t, s.IsSwedish(), "sv.p is a predicted Swedish label")
}

func TestDecodeReturnsErrorForMalformedJSON(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.Error(t, err)
}
