package transcript

// Piece is one normalizable slice of text to match against the alignment,
// paired with the speaker metadata that should be written onto the CTM rows
// it matches. A statement without an embedded utterance yields a single
// Piece; a statement with one yields three: pre-embed (enclosing speaker),
// embedded (chairman), post-embed (enclosing speaker).
type Piece struct {
	Text      string
	MPID      int
	Firstname string
	Lastname  string
	Language  string
}

// Pieces splits a statement around its embedded chairman utterance, if any,
// by partitioning the text on EmbeddedSentinel and substituting the middle
// piece with the embedded statement's own text. The embedded piece always
// carries mp_id 0 and an empty language: a chairman interjection is not
// itself attributed to an MP and has no language tag of its own.
func Pieces(s Statement) []Piece {
	if s.Embedded == nil || s.Embedded.Text == "" {
		return []Piece{{
			Text:      s.Text,
			MPID:      s.MPID,
			Firstname: s.Firstname,
			Lastname:  s.Lastname,
			Language:  s.Language,
		}}
	}

	pre, _, post := partition(s.Text, EmbeddedSentinel)
	return []Piece{
		{Text: pre, MPID: s.MPID, Firstname: s.Firstname, Lastname: s.Lastname, Language: s.Language},
		{Text: s.Embedded.Text, MPID: 0, Firstname: s.Embedded.Firstname, Lastname: s.Embedded.Lastname, Language: ""},
		{Text: post, MPID: s.MPID, Firstname: s.Firstname, Lastname: s.Lastname, Language: s.Language},
	}
}

// partition mirrors Python's str.partition: it splits s on the first
// occurrence of sep, returning (before, sep, after). If sep does not occur,
// it returns (s, "", "").
func partition(s, sep string) (before, found, after string) {
	for i := 0; i+len(sep) <= len(s); i++ {
		if s[i:i+len(sep)] == sep {
			return s[:i], sep, s[i+len(sep):]
		}
	}
	return s, "", ""
}
