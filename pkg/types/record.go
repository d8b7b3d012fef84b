package types

// Joy score bounds for documentation records
const (
	MinJoyScore = 0
	MaxJoyScore = 10
)

// Doc is the documentation record attached to a file entry. It is produced by
// the enrichment backend and treated as an opaque payload by the cache and
// merge layers; only presence or absence matters there.
type Doc struct {
	Description string  `json:"description"`
	JoyScore    float64 `json:"joy_score"`
	Emoji       string  `json:"emoji"`
}

// IsEmpty reports whether the record carries no usable description. Entries
// with empty records are re-enriched on the next run.
func (d *Doc) IsEmpty() bool {
	return d == nil || d.Description == ""
}

// ClampScore bounds the joy score into the valid range. Backend responses
// occasionally report scores outside it.
func (d *Doc) ClampScore() {
	if d.JoyScore < MinJoyScore {
		d.JoyScore = MinJoyScore
	}
	if d.JoyScore > MaxJoyScore {
		d.JoyScore = MaxJoyScore
	}
}
