package emotion

import "strings"

// Vocabulary is the ordered set of emotion names every view is keyed by.
type Vocabulary []string

// DefaultVocabulary matches the label set of the facial inference service.
var DefaultVocabulary = Vocabulary{"anger", "disgust", "fear", "happy", "neutral", "sad", "surprise"}

// Contains reports whether name is part of the vocabulary.
func (v Vocabulary) Contains(name string) bool {
	for _, e := range v {
		if e == name {
			return true
		}
	}
	return false
}

// aliases maps labels used by text emotion models onto the facial vocabulary.
var aliases = map[string]string{
	"joy":       "happy",
	"happiness": "happy",
	"sadness":   "sad",
	"angry":     "anger",
	"surprised": "surprise",
	"disgusted": "disgust",
	"fearful":   "fear",
	"calm":      "neutral",
}

// Canonical lower-cases a label and folds known aliases into vocabulary names.
// Unknown labels are returned lower-cased and are simply ignored by projections.
func Canonical(label string) string {
	l := strings.ToLower(strings.TrimSpace(label))
	if c, ok := aliases[l]; ok {
		return c
	}
	return l
}
