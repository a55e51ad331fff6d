package emotion

import "sort"

// Modality identifies one of the two independent emotion streams.
type Modality int

const (
	Facial Modality = iota
	Speech
)

func (m Modality) String() string {
	switch m {
	case Facial:
		return "facial"
	case Speech:
		return "speech"
	default:
		return "unknown"
	}
}

// ParseModality is the inverse of String. ok is false for unknown names.
func ParseModality(s string) (Modality, bool) {
	switch s {
	case "facial":
		return Facial, true
	case "speech":
		return Speech, true
	}
	return 0, false
}

// FaceBounds is x, y, width, height in reference frame coordinates.
type FaceBounds [4]float64

func (b FaceBounds) X() float64      { return b[0] }
func (b FaceBounds) Y() float64      { return b[1] }
func (b FaceBounds) Width() float64  { return b[2] }
func (b FaceBounds) Height() float64 { return b[3] }

// Reading is one snapshot of emotion scores. Face is only set for facial readings.
// A Reading is never mutated after it has been recorded.
type Reading struct {
	Scores map[string]float64 `json:"emotions"`
	Face   *FaceBounds        `json:"face_coordinates,omitempty"`
}

// Score returns the score for name, or 0 if the reading has no such key.
func (r Reading) Score(name string) float64 {
	return r.Scores[name]
}

// Empty reports whether the reading carries no scores at all.
func (r Reading) Empty() bool {
	return len(r.Scores) == 0
}

// Dominant returns the vocabulary emotion with the highest score. Ties go to
// the earlier vocabulary entry. ok is false for an empty reading.
func (r Reading) Dominant(v Vocabulary) (name string, score float64, ok bool) {
	if len(r.Scores) == 0 {
		return "", 0, false
	}
	for _, e := range v {
		s, present := r.Scores[e]
		if !present {
			continue
		}
		if !ok || s > score {
			name, score, ok = e, s, true
		}
	}
	return name, score, ok
}

// Ranked is a name/score pair as listed by Ranked.
type Ranked struct {
	Emotion string  `json:"emotion"`
	Score   float64 `json:"score"`
}

// Ranked lists all scores of the reading highest first, names breaking ties.
func (r Reading) Ranked() []Ranked {
	out := make([]Ranked, 0, len(r.Scores))
	for k, s := range r.Scores {
		out = append(out, Ranked{Emotion: k, Score: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Emotion < out[j].Emotion
	})
	return out
}

func (r Reading) clone() Reading {
	c := Reading{}
	if r.Scores != nil {
		c.Scores = make(map[string]float64, len(r.Scores))
		for k, v := range r.Scores {
			c.Scores[k] = v
		}
	}
	if r.Face != nil {
		f := *r.Face
		c.Face = &f
	}
	return c
}
