// Package projection turns a store snapshot into chart-ready series. Every
// function is pure: the same snapshot and vocabulary give the same output.
// Emotions missing from a reading read as 0; values are never clamped.
package projection

import (
	"fmt"

	"github.com/MUHAMMAD-FARMAN/Trusai/emotion"
)

// Pair holds the current facial and speech score of one emotion.
type Pair struct {
	Emotion string  `json:"emotion"`
	Facial  float64 `json:"facial"`
	Speech  float64 `json:"speech"`
}

// Comparison pairs the current scores of both modalities in vocabulary order.
func Comparison(v emotion.Vocabulary, snap emotion.Snapshot) []Pair {
	out := make([]Pair, len(v))
	for i, e := range v {
		out[i] = Pair{
			Emotion: e,
			Facial:  snap.FacialCurrent.Score(e),
			Speech:  snap.SpeechCurrent.Score(e),
		}
	}
	return out
}

// Axis is one spoke of a radar view.
type Axis struct {
	Emotion string  `json:"emotion"`
	Value   float64 `json:"value"`
}

// Radar lists the current scores of one modality in vocabulary order.
func Radar(v emotion.Vocabulary, snap emotion.Snapshot, m emotion.Modality) []Axis {
	cur := snap.Current(m)
	out := make([]Axis, len(v))
	for i, e := range v {
		out[i] = Axis{Emotion: e, Value: cur.Score(e)}
	}
	return out
}

// Point is a score at a 1-based history position.
type Point struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// TimeSeries returns one point per reading in the history of m.
func TimeSeries(snap emotion.Snapshot, m emotion.Modality, e string) []Point {
	h := snap.History(m)
	out := make([]Point, len(h))
	for i, r := range h {
		out[i] = Point{Index: i + 1, Score: r.Score(e)}
	}
	return out
}

// Indices is the shared x domain of every series of m: 1..len(history).
func Indices(snap emotion.Snapshot, m emotion.Modality) []int {
	n := len(snap.History(m))
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Series is the time series of one emotion in one modality.
type Series struct {
	Label    string           `json:"label"`
	Modality emotion.Modality `json:"-"`
	Emotion  string           `json:"emotion"`
	Points   []Point          `json:"points"`
}

// AllSeries builds a series per vocabulary emotion for m. All series are
// computed from the same snapshot and so share one index domain.
func AllSeries(v emotion.Vocabulary, snap emotion.Snapshot, m emotion.Modality) []Series {
	out := make([]Series, len(v))
	for i, e := range v {
		out[i] = Series{
			Label:    Label(m, e),
			Modality: m,
			Emotion:  e,
			Points:   TimeSeries(snap, m, e),
		}
	}
	return out
}

// Label names a series, e.g. "Facial happy".
func Label(m emotion.Modality, e string) string {
	switch m {
	case emotion.Facial:
		return "Facial " + e
	case emotion.Speech:
		return "Speech " + e
	}
	return fmt.Sprintf("%s %s", m, e)
}
