package report

import (
	"github.com/MUHAMMAD-FARMAN/Trusai/emotion"
	"github.com/MUHAMMAD-FARMAN/Trusai/projection"
)

// Views bundles every projection of one snapshot as plain labelled series.
type Views struct {
	Comparison  []projection.Pair   `json:"comparison"`
	FacialRadar []projection.Axis   `json:"facial_radar"`
	SpeechRadar []projection.Axis   `json:"speech_radar"`
	Facial      []projection.Series `json:"facial_series"`
	Speech      []projection.Series `json:"speech_series"`
	Indices     map[string][]int    `json:"indices"`

	// Detected lists the current facial scores highest first.
	Detected []emotion.Ranked `json:"detected"`
	// Overlay is the current face box in display coordinates, if any.
	Overlay *emotion.FaceBounds `json:"overlay,omitempty"`
}

// Views projects snap over the vocabulary the charts are drawn with.
func (o Options) Views(snap emotion.Snapshot) Views {
	return BuildViews(o.vocabulary(), snap)
}

// BuildViews projects snap over v.
func BuildViews(v emotion.Vocabulary, snap emotion.Snapshot) Views {
	return Views{
		Comparison:  projection.Comparison(v, snap),
		FacialRadar: projection.Radar(v, snap, emotion.Facial),
		SpeechRadar: projection.Radar(v, snap, emotion.Speech),
		Facial:      projection.AllSeries(v, snap, emotion.Facial),
		Speech:      projection.AllSeries(v, snap, emotion.Speech),
		Indices: map[string][]int{
			emotion.Facial.String(): projection.Indices(snap, emotion.Facial),
			emotion.Speech.String(): projection.Indices(snap, emotion.Speech),
		},
		Detected: snap.FacialCurrent.Ranked(),
	}
}
