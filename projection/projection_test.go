package projection

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MUHAMMAD-FARMAN/Trusai/emotion"
)

func reading(kv map[string]float64) emotion.Reading {
	return emotion.Reading{Scores: kv}
}

func TestTimeSeries(t *testing.T) {
	s := emotion.NewStore()
	s.RecordFacial(reading(map[string]float64{"happy": 0.8}))
	s.RecordFacial(reading(map[string]float64{"happy": 0.2}))
	s.RecordSpeech(reading(map[string]float64{"happy": 0.6}))
	snap := s.Read()

	got := TimeSeries(snap, emotion.Facial, "happy")
	want := []Point{{Index: 1, Score: 0.8}, {Index: 2, Score: 0.2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("series mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []Point{{Index: 1, Score: 0}, {Index: 2, Score: 0}}, TimeSeries(snap, emotion.Facial, "fear"))
	assert.Equal(t, []int{1, 2}, Indices(snap, emotion.Facial))
	assert.Equal(t, []int{1}, Indices(snap, emotion.Speech))
}

func TestEmptyStore(t *testing.T) {
	snap := emotion.NewStore().Read()
	v := emotion.DefaultVocabulary

	assert.Empty(t, TimeSeries(snap, emotion.Speech, "happy"))
	assert.Empty(t, Indices(snap, emotion.Facial))

	cmpView := Comparison(v, snap)
	require.Len(t, cmpView, len(v))
	for i, p := range cmpView {
		assert.Equal(t, v[i], p.Emotion)
		assert.Zero(t, p.Facial)
		assert.Zero(t, p.Speech)
	}

	radar := Radar(v, snap, emotion.Speech)
	require.Len(t, radar, len(v))
	for _, a := range radar {
		assert.Zero(t, a.Value)
	}

	for _, series := range AllSeries(v, snap, emotion.Facial) {
		assert.Empty(t, series.Points)
	}
}

func TestComparisonFollowsVocabularyOrder(t *testing.T) {
	s := emotion.NewStore()
	s.RecordFacial(reading(map[string]float64{"surprise": 0.3, "anger": 0.1, "unknown": 9}))
	s.RecordSpeech(reading(map[string]float64{"sad": 0.7}))

	v := emotion.Vocabulary{"anger", "sad", "surprise"}
	got := Comparison(v, s.Read())
	want := []Pair{
		{Emotion: "anger", Facial: 0.1, Speech: 0},
		{Emotion: "sad", Facial: 0, Speech: 0.7},
		{Emotion: "surprise", Facial: 0.3, Speech: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("comparison mismatch (-want +got):\n%s", diff)
	}
}

func TestRadarPassesThroughOutOfRange(t *testing.T) {
	s := emotion.NewStore()
	s.RecordSpeech(reading(map[string]float64{"happy": 1.7, "fear": -0.4}))

	got := Radar(emotion.Vocabulary{"fear", "happy", "neutral"}, s.Read(), emotion.Speech)
	assert.Equal(t, []Axis{
		{Emotion: "fear", Value: -0.4},
		{Emotion: "happy", Value: 1.7},
		{Emotion: "neutral", Value: 0},
	}, got)
}

func TestAllSeriesShareIndexDomain(t *testing.T) {
	s := emotion.NewStore()
	s.RecordSpeech(reading(map[string]float64{"happy": 0.1}))
	s.RecordSpeech(reading(map[string]float64{"sad": 0.4}))
	s.RecordSpeech(reading(nil))

	v := emotion.DefaultVocabulary
	all := AllSeries(v, s.Read(), emotion.Speech)
	require.Len(t, all, len(v))
	for i, series := range all {
		assert.Equal(t, "Speech "+v[i], series.Label)
		require.Len(t, series.Points, 3)
		for j, p := range series.Points {
			assert.Equal(t, j+1, p.Index)
		}
	}
	assert.Equal(t, 0.4, all[5].Points[1].Score)
}

func TestProjectionIsDeterministic(t *testing.T) {
	s := emotion.NewStore()
	s.RecordFacial(reading(map[string]float64{"happy": 0.3, "sad": 0.2}))
	snap := s.Read()
	v := emotion.DefaultVocabulary

	assert.Equal(t, Comparison(v, snap), Comparison(v, snap))
	assert.Equal(t, AllSeries(v, snap, emotion.Facial), AllSeries(v, snap, emotion.Facial))
}
