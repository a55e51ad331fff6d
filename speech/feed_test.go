package speech

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MUHAMMAD-FARMAN/Trusai/emotion"
)

type analyzerFunc func(ctx context.Context, url, text string) (emotion.Reading, error)

func (f analyzerFunc) Emotion(ctx context.Context, url, text string) (emotion.Reading, error) {
	return f(ctx, url, text)
}

func TestConsume(t *testing.T) {
	store := emotion.NewStore()
	store.RecordFacial(emotion.Reading{Scores: map[string]float64{"fear": 0.2}})
	logger, _ := test.NewNullLogger()
	f := NewFeed(store, logger)

	ch := make(chan emotion.Reading, 2)
	ch <- emotion.Reading{Scores: map[string]float64{"happy": 0.4}}
	ch <- emotion.Reading{Scores: map[string]float64{"sad": 0.9}}
	close(ch)

	require.NoError(t, f.Consume(context.Background(), ch))

	snap := store.Read()
	require.Len(t, snap.SpeechHistory, 2)
	assert.Equal(t, 0.9, snap.SpeechCurrent.Score("sad"))
	assert.Len(t, snap.FacialHistory, 1)
}

func TestConsumeStopsOnCancel(t *testing.T) {
	logger, _ := test.NewNullLogger()
	f := NewFeed(emotion.NewStore(), logger)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, f.Consume(ctx, make(chan emotion.Reading)), context.Canceled)
}

func TestTranscripts(t *testing.T) {
	store := emotion.NewStore()
	logger, hook := test.NewNullLogger()
	f := NewFeed(store, logger)

	var seen []string
	a := analyzerFunc(func(ctx context.Context, url, text string) (emotion.Reading, error) {
		assert.Equal(t, "http://emo", url)
		seen = append(seen, text)
		switch text {
		case "boom":
			return emotion.Reading{}, errors.New("emotion 500 Internal Server Error: boom")
		case "...":
			return emotion.Reading{Scores: map[string]float64{}}, nil
		}
		return emotion.Reading{Scores: map[string]float64{"happy": 0.6}}, nil
	})

	lines := make(chan string, 5)
	lines <- "hello there"
	lines <- "   "
	lines <- "boom"
	lines <- "..."
	lines <- "bye now"
	close(lines)

	require.NoError(t, f.Transcripts(context.Background(), a, "http://emo", lines))

	assert.Equal(t, []string{"hello there", "boom", "...", "bye now"}, seen)
	snap := store.Read()
	require.Len(t, snap.SpeechHistory, 2)
	assert.Equal(t, 0.6, snap.SpeechCurrent.Score("happy"))

	require.Len(t, hook.Entries, 2)
	assert.Equal(t, "transcript scoring failed", hook.Entries[0].Message)
	assert.Equal(t, "transcript scored without emotions", hook.Entries[1].Message)
}
