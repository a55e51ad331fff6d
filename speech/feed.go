package speech

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/MUHAMMAD-FARMAN/Trusai/emotion"
)

// Analyzer scores a piece of transcript text.
type Analyzer interface {
	Emotion(ctx context.Context, url, text string) (emotion.Reading, error)
}

// Feed is the speech-side writer of the store. The voice transport hands its
// readings to Deliver; transcripts can be scored through Transcripts.
type Feed struct {
	store *emotion.Store
	log   logrus.FieldLogger
}

func NewFeed(store *emotion.Store, log logrus.FieldLogger) *Feed {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Feed{store: store, log: log.WithField("component", "speech")}
}

// Deliver records r as the current speech reading.
func (f *Feed) Deliver(r emotion.Reading) {
	f.store.RecordSpeech(r)
}

// Consume delivers readings from ch until it is closed or ctx ends.
func (f *Feed) Consume(ctx context.Context, ch <-chan emotion.Reading) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r, ok := <-ch:
			if !ok {
				return nil
			}
			f.Deliver(r)
		}
	}
}

// Transcripts scores every non-blank line from lines with the text emotion
// service at url. Lines the service fails on, or returns no scores for, are
// logged and skipped.
func (f *Feed) Transcripts(ctx context.Context, a Analyzer, url string, lines <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			r, err := a.Emotion(ctx, url, line)
			if err != nil {
				f.log.WithError(err).Warn("transcript scoring failed")
				continue
			}
			if r.Empty() {
				f.log.Warn("transcript scored without emotions")
				continue
			}
			f.Deliver(r)
			f.log.WithField("top", r.Ranked()[0].Emotion).Debug("speech reading recorded")
		}
	}
}
