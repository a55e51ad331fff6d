package orchestrator

import (
	"bufio"
	"context"
	"os"
	"time"

	"github.com/MUHAMMAD-FARMAN/Trusai/capture"
	cfg "github.com/MUHAMMAD-FARMAN/Trusai/config"
	"github.com/MUHAMMAD-FARMAN/Trusai/emotion"
)

func captureConfig(c *cfg.Root) capture.Config {
	cc := capture.DefaultConfig()
	cc.Interval = cfg.DurMillis(c.Capture.IntervalMS)
	cc.Reference = emotion.Size{Width: float64(c.Capture.ReferenceWidth), Height: float64(c.Capture.ReferenceHeight)}
	if c.Capture.JPEGQuality > 0 {
		cc.JPEGQuality = c.Capture.JPEGQuality
	}
	cc.InferenceURL = c.Services.Inference.URL
	cc.RequestTimeout = cfg.DurSeconds(c.Services.TimeoutSeconds)
	cc.Vocabulary = emotion.Vocabulary(c.Vocabulary)
	return cc
}

// replayLines sends the lines of path on the returned channel, one per pace,
// and closes it at EOF or when ctx ends.
func replayLines(ctx context.Context, path string, pace time.Duration) (<-chan string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	out := make(chan string)
	go func() {
		defer close(out)
		defer f.Close()
		t := time.NewTicker(pace)
		defer t.Stop()
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			select {
			case <-ctx.Done():
				return
			case out <- sc.Text():
			}
		}
	}()
	return out, nil
}
