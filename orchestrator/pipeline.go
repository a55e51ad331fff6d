package orchestrator

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/MUHAMMAD-FARMAN/Trusai/capture"
	"github.com/MUHAMMAD-FARMAN/Trusai/clients"
	cfg "github.com/MUHAMMAD-FARMAN/Trusai/config"
	"github.com/MUHAMMAD-FARMAN/Trusai/emotion"
	"github.com/MUHAMMAD-FARMAN/Trusai/report"
	"github.com/MUHAMMAD-FARMAN/Trusai/speech"
)

// Session owns the emotion store for one analysis session and wires it into
// the facial capture loop, the speech feed and the chart report.
type Session struct {
	ID string

	cfg   *cfg.Root
	log   *logrus.Entry
	http  *clients.HTTP
	store *emotion.Store
	loop  *capture.Loop
	feed  *speech.Feed
}

func NewSession(c *cfg.Root, cam capture.Camera, log logrus.FieldLogger) *Session {
	if log == nil {
		log = logrus.StandardLogger()
	}
	id := uuid.NewString()
	entry := log.WithFields(logrus.Fields{"session": id, "name": c.Session.Name})
	h := clients.NewHTTP(cfg.DurSeconds(c.Services.TimeoutSeconds))
	store := emotion.NewStore()
	return &Session{
		ID:    id,
		cfg:   c,
		log:   entry,
		http:  h,
		store: store,
		loop:  capture.New(captureConfig(c), cam, h, store, entry),
		feed:  speech.NewFeed(store, entry),
	}
}

func (s *Session) Store() *emotion.Store { return s.store }

func (s *Session) Loop() *capture.Loop { return s.loop }

func (s *Session) reportOptions() report.Options {
	return report.Options{
		Title:      s.cfg.Session.Name,
		Vocabulary: emotion.Vocabulary(s.cfg.Vocabulary),
		AssetsHost: s.cfg.Report.AssetsHost,
	}
}

// Run streams until ctx ends, then stops the camera, lets in-flight requests
// settle and writes the report. A camera that cannot be acquired is logged and
// the session carries on with the speech modality only.
func (s *Session) Run(ctx context.Context, opts RunOptions) (*Summary, error) {
	sum := &Summary{SessionID: s.ID, StartedAt: time.Now()}

	listen := s.cfg.Report.Listen
	if opts.Listen != "" {
		listen = opts.Listen
	}
	var ln net.Listener
	if listen != "" {
		var err error
		if ln, err = net.Listen("tcp", listen); err != nil {
			return nil, err
		}
	}

	var lines <-chan string
	if opts.Transcripts != "" {
		if s.cfg.Services.Emotion.URL == "" {
			s.log.Warn("transcripts given but services.emotion.url is empty, skipping")
		} else {
			var err error
			lines, err = replayLines(ctx, opts.Transcripts, cfg.DurMillis(s.cfg.Capture.IntervalMS))
			if err != nil {
				if ln != nil {
					ln.Close()
				}
				return nil, err
			}
		}
	}

	if err := s.loop.Start(ctx); err != nil {
		sum.CameraError = err.Error()
	}

	var wg sync.WaitGroup
	if opts.Speech != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.feed.Consume(ctx, opts.Speech); err != nil && !errors.Is(err, context.Canceled) {
				s.log.WithError(err).Warn("speech feed ended")
			}
		}()
	}
	if lines != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.feed.Transcripts(ctx, s.http, s.cfg.Services.Emotion.URL, lines); err != nil && !errors.Is(err, context.Canceled) {
				s.log.WithError(err).Warn("transcript feed ended")
			}
		}()
	}

	var srv *http.Server
	if ln != nil {
		srv = &http.Server{
			Handler:           report.NewHandler(s.store, s.reportOptions(), s.loop.Overlay, s.log),
			ReadHeaderTimeout: 5 * time.Second,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
				s.log.WithError(err).Error("report server failed")
			}
		}()
		s.log.WithField("addr", ln.Addr().String()).Info("serving charts")
	}

	<-ctx.Done()

	s.loop.Stop()
	s.loop.Wait()
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.WithError(err).Warn("report server shutdown")
		}
		cancel()
	}
	wg.Wait()

	snap := s.store.Read()
	sum.EndedAt = time.Now()
	sum.Capture = s.loop.Stats()
	sum.FacialReadings = len(snap.FacialHistory)
	sum.SpeechReadings = len(snap.SpeechHistory)

	outputs := s.cfg.Session.Outputs
	if opts.Outputs != "" {
		outputs = opts.Outputs
	}
	if outputs != "" {
		dir, err := persist(outputs, *sum, snap, s.reportOptions())
		if err != nil {
			return sum, err
		}
		sum.OutputDir = dir
	}

	s.log.WithFields(logrus.Fields{
		"facial": sum.FacialReadings,
		"speech": sum.SpeechReadings,
		"output": sum.OutputDir,
	}).Info("session finished")
	return sum, nil
}
