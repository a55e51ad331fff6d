package capture

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/MUHAMMAD-FARMAN/Trusai/clients"
	"github.com/MUHAMMAD-FARMAN/Trusai/emotion"
)

var (
	// ErrAcquisition wraps every failure to obtain the camera.
	ErrAcquisition = errors.New("camera acquisition failed")
	// ErrNotIdle is returned by Start on a loop that was already started.
	ErrNotIdle = errors.New("capture loop already started")
	// ErrStopped is returned by Start when Stop arrived while the camera was
	// being acquired. The camera has been released again.
	ErrStopped = errors.New("capture loop stopped during acquisition")
)

type State int32

const (
	Idle State = iota
	CameraAcquiring
	Streaming
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case CameraAcquiring:
		return "camera_acquiring"
	case Streaming:
		return "streaming"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Detector submits one encoded frame to the facial inference service.
type Detector interface {
	DetectEmotion(ctx context.Context, url string, jpeg []byte) (*clients.DetectResp, error)
}

// Config holds the capture cadence and inference parameters.
type Config struct {
	Interval       time.Duration
	Reference      emotion.Size
	JPEGQuality    int
	InferenceURL   string
	RequestTimeout time.Duration
	Vocabulary     emotion.Vocabulary
}

func DefaultConfig() Config {
	return Config{
		Interval:       time.Second,
		Reference:      emotion.Size{Width: 640, Height: 480},
		JPEGQuality:    90,
		InferenceURL:   "http://localhost:5000",
		RequestTimeout: 10 * time.Second,
		Vocabulary:     emotion.DefaultVocabulary,
	}
}

// Stats counts what happened to the ticks of a loop.
type Stats struct {
	Ticks    uint64 `json:"ticks"`
	Recorded uint64 `json:"recorded"`
	Dropped  uint64 `json:"dropped"`
}

// Loop periodically captures a frame, submits it for inference and records
// the first detection as a facial reading. Each submission runs on its own
// goroutine so a slow request never delays the next tick.
type Loop struct {
	cfg   Config
	cam   Camera
	det   Detector
	store *emotion.Store
	geom  *emotion.Geometry
	log   logrus.FieldLogger

	mu       sync.Mutex
	state    State
	stream   Stream
	cancel   context.CancelFunc
	done     chan struct{}
	released chan struct{}

	inflight sync.WaitGroup
	ticks    atomic.Uint64
	recorded atomic.Uint64
	dropped  atomic.Uint64
}

func New(cfg Config, cam Camera, det Detector, store *emotion.Store, log logrus.FieldLogger) *Loop {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if len(cfg.Vocabulary) == 0 {
		cfg.Vocabulary = emotion.DefaultVocabulary
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Loop{
		cfg:   cfg,
		cam:   cam,
		det:   det,
		store: store,
		geom:  emotion.NewGeometry(cfg.Reference),
		log:   log.WithField("component", "capture"),
	}
}

func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Loop) Geometry() *emotion.Geometry { return l.geom }

func (l *Loop) Stats() Stats {
	return Stats{Ticks: l.ticks.Load(), Recorded: l.recorded.Load(), Dropped: l.dropped.Load()}
}

// Start acquires the camera and begins ticking. On acquisition failure the
// loop returns to Idle and the error wraps ErrAcquisition. A Stop that lands
// during acquisition makes Start return ErrStopped. Cancelling ctx stops the
// loop as Stop does.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.state != Idle {
		l.mu.Unlock()
		return ErrNotIdle
	}
	l.state = CameraAcquiring
	l.mu.Unlock()

	stream, err := l.cam.Acquire(ctx)
	if err != nil {
		l.log.WithError(err).Error("camera unavailable")
		l.mu.Lock()
		if l.state == CameraAcquiring {
			l.state = Idle
		}
		l.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrAcquisition, err)
	}

	l.mu.Lock()
	if l.state != CameraAcquiring {
		l.mu.Unlock()
		stream.Stop()
		l.log.Info("stopped while acquiring, camera released")
		return ErrStopped
	}
	runCtx, cancel := context.WithCancel(ctx)
	l.stream, l.cancel = stream, cancel
	l.done, l.released = make(chan struct{}), make(chan struct{})
	l.state = Streaming
	done := l.done
	l.mu.Unlock()

	l.log.WithField("interval", l.cfg.Interval).Info("streaming")

	go l.watchMetadata(runCtx, stream)
	go l.run(runCtx, stream, done)
	go func() {
		<-runCtx.Done()
		l.Stop()
	}()
	return nil
}

// Stop cancels future ticks and releases the camera. Requests already in
// flight are left to finish; their readings are still recorded. Concurrent
// callers all return once the camera has been released.
func (l *Loop) Stop() {
	l.mu.Lock()
	prev := l.state
	l.state = Stopped
	stream, cancel, done, released := l.stream, l.cancel, l.done, l.released
	l.stream = nil
	l.mu.Unlock()

	if prev != Streaming {
		if released != nil {
			<-released
		}
		return
	}
	cancel()
	<-done
	stream.Stop()
	close(released)
	l.log.WithFields(logrus.Fields{
		"ticks":    l.ticks.Load(),
		"recorded": l.recorded.Load(),
		"dropped":  l.dropped.Load(),
	}).Info("camera released")
}

// Wait blocks until every submitted request has settled. Call it after Stop.
func (l *Loop) Wait() {
	l.inflight.Wait()
}

// Overlay returns the face box of the current facial reading scaled to the
// display size. ok is false when there is no box to draw.
func (l *Loop) Overlay() (emotion.FaceBounds, bool) {
	r := l.store.Read().FacialCurrent
	if r.Face == nil {
		return emotion.FaceBounds{}, false
	}
	return l.geom.Rescale(*r.Face), true
}

func (l *Loop) run(ctx context.Context, stream Stream, done chan struct{}) {
	defer close(done)
	t := time.NewTicker(l.cfg.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.tick(ctx, stream)
		}
	}
}

func (l *Loop) tick(ctx context.Context, stream Stream) {
	n := l.ticks.Add(1)
	log := l.log.WithField("tick", n)

	img, err := stream.Frame()
	if err != nil {
		l.drop(log, err)
		return
	}
	ref := l.geom.Reference()
	jpg, err := EncodeFrame(img, int(ref.Width), int(ref.Height), l.cfg.JPEGQuality)
	if err != nil {
		l.drop(log, err)
		return
	}

	base := context.WithoutCancel(ctx)
	l.inflight.Add(1)
	go func() {
		defer l.inflight.Done()
		reqCtx := base
		if l.cfg.RequestTimeout > 0 {
			var cancel context.CancelFunc
			reqCtx, cancel = context.WithTimeout(reqCtx, l.cfg.RequestTimeout)
			defer cancel()
		}
		resp, err := l.det.DetectEmotion(reqCtx, l.cfg.InferenceURL, jpg)
		if err == nil && (resp == nil || len(resp.Results) == 0) {
			err = clients.ErrNoFaces
		}
		if err != nil {
			l.drop(log, err)
			return
		}
		r := resp.Results[0].Reading()
		l.store.RecordFacial(r)
		l.recorded.Add(1)
		if name, score, ok := r.Dominant(l.cfg.Vocabulary); ok {
			log.WithFields(logrus.Fields{"dominant": name, "score": score}).Debug("facial reading recorded")
		}
	}()
}

func (l *Loop) drop(log logrus.FieldLogger, err error) {
	l.dropped.Add(1)
	log.WithError(err).Debug("tick dropped")
}

func (l *Loop) watchMetadata(ctx context.Context, stream Stream) {
	meta := stream.Metadata()
	for {
		select {
		case <-ctx.Done():
			return
		case sz, ok := <-meta:
			if !ok {
				return
			}
			l.geom.SetDisplay(sz)
			l.log.WithFields(logrus.Fields{"width": sz.Width, "height": sz.Height}).Info("video metadata loaded")
		}
	}
}
