package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/MUHAMMAD-FARMAN/Trusai/emotion"
	"github.com/MUHAMMAD-FARMAN/Trusai/projection"
)

// OverlayFunc reports the current face box in display coordinates.
type OverlayFunc func() (emotion.FaceBounds, bool)

// Handler serves the chart page at /, the raw views at /views.json and a
// single emotion series at /series. All are projected from a fresh snapshot
// of store on every request.
type Handler struct {
	store   *emotion.Store
	opts    Options
	overlay OverlayFunc
	log     logrus.FieldLogger
	mux     *http.ServeMux
}

func NewHandler(store *emotion.Store, o Options, overlay OverlayFunc, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	h := &Handler{store: store, opts: o, overlay: overlay, log: log.WithField("component", "report"), mux: http.NewServeMux()}
	h.mux.HandleFunc("/views.json", h.handleViews)
	h.mux.HandleFunc("/series", h.handleSeries)
	h.mux.HandleFunc("/", h.handleCharts)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleCharts(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	var buf bytes.Buffer
	if err := Render(&buf, h.opts, h.store.Read()); err != nil {
		h.log.WithError(err).Error("chart render failed")
		h.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handleViews(w http.ResponseWriter, r *http.Request) {
	v := h.opts.Views(h.store.Read())
	if h.overlay != nil {
		if box, ok := h.overlay(); ok {
			v.Overlay = &box
		}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.WithError(err).Warn("views encode failed")
	}
}

// handleSeries answers /series?modality=speech&emotion=happy.
func (h *Handler) handleSeries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	m, ok := emotion.ParseModality(q.Get("modality"))
	if !ok {
		h.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("unknown modality %q", q.Get("modality")))
		return
	}
	e := q.Get("emotion")
	if !h.opts.vocabulary().Contains(e) {
		h.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("emotion %q is not in the vocabulary", e))
		return
	}
	s := projection.Series{
		Label:    projection.Label(m, e),
		Modality: m,
		Emotion:  e,
		Points:   projection.TimeSeries(h.store.Read(), m, e),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s); err != nil {
		h.log.WithError(err).Warn("series encode failed")
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
