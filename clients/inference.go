package clients

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/MUHAMMAD-FARMAN/Trusai/emotion"
)

// --- Facial inference (/detect_emotion) ---

// ErrNoFaces is returned when the service answers without any detection.
var ErrNoFaces = errors.New("no faces detected")

type Detection struct {
	Emotions        map[string]float64 `json:"emotions"`
	FaceCoordinates []float64          `json:"face_coordinates"`
}

type DetectResp struct {
	Results []Detection `json:"results"`
}

// Reading converts a detection into a facial reading. Coordinates are kept
// only when all four values are present.
func (d Detection) Reading() emotion.Reading {
	r := emotion.Reading{Scores: d.Emotions}
	if r.Scores == nil {
		r.Scores = map[string]float64{}
	}
	if len(d.FaceCoordinates) >= 4 {
		var b emotion.FaceBounds
		copy(b[:], d.FaceCoordinates[:4])
		r.Face = &b
	}
	return r
}

// DetectEmotion uploads one JPEG frame as the multipart file "image" and
// returns the decoded detections. An empty result list yields ErrNoFaces.
func (h *HTTP) DetectEmotion(ctx context.Context, url string, jpeg []byte) (*DetectResp, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("image", "frame.jpg")
	if err != nil {
		return nil, err
	}
	if _, err = fw.Write(jpeg); err != nil {
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"/detect_emotion", &b)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out DetectResp
	if err := h.do(req, "detect_emotion", &out); err != nil {
		return nil, err
	}
	if len(out.Results) == 0 {
		return nil, ErrNoFaces
	}
	return &out, nil
}
