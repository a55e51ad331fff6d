package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/MUHAMMAD-FARMAN/Trusai/emotion"
)

// --- Text emotion (/detect) ---

type TextReq struct {
	Text string `json:"text"`
}

type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type TextResp struct {
	Emotions        []LabelScore `json:"emotions"`
	DominantEmotion string       `json:"dominant_emotion"`
}

// fold keys the labelled scores by canonical vocabulary names. Labels that
// collide after folding keep the highest score.
func (r *TextResp) fold() emotion.Reading {
	out := emotion.Reading{Scores: make(map[string]float64, len(r.Emotions))}
	for _, e := range r.Emotions {
		k := emotion.Canonical(e.Label)
		if prev, ok := out.Scores[k]; ok && prev >= e.Score {
			continue
		}
		out.Scores[k] = e.Score
	}
	return out
}

// Emotion scores one piece of transcript text and returns it as a speech reading.
func (h *HTTP) Emotion(ctx context.Context, url, text string) (emotion.Reading, error) {
	b, err := json.Marshal(TextReq{Text: text})
	if err != nil {
		return emotion.Reading{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"/detect", bytes.NewReader(b))
	if err != nil {
		return emotion.Reading{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out TextResp
	if err := h.do(req, "emotion", &out); err != nil {
		return emotion.Reading{}, err
	}
	return out.fold(), nil
}
