package clients

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MUHAMMAD-FARMAN/Trusai/emotion"
)

func TestDetectEmotion(t *testing.T) {
	t.Parallel()

	t.Run("uploads frame and decodes first detection", func(t *testing.T) {
		t.Parallel()
		var gotBody []byte
		var gotName string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/detect_emotion", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			f, hdr, err := r.FormFile("image")
			if !assert.NoError(t, err) {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			defer f.Close()
			gotName = hdr.Filename
			gotBody, _ = io.ReadAll(f)
			_, _ = w.Write([]byte(`{"results":[{"emotions":{"happy":0.8,"sad":0.1},"face_coordinates":[10,20,100,120]},{"emotions":{"fear":1}}]}`))
		}))
		defer srv.Close()

		h := NewHTTP(time.Second)
		resp, err := h.DetectEmotion(context.Background(), srv.URL, []byte("jpegbytes"))
		require.NoError(t, err)
		require.Len(t, resp.Results, 2)
		assert.Equal(t, "frame.jpg", gotName)
		assert.Equal(t, []byte("jpegbytes"), gotBody)

		r := resp.Results[0].Reading()
		assert.Equal(t, 0.8, r.Score("happy"))
		require.NotNil(t, r.Face)
		assert.Equal(t, emotion.FaceBounds{10, 20, 100, 120}, *r.Face)
	})

	t.Run("empty results", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results":[]}`))
		}))
		defer srv.Close()

		_, err := NewHTTP(time.Second).DetectEmotion(context.Background(), srv.URL, []byte("x"))
		assert.True(t, errors.Is(err, ErrNoFaces))
	})

	t.Run("non 2xx status", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"No faces detected."}`))
		}))
		defer srv.Close()

		_, err := NewHTTP(time.Second).DetectEmotion(context.Background(), srv.URL, []byte("x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "400")
		assert.Contains(t, err.Error(), "No faces detected.")
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		_, err := NewHTTP(time.Second).DetectEmotion(context.Background(), srv.URL, []byte("x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode")
	})
}

func TestDetectionReadingWithoutCoordinates(t *testing.T) {
	r := Detection{FaceCoordinates: []float64{1, 2}}.Reading()
	assert.Nil(t, r.Face)
	assert.NotNil(t, r.Scores)
	assert.Equal(t, 0.0, r.Score("happy"))
}

func TestEmotion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/detect", r.URL.Path)
		var req TextReq
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "what a lovely day", req.Text)
		_ = json.NewEncoder(w).Encode(TextResp{
			Emotions: []LabelScore{
				{Label: "joy", Score: 0.7},
				{Label: "happiness", Score: 0.4},
				{Label: "sadness", Score: 0.1},
			},
			DominantEmotion: "joy",
		})
	}))
	defer srv.Close()

	r, err := NewHTTP(time.Second).Emotion(context.Background(), srv.URL, "what a lovely day")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"happy": 0.7, "sad": 0.1}, r.Scores)
	assert.Nil(t, r.Face)
}

func TestEmotionServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTP(time.Second).Emotion(context.Background(), srv.URL, "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "model not loaded")
}
