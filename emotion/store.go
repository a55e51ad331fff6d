package emotion

import "sync"

// Store holds the full, append-only history of both modalities for one session.
// It is built once per session and handed to every producer and reader.
// The current reading of a modality is always the last entry of its history.
type Store struct {
	mu      sync.RWMutex
	history [2][]Reading
}

func NewStore() *Store {
	return &Store{}
}

// RecordFacial makes r the current facial reading and appends it to the facial history.
func (s *Store) RecordFacial(r Reading) { s.Record(Facial, r) }

// RecordSpeech makes r the current speech reading and appends it to the speech history.
func (s *Store) RecordSpeech(r Reading) { s.Record(Speech, r) }

// Record appends r to the history of m. Unknown modalities are ignored.
func (s *Store) Record(m Modality, r Reading) {
	if m != Facial && m != Speech {
		return
	}
	r = r.clone()
	s.mu.Lock()
	s.history[m] = append(s.history[m], r)
	s.mu.Unlock()
}

// Len returns the number of readings recorded for m.
func (s *Store) Len(m Modality) int {
	if m != Facial && m != Speech {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history[m])
}

// Snapshot is a point-in-time view of the store. Histories are prefixes of the
// live sequences; callers must treat them as read-only.
type Snapshot struct {
	FacialCurrent Reading   `json:"facial_current"`
	SpeechCurrent Reading   `json:"speech_current"`
	FacialHistory []Reading `json:"facial_history"`
	SpeechHistory []Reading `json:"speech_history"`
}

// Read returns a snapshot of both streams.
func (s *Store) Read() Snapshot {
	s.mu.RLock()
	f, sp := s.history[Facial], s.history[Speech]
	s.mu.RUnlock()

	// Entries below len are never written again, so the capped slices can be
	// shared with readers without copying.
	snap := Snapshot{
		FacialHistory: f[:len(f):len(f)],
		SpeechHistory: sp[:len(sp):len(sp)],
	}
	if n := len(f); n > 0 {
		snap.FacialCurrent = f[n-1]
	}
	if n := len(sp); n > 0 {
		snap.SpeechCurrent = sp[n-1]
	}
	return snap
}

// Current returns the latest reading of m, or an empty Reading.
func (sn Snapshot) Current(m Modality) Reading {
	switch m {
	case Facial:
		return sn.FacialCurrent
	case Speech:
		return sn.SpeechCurrent
	}
	return Reading{}
}

// History returns the recorded readings of m in arrival order.
func (sn Snapshot) History(m Modality) []Reading {
	switch m {
	case Facial:
		return sn.FacialHistory
	case Speech:
		return sn.SpeechHistory
	}
	return nil
}
