package orchestrator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/MUHAMMAD-FARMAN/Trusai/emotion"
	"github.com/MUHAMMAD-FARMAN/Trusai/report"
)

// PersistBundle is the JSON written next to the rendered report.
// It is an export only; sessions never read it back.
type PersistBundle struct {
	Summary     Summary          `json:"summary"`
	GeneratedAt time.Time        `json:"generated_at"`
	Snapshot    emotion.Snapshot `json:"snapshot"`
	Views       report.Views     `json:"views"`
}

func mkSessionDir(outputsRoot, sessionID string) (string, error) {
	ts := time.Now().Format("20060102-150405")
	short := sessionID
	if len(short) > 8 {
		short = short[:8]
	}
	dir := filepath.Join(outputsRoot, "session_"+ts+"_"+short)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func persist(outputsRoot string, sum Summary, snap emotion.Snapshot, o report.Options) (outDir string, err error) {
	outDir, err = mkSessionDir(outputsRoot, sum.SessionID)
	if err != nil {
		return "", err
	}
	sum.OutputDir = outDir

	htmlPath := filepath.Join(outDir, "report.html")
	f, err := os.Create(htmlPath)
	if err != nil {
		return "", err
	}
	if err = report.Render(f, o, snap); err != nil {
		f.Close()
		return "", err
	}
	if err = f.Close(); err != nil {
		return "", err
	}

	bundle := PersistBundle{
		Summary:     sum,
		GeneratedAt: time.Now(),
		Snapshot:    snap,
		Views:       o.Views(snap),
	}
	if err = writeJSON(filepath.Join(outDir, "snapshot.json"), bundle); err != nil {
		return "", err
	}
	return outDir, nil
}
