package orchestrator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MUHAMMAD-FARMAN/Trusai/emotion"
	"github.com/MUHAMMAD-FARMAN/Trusai/report"
)

func TestPersistUsesChartVocabulary(t *testing.T) {
	store := emotion.NewStore()
	store.RecordFacial(emotion.Reading{Scores: map[string]float64{"happy": 0.4}})

	dir, err := persist(t.TempDir(), Summary{SessionID: "0123456789abcdef"}, store.Read(), report.Options{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(dir), "session_"))
	assert.True(t, strings.HasSuffix(dir, "_01234567"))

	html, err := os.ReadFile(filepath.Join(dir, "report.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "Facial surprise")

	raw, err := os.ReadFile(filepath.Join(dir, "snapshot.json"))
	require.NoError(t, err)
	var bundle PersistBundle
	require.NoError(t, json.Unmarshal(raw, &bundle))
	assert.Equal(t, dir, bundle.Summary.OutputDir)
	require.Len(t, bundle.Views.Comparison, len(emotion.DefaultVocabulary))
	assert.Equal(t, 0.4, bundle.Views.Comparison[3].Facial)
	assert.Len(t, bundle.Views.Facial, len(emotion.DefaultVocabulary))
}
