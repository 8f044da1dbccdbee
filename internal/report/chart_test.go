package report

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderChart(&buf, "2025", sampleRows()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), "expected PNG output")
}

func TestRenderChart_NoData(t *testing.T) {
	var buf bytes.Buffer
	err := RenderChart(&buf, "2025", nil)
	require.ErrorIs(t, err, ErrNoChartData)
	assert.Zero(t, buf.Len())
}

func TestWriteChart(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteChart(dir, "2025", sampleRows())
	require.NoError(t, err)
	assert.Equal(t, "2025_win_pct.png", ChartName("2025"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
