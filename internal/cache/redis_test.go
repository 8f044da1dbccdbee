package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryKey(t *testing.T) {
	assert.Equal(t, "pickstats:summary:2025", SummaryKey("2025"))
}
