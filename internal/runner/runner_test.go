package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "ab...(truncated)", Truncate("abcdef", 2))
	long := strings.Repeat("x", 9<<10)
	assert.Len(t, Truncate(long, 8<<10), 8<<10+len("...(truncated)"))
}
