package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRun(t *testing.T) {
	a := NewRun()
	b := NewRun()

	assert.True(t, strings.HasPrefix(a, RunPrefix+"_"))
	assert.NotEqual(t, a, b)
}

func TestDigest(t *testing.T) {
	assert.Equal(t, Digest("<html></html>"), Digest("<html></html>"))
	assert.NotEqual(t, Digest("<html></html>"), Digest("<html> </html>"))
	assert.Len(t, Digest("x"), 32)
}
