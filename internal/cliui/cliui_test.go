package cliui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	bar := ProgressBar(2, 4, 8)
	assert.Equal(t, 4, strings.Count(bar, "█"))
	assert.Equal(t, 4, strings.Count(bar, "░"))
	assert.True(t, strings.HasSuffix(bar, "2/4"))
}

func TestProgressBarEmptyList(t *testing.T) {
	bar := ProgressBar(0, 0, 8)
	assert.Equal(t, 0, strings.Count(bar, "█"))
	assert.True(t, strings.HasSuffix(bar, "0/0"))
}

func TestProgressBarNeverOverflows(t *testing.T) {
	bar := ProgressBar(10, 4, 8)
	assert.Equal(t, 8, strings.Count(bar, "█"))
}
