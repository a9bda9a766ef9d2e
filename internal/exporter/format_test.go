package exporter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, 3, 7, 15, 4, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-07", formatDate(&d))
	assert.Equal(t, "", formatDate(nil))
}

func TestFormatScore(t *testing.T) {
	seven := 7
	assert.Equal(t, "7", formatScore(&seven))
	assert.Equal(t, "", formatScore(nil))
}
