package exporter

import (
	"strconv"
	"time"
)

// DateLayout is used for review dates in exported tables.
const DateLayout = "2006-01-02"

// formatDate formats a review date, or "" when absent
func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// formatScore formats a review score, or "" when absent
func formatScore(score *int) string {
	if score == nil {
		return ""
	}
	return strconv.Itoa(*score)
}
