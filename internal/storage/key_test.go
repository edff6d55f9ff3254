package storage

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"Q3 Report FINAL.pdf":   "q3-report-final.pdf",
		"invoice_2026.PDF":      "invoice_2026.pdf",
		"photo (1).png":         "photo--1-.png",
		"../../etc/passwd":      "passwd",
		"résumé.pdf":            "r-sum-.pdf",
		"   ":                   "upload",
		"...":                   "...",
		"":                      "upload",
		"already-clean.webp":    "already-clean.webp",
		"trailing-dashes--.jpg": "trailing-dashes--.jpg",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeFilename(in), "input %q", in)
	}
}

func TestBuildKeyShape(t *testing.T) {
	key := BuildKey("Annual Review.pdf")

	parts := strings.SplitN(key, "/", 2)
	require.Len(t, parts, 2)
	assert.Equal(t, fmt.Sprintf("%d", time.Now().UTC().Year()), parts[0])

	// 36-char uuid, a dash, then the sanitized name.
	require.Greater(t, len(parts[1]), 37)
	_, err := uuid.Parse(parts[1][:36])
	require.NoError(t, err)
	assert.Equal(t, byte('-'), parts[1][36])
	assert.Equal(t, "annual-review.pdf", parts[1][37:])
}

func TestBuildKeyIsUniquePerCall(t *testing.T) {
	assert.NotEqual(t, BuildKey("same.pdf"), BuildKey("same.pdf"))
}
