package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings_Valid(t *testing.T) {
	s := DefaultSettings()
	assert.NoError(t, s.Validate())
	assert.Equal(t, 30, s.Search.DefaultLimit)
	assert.Equal(t, 50, s.Search.FallbackLimit)
	assert.Equal(t, 0, s.Search.SnippetChars)
	assert.Equal(t, 400, s.Search.FallbackSnippetChars)
	assert.Equal(t, ":8000", s.HTTP.Addr)
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero limit", func(s *Settings) { s.Search.DefaultLimit = 0 }},
		{"zero fallback limit", func(s *Settings) { s.Search.FallbackLimit = 0 }},
		{"negative snippet", func(s *Settings) { s.Search.SnippetChars = -1 }},
		{"zero upload size", func(s *Settings) { s.HTTP.MaxUploadMB = 0 }},
		{"zero watch rate", func(s *Settings) { s.Watch.RatePerSec = 0 }},
		{"bad log format", func(s *Settings) { s.LogFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidInput)
		})
	}
}
