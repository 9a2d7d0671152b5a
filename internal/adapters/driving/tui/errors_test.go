package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	assert.NotEqual(t, ErrMissingSearchService.Error(), ErrInvalidPorts.Error())
}

func TestErrors_Messages(t *testing.T) {
	assert.Contains(t, ErrMissingSearchService.Error(), "search service")
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
