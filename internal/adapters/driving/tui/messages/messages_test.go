package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewMenu, "menu"},
		{ViewSearch, "search"},
		{ViewDocuments, "documents"},
		{ViewDocContent, "doc_content"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewType_Distinct(t *testing.T) {
	seen := map[ViewType]bool{}
	for _, v := range []ViewType{ViewMenu, ViewSearch, ViewDocuments, ViewDocContent, ViewHelp} {
		assert.False(t, seen[v], "duplicate view type %s", v)
		seen[v] = true
	}
}

func TestDocumentSelected_CarriesReturnView(t *testing.T) {
	msg := DocumentSelected{ID: 12, From: ViewDocuments}

	assert.Equal(t, int64(12), msg.ID)
	assert.Equal(t, "documents", msg.From.String())
}
