package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// connect runs s over in-memory transports and returns a client session.
func connect(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	serverSession, err := s.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func toolNames(t *testing.T, session *mcp.ClientSession) []string {
	t.Helper()
	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	return names
}

func TestNewServer_Validation(t *testing.T) {
	_, err := NewServer(nil)
	require.ErrorIs(t, err, ErrMissingSearchService)

	_, err = NewServer(&Ports{Document: &mockDocumentService{}})
	require.ErrorIs(t, err, ErrMissingSearchService)
}

func TestNewServer_SearchOnlyTools(t *testing.T) {
	s, err := NewServer(&Ports{Search: &mockSearchService{}})
	require.NoError(t, err)
	assert.NotNil(t, s.Handler())

	assert.ElementsMatch(t, []string{"search"}, toolNames(t, connect(t, s)))
}

func TestNewServer_DocumentTools(t *testing.T) {
	s, err := NewServer(&Ports{Search: &mockSearchService{}, Document: &mockDocumentService{}})
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]string{"search", "list_documents", "get_document"},
		toolNames(t, connect(t, s)))
}

func TestServer_RunHTTPStopsOnCancel(t *testing.T) {
	s, err := NewServer(&Ports{Search: &mockSearchService{}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.RunHTTP(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunHTTP did not return after cancel")
	}
}

func TestPorts_Validate(t *testing.T) {
	var nilPorts *Ports
	assert.ErrorIs(t, nilPorts.Validate(), ErrMissingSearchService)
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingSearchService)
	assert.NoError(t, (&Ports{Search: &mockSearchService{}}).Validate())
}
