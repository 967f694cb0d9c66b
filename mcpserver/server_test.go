package mcpserver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richardwooding/feedly-mcp/model"
)

func TestNewServer(t *testing.T) {
	fake := &fakeFeedly{}

	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:   "valid stdio",
			config: Config{Reader: fake, Marker: fake, Transport: model.StdioTransport},
		},
		{
			name:   "valid http with sse",
			config: Config{Reader: fake, Marker: fake, Transport: model.HTTPWithSSETransport},
		},
		{
			name:    "missing transport",
			config:  Config{Reader: fake, Marker: fake},
			wantErr: "transport must be specified",
		},
		{
			name:    "missing reader",
			config:  Config{Marker: fake, Transport: model.StdioTransport},
			wantErr: "StreamReader is required",
		},
		{
			name:    "missing marker",
			config:  Config{Reader: fake, Transport: model.StdioTransport},
			wantErr: "MarkerWriter is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, err := NewServer(tt.config)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, srv)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, srv)
			assert.Equal(t, tt.config.Transport, srv.transport)
		})
	}
}

func TestGenerateSessionID(t *testing.T) {
	first := generateSessionID()
	second := generateSessionID()

	assert.True(t, strings.HasPrefix(first, "feedly-mcp-session-"))
	assert.NotEqual(t, first, second)
}
