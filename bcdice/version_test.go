package bcdice

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCompatibility(t *testing.T) {
	tests := []struct {
		name       string
		api        string
		minVersion string
		wantErr    error
	}{
		{name: "newer", api: "2.3.1", minVersion: "2.0.0"},
		{name: "equal", api: "2.0.0", minVersion: "2.0.0"},
		{name: "tolerant prefix", api: "v2.1", minVersion: "2"},
		{name: "no minimum", api: "not-a-version", minVersion: ""},
		{name: "older", api: "1.9.0", minVersion: "2.0.0", wantErr: ErrIncompatibleAPI},
		{name: "unparsable server version", api: "latest", minVersion: "2.0.0", wantErr: ErrIncompatibleAPI},
		{name: "unparsable minimum", api: "2.0.0", minVersion: "two", wantErr: ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(map[string]fakeResponse{
				"v2/version": {body: map[string]any{"api": tt.api, "bcdice": "3.4.0"}},
			})

			version, err := CheckCompatibility(context.Background(), client, tt.minVersion)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.api, version.API)
		})
	}
}

func TestCheckCompatibilityPropagatesClientError(t *testing.T) {
	transport := &fakeTransport{fallback: errors.New("connection refused")}
	client := NewClientWithTransport(transport, zerolog.Nop())

	_, err := CheckCompatibility(context.Background(), client, "2.0.0")
	assert.True(t, IsCode(err, CodeConnectionError))
}
