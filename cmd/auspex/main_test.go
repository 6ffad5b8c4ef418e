package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr bool
	}{
		{name: "explicit range", from: "2024-01-01", to: "2024-06-30"},
		{name: "single day", from: "2024-01-01", to: "2024-01-01"},
		{name: "default to with today as from", from: time.Now().UTC().Format("2006-01-02")},
		{name: "missing from", wantErr: true},
		{name: "malformed from", from: "01/01/2024", wantErr: true},
		{name: "malformed to", from: "2024-01-01", to: "June 30", wantErr: true},
		{name: "to before from", from: "2024-06-30", to: "2024-01-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := parseDateRange(tt.from, tt.to)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.False(t, to.Before(from))
		})
	}
}
