package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReferenceDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "valid date",
			input: "2024-02-21",
			want:  time.Date(2024, 2, 21, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "wrong format",
			input:   "02/21/2024",
			wantErr: true,
		},
		{
			name:    "not a date",
			input:   "soon",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseReferenceDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseReferenceDateEmptyMeansNow(t *testing.T) {
	before := time.Now()
	got, err := parseReferenceDate("")
	require.NoError(t, err)
	assert.WithinDuration(t, before, got, 5*time.Second)
}
