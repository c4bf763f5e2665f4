package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeFromRows(t *testing.T) {
	assert.Equal(t, OutcomeNotFound, OutcomeFromRows(0))
	assert.Equal(t, OutcomeApplied, OutcomeFromRows(1))
	assert.Equal(t, OutcomeApplied, OutcomeFromRows(3))
}

func TestMutationResult_Found(t *testing.T) {
	assert.True(t, MutationResult{Username: "ana", Outcome: OutcomeApplied}.Found())
	assert.False(t, MutationResult{Username: "ana", Outcome: OutcomeNotFound}.Found())
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		in    time.Time
		naive bool
		want  string
	}{
		{
			name: "whole seconds",
			in:   time.Date(2024, 3, 5, 9, 7, 1, 0, time.UTC),
			want: "2024-03-05 09:07:01+00:00",
		},
		{
			name: "microseconds",
			in:   time.Date(2024, 3, 5, 9, 7, 1, 123456000, time.UTC),
			want: "2024-03-05 09:07:01.123456+00:00",
		},
		{
			name: "microseconds keep six digits",
			in:   time.Date(2024, 3, 5, 9, 7, 1, 500000000, time.UTC),
			want: "2024-03-05 09:07:01.500000+00:00",
		},
		{
			name: "sub-microsecond dropped",
			in:   time.Date(2024, 3, 5, 9, 7, 1, 999, time.UTC),
			want: "2024-03-05 09:07:01+00:00",
		},
		{
			name: "non-utc offset",
			in:   time.Date(2024, 3, 5, 9, 7, 1, 0, time.FixedZone("BRT", -3*3600)),
			want: "2024-03-05 09:07:01-03:00",
		},
		{
			name:  "naive omits offset",
			in:    time.Date(2024, 3, 5, 9, 7, 1, 0, time.UTC),
			naive: true,
			want:  "2024-03-05 09:07:01",
		},
		{
			name:  "naive keeps microseconds",
			in:    time.Date(2024, 3, 5, 9, 7, 1, 42000, time.UTC),
			naive: true,
			want:  "2024-03-05 09:07:01.000042",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimestamp(tt.in, tt.naive))
		})
	}
}
