package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateOf(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "drops the clock",
			in:   time.Date(2026, 3, 9, 15, 30, 0, 0, time.UTC),
			want: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "uses the UTC calendar day",
			in:   time.Date(2026, 3, 10, 1, 0, 0, 0, time.FixedZone("UTC+2", 2*60*60)),
			want: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, time.Time(DateOf(tt.in)))
		})
	}
}

func TestJob_BeforeCreate(t *testing.T) {
	j := &Job{}
	assert.NoError(t, j.BeforeCreate(nil))
	assert.Len(t, j.ID, 36)

	j = &Job{ID: "fixed"}
	assert.NoError(t, j.BeforeCreate(nil))
	assert.Equal(t, "fixed", j.ID)
}
