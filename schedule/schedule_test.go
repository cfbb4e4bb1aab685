package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func win(start string, d time.Duration) Window {
	t, err := time.Parse(time.RFC3339, start)
	if err != nil {
		panic(err)
	}
	return Window{Start: t, End: t.Add(d)}
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestClassify(t *testing.T) {
	// Tournament: 2024-01-15 at 18:00 UTC, 180 minutes.
	w := win("2024-01-15T18:00:00Z", 180*time.Minute)

	tests := []struct {
		name string
		now  time.Time
		want Status
	}{
		{"well before start", at("2024-01-14T18:00:00Z"), StatusUpcoming},
		{"one second before start", at("2024-01-15T17:59:59Z"), StatusUpcoming},
		{"exactly at start", at("2024-01-15T18:00:00Z"), StatusLive},
		{"one hour in", at("2024-01-15T19:00:00Z"), StatusLive},
		{"one second before end", at("2024-01-15T20:59:59Z"), StatusLive},
		{"exactly at end", at("2024-01-15T21:00:00Z"), StatusCompleted},
		{"well after end", at("2024-01-16T00:00:00Z"), StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.now, w))
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	w := win("2024-01-15T18:00:00Z", 90*time.Minute)
	now := at("2024-01-15T18:30:00Z")

	first := Classify(now, w)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Classify(now, w))
	}
}

func TestClassifyDegenerateWindow(t *testing.T) {
	// Zero-length window: no live phase, upcoming flips straight to completed.
	w := win("2024-01-15T18:00:00Z", 0)

	assert.Equal(t, StatusUpcoming, Classify(at("2024-01-15T17:59:59Z"), w))
	assert.Equal(t, StatusCompleted, Classify(at("2024-01-15T18:00:00Z"), w))
	assert.False(t, w.Valid())
}

func TestIsLiveHalfOpenInterval(t *testing.T) {
	// Campaign window 2024-01-10T00:00 .. 2024-01-20T00:00.
	w := Window{Start: at("2024-01-10T00:00:00Z"), End: at("2024-01-20T00:00:00Z")}

	assert.True(t, IsLive(at("2024-01-15T12:00:00Z"), w))
	assert.True(t, IsLive(at("2024-01-10T00:00:00Z"), w))
	assert.False(t, IsLive(at("2024-01-20T00:00:00Z"), w))
	assert.False(t, IsLive(at("2024-01-21T00:00:00Z"), w))
	assert.False(t, IsLive(at("2024-01-09T23:59:59Z"), w))
}

func TestWindowDuration(t *testing.T) {
	w := win("2024-01-15T18:00:00Z", 180*time.Minute)
	assert.Equal(t, 3*time.Hour, w.Duration())
}

func TestWindowOverlaps(t *testing.T) {
	base := Window{Start: at("2024-01-10T00:00:00Z"), End: at("2024-01-20T00:00:00Z")}

	tests := []struct {
		name  string
		other Window
		want  bool
	}{
		{"identical", base, true},
		{"contained", Window{Start: at("2024-01-12T00:00:00Z"), End: at("2024-01-14T00:00:00Z")}, true},
		{"partial tail", Window{Start: at("2024-01-19T00:00:00Z"), End: at("2024-01-25T00:00:00Z")}, true},
		{"adjacent after", Window{Start: at("2024-01-20T00:00:00Z"), End: at("2024-01-22T00:00:00Z")}, false},
		{"adjacent before", Window{Start: at("2024-01-05T00:00:00Z"), End: at("2024-01-10T00:00:00Z")}, false},
		{"disjoint", Window{Start: at("2024-02-01T00:00:00Z"), End: at("2024-02-02T00:00:00Z")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}
