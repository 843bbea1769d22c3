package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "later today",
			now:  time.Date(2026, 5, 10, 0, 0, 30, 0, warsaw),
			want: time.Date(2026, 5, 10, 0, 1, 0, 0, warsaw),
		},
		{
			name: "exactly at run time moves to tomorrow",
			now:  time.Date(2026, 5, 10, 0, 1, 0, 0, warsaw),
			want: time.Date(2026, 5, 11, 0, 1, 0, 0, warsaw),
		},
		{
			name: "evening",
			now:  time.Date(2026, 5, 10, 22, 15, 0, 0, warsaw),
			want: time.Date(2026, 5, 11, 0, 1, 0, 0, warsaw),
		},
		{
			name: "input in UTC",
			now:  time.Date(2026, 5, 10, 23, 30, 0, 0, time.UTC),
			want: time.Date(2026, 5, 12, 0, 1, 0, 0, warsaw),
		},
		{
			name: "across DST change",
			now:  time.Date(2026, 3, 28, 12, 0, 0, 0, warsaw),
			want: time.Date(2026, 3, 29, 0, 1, 0, 0, warsaw),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Next(tt.now, 0, 1, warsaw)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestRunFiresAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu    sync.Mutex
		clock = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
		waits []time.Duration
		runs  int
	)
	d := &Daily{
		Hour:     0,
		Minute:   1,
		Location: time.UTC,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Job: func(context.Context) {
			mu.Lock()
			defer mu.Unlock()
			runs++
			if runs == 2 {
				cancel()
			}
		},
		now: func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return clock
		},
		after: func(d time.Duration) <-chan time.Time {
			mu.Lock()
			defer mu.Unlock()
			waits = append(waits, d)
			clock = clock.Add(d)
			ch := make(chan time.Time, 1)
			ch <- clock
			return ch
		},
	}

	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, runs)
	require.GreaterOrEqual(t, len(waits), 2)
	assert.Equal(t, 12*time.Hour+time.Minute, waits[0])
	assert.Equal(t, 24*time.Hour, waits[1])
}
