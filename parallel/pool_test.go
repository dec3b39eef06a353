package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool(t *testing.T) {
	tests := []struct {
		name       string
		numWorkers int
	}{
		{"inline", 1},
		{"two workers", 2},
		{"default workers", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := Start(tt.numWorkers)

			var count atomic.Int64
			for i := 0; i < 100; i++ {
				pool.Do(func() {
					count.Add(1)
				})
			}
			pool.Wait()

			assert.Equal(t, int64(100), count.Load())
		})
	}
}

func TestPoolCloseIdempotent(t *testing.T) {
	pool := Start(2)
	pool.Do(func() {})
	pool.Close()
	pool.Close()
	pool.Wait()
	pool.Wait()
}
