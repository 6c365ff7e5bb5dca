package tensor_test

import (
	"sync"
	"testing"

	"github.com/born-ml/gradtape/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUniqueID_Monotonic(t *testing.T) {
	a := tensor.NewUniqueID()
	b := tensor.NewUniqueID()
	c := tensor.NewUniqueID()

	assert.NotZero(t, a)
	assert.Less(t, a, b)
	assert.Less(t, b, c)
}

// TestNewUniqueID_Concurrent checks that concurrent callers never get duplicates.
func TestNewUniqueID_Concurrent(t *testing.T) {
	const (
		workers   = 16
		perWorker = 1000
	)

	var wg sync.WaitGroup
	results := make([][]tensor.UniqueID, workers)
	for w := range workers {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			ids := make([]tensor.UniqueID, perWorker)
			for i := range ids {
				ids[i] = tensor.NewUniqueID()
			}
			results[w] = ids
		}(w)
	}
	wg.Wait()

	seen := make(map[tensor.UniqueID]struct{}, workers*perWorker)
	for _, ids := range results {
		for _, id := range ids {
			_, dup := seen[id]
			require.False(t, dup, "duplicate id %v", id)
			seen[id] = struct{}{}
		}
	}
	assert.Len(t, seen, workers*perWorker)
}

func TestUniqueID_String(t *testing.T) {
	assert.Equal(t, "#42", tensor.UniqueID(42).String())
}
