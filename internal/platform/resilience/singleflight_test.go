package resilience

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupCollapsesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var group Group
	var executions atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]any, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			value, _, err := group.Do("standings:s_1", func() (any, error) {
				executions.Add(1)
				<-release
				return "computed", nil
			})
			require.NoError(t, err)
			results[i] = value
		}(i)
	}

	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), executions.Load())
	for _, value := range results {
		assert.Equal(t, "computed", value)
	}
}

func TestGroupRunsAgainAfterCompletion(t *testing.T) {
	t.Parallel()

	var group Group
	calls := 0
	for i := 0; i < 3; i++ {
		_, shared, err := group.Do("k", func() (any, error) {
			calls++
			return nil, nil
		})
		require.NoError(t, err)
		assert.False(t, shared)
	}
	assert.Equal(t, 3, calls)
}
