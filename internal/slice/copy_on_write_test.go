package slice_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dr3s/akka/internal/slice"
)

func TestCopyOnWrite_AppendAndSnapshot(t *testing.T) {
	cs := slice.New[int]()
	cs.Append(1)
	cs.Append(2)
	cs.Append(3)

	assert.Equal(t, 3, cs.Len())
	assert.Equal(t, []int{1, 2, 3}, cs.Snapshot())
}

func TestCopyOnWrite_RemoveFunc(t *testing.T) {
	cs := slice.New[int]()
	for _, v := range []int{1, 2, 3, 4} {
		cs.Append(v)
	}
	cs.RemoveFunc(func(v int) bool { return v == 3 })
	assert.Equal(t, []int{1, 2, 4}, cs.Snapshot())

	cs.RemoveFunc(func(v int) bool { return v == 99 })
	assert.Equal(t, []int{1, 2, 4}, cs.Snapshot())
}

func TestCopyOnWrite_SnapshotIsStableUnderConcurrentAppend(t *testing.T) {
	cs := slice.New[int]()
	cs.Append(1)
	snapshot := cs.Snapshot()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			cs.Append(v)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, []int{1}, snapshot)
	assert.Equal(t, 101, cs.Len())
}

func TestCopyOnWrite_GetOutOfRangeReturnsZeroValue(t *testing.T) {
	cs := slice.New[string]()
	cs.Append("only")
	assert.Equal(t, "only", cs.Get(0))
	assert.Equal(t, "", cs.Get(5))
	assert.Equal(t, "", cs.Get(-1))
}
