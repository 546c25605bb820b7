package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type item struct {
	Value int
}

func TestPool(t *testing.T) {
	var resetCount int
	p := NewPool(
		func() *item { return &item{} },
		func(v *item) { resetCount++; v.Value = 0 },
		func(v *item) {},
	)

	v := p.Get()
	require.NotNil(t, v)
	require.Equal(t, uint64(1), p.AllocatedCount.Load())
	v.Value = 42

	p.Put(v, nil)
	require.Equal(t, 1, resetCount)
	require.Equal(t, 0, v.Value)
	require.Equal(t, uint64(1), p.PutCount.Load())
}
