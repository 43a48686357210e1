package visdiff

import (
	"sync"

	"github.com/gogpu/visdiff/internal/parallel"
)

// parallelThreshold is the pixel count above which per-pixel loops are
// spread across the worker pool. Below it, goroutine handoff costs more
// than the loop itself.
const parallelThreshold = 1 << 16

var (
	poolOnce sync.Once
	pool     *parallel.Pool
)

func sharedPool() *parallel.Pool {
	poolOnce.Do(func() {
		pool = parallel.New(0)
	})
	return pool
}

// forEachRow applies fn to [0, height) either inline or on the shared
// worker pool, depending on the total pixel count. fn receives disjoint
// half-open row ranges; because every per-pixel operation in this package
// is an order-independent map or reduction, the result is identical either
// way.
func forEachRow(width, height int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}
	if width*height < parallelThreshold {
		fn(0, height)
		return
	}
	sharedPool().Rows(height, fn)
}
