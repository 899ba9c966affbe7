package calc

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sheetkernel/engine/base"
)

func TestPendingTasksBeginAndComplete(t *testing.T) {
	p := NewPendingTasks()
	cell := base.SheetCell{Sheet: 0, Cell: base.NewNormalCellId(0, 0)}

	task := p.Begin(cell, "task-1")
	assert.True(t, p.Waiting(cell))

	got, ok := p.Complete(AsyncCalcResult{Id: task.Id, Value: base.Num(42)})
	assert.True(t, ok)
	assert.Equal(t, cell, got)
	assert.False(t, p.Waiting(cell))
}

func TestPendingTasksCancelLeavesNoTrace(t *testing.T) {
	p := NewPendingTasks()
	cell := base.SheetCell{Sheet: 0, Cell: base.NewNormalCellId(0, 0)}
	p.Begin(cell, "task-1")

	p.Cancel(cell)
	assert.False(t, p.Waiting(cell))

	_, ok := p.Complete(AsyncCalcResult{Id: "task-1"})
	assert.False(t, ok)
}

func TestPendingTasksFetchDeduplicatesConcurrentCallers(t *testing.T) {
	p := NewPendingTasks()
	var calls int32

	fn := func(ctx context.Context) (base.CellValue, error) {
		atomic.AddInt32(&calls, 1)
		return base.Num(7), nil
	}

	type outcome struct {
		value base.CellValue
		err   error
	}
	results := make(chan outcome, 4)
	for i := 0; i < 4; i++ {
		go func() {
			v, err := p.Fetch(context.Background(), "shared-key", fn)
			results <- outcome{value: v, err: err}
		}()
	}
	for i := 0; i < 4; i++ {
		o := <-results
		assert.NoError(t, o.err)
		assert.Equal(t, base.Num(7), o.value)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(4))
}
