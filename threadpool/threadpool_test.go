package threadpool

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSyncAccumulates(t *testing.T) {
	p := New(4)
	defer p.Close()

	var counter int64
	batch := make([]Task, 100)
	for i := range batch {
		batch[i] = func() error {
			atomic.AddInt64(&counter, 1)
			return nil
		}
	}
	futures := p.Run(batch)
	require.NoError(t, Sync(futures))
	assert.EqualValues(t, 100, counter)
}

func TestTaskErrorPropagates(t *testing.T) {
	p := New(2)
	defer p.Close()

	boom := errors.New("boom")
	futures := p.Run([]Task{
		func() error { return nil },
		func() error { return boom },
	})
	err := Sync(futures)
	require.Error(t, err)
	assert.Equal(t, "boom", err.Error())
}

func TestPanicCapturedNotFatal(t *testing.T) {
	p := New(2)
	defer p.Close()

	futures := p.Run([]Task{
		func() error { panic("kaboom") },
	})
	err := futures[0].Get()
	require.Error(t, err)

	// The worker must survive the panic and keep serving tasks.
	more := p.Run([]Task{func() error { return nil }})
	require.NoError(t, Sync(more))
}

func TestFutureGetIdempotent(t *testing.T) {
	p := New(1)
	defer p.Close()

	futures := p.Run([]Task{func() error { return nil }})
	require.NoError(t, futures[0].Get())
	require.NoError(t, futures[0].Get())
}
