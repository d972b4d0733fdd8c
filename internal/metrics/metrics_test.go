package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter_Concurrent(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(50), c.Load())
}

func TestOrders_Snapshot(t *testing.T) {
	var o Orders
	o.Checkouts.Inc()
	o.Checkouts.Inc()
	o.OrdersCreated.Inc()

	s := o.Snapshot()
	assert.Equal(t, uint64(2), s.Checkouts)
	assert.Equal(t, uint64(1), s.OrdersCreated)
	assert.Zero(t, s.LockContention)
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(time.Millisecond)
	assert.Greater(t, timer.Duration(), time.Duration(0))
}
