package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value atomic.Uint64
}

func (c *Counter) Inc() { c.value.Add(1) }

func (c *Counter) Load() uint64 { return c.value.Load() }

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Orders counts checkout outcomes for the health endpoint.
type Orders struct {
	Checkouts        Counter
	OrdersCreated    Counter
	CheckoutFailures Counter
	LockContention   Counter
	StatusChanges    Counter
}

type OrdersSnapshot struct {
	Checkouts        uint64 `json:"checkouts"`
	OrdersCreated    uint64 `json:"orders_created"`
	CheckoutFailures uint64 `json:"checkout_failures"`
	LockContention   uint64 `json:"lock_contention"`
	StatusChanges    uint64 `json:"status_changes"`
}

func (o *Orders) Snapshot() OrdersSnapshot {
	return OrdersSnapshot{
		Checkouts:        o.Checkouts.Load(),
		OrdersCreated:    o.OrdersCreated.Load(),
		CheckoutFailures: o.CheckoutFailures.Load(),
		LockContention:   o.LockContention.Load(),
		StatusChanges:    o.StatusChanges.Load(),
	}
}
