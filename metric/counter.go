package metric

import (
	"time"

	"github.com/viant/gmetric/counter"
)

// Operation is satisfied by gmetric operation
type Operation interface {
	Begin(started time.Time) counter.OnDone
	DecrementValue(value interface{}) int64
	IncrementValue(value interface{}) int64
}

// Done completes action measurement with its outcome
type Done func(event Event) int64

// ActionCounter measures action requests by outcome, in flight requests are counted as Pending
type ActionCounter struct {
	operation Operation
}

// NewActionCounter returns action counter, nil operation disables counting
func NewActionCounter(operation Operation) *ActionCounter {
	return &ActionCounter{operation: operation}
}

// Begin starts measurement
func (c *ActionCounter) Begin(started time.Time) Done {
	if c == nil || c.operation == nil {
		return func(Event) int64 { return 0 }
	}
	onDone := c.operation.Begin(started)
	c.operation.IncrementValue(Pending)
	return func(event Event) int64 {
		c.operation.DecrementValue(Pending)
		c.operation.IncrementValue(event)
		return onDone(time.Now())
	}
}
