package monitoring

import (
	"sync"

	"github.com/sarchlab/irqhal/irq"
)

// ControllerStats counts what happened on one controller.
type ControllerStats struct {
	Name      string `json:"name"`
	Ops       uint64 `json:"ops"`
	Errors    uint64 `json:"errors"`
	Delivered uint64 `json:"delivered"`
	Spurious  uint64 `json:"spurious"`
}

type statsTracker struct {
	sync.Mutex
	stats ControllerStats
}

func (t *statsTracker) countOp(err error) {
	t.Lock()
	defer t.Unlock()

	t.stats.Ops++
	if err != nil {
		t.stats.Errors++
	}
}

func (t *statsTracker) countDelivery(spurious bool) {
	t.Lock()
	defer t.Unlock()

	if spurious {
		t.stats.Spurious++
	} else {
		t.stats.Delivered++
	}
}

func (t *statsTracker) snapshot() ControllerStats {
	t.Lock()
	defer t.Unlock()

	return t.stats
}

// Func implements irq.Hook. Attach the monitor at bring-up to fill the
// statistics.
func (m *Monitor) Func(ctx irq.HookCtx) {
	switch ctx.Pos {
	case irq.HookPosAfterOp:
		op := ctx.Item.(*irq.Op)
		m.tracker(op.Controller).countOp(op.Err)
		m.metrics.operations.
			WithLabelValues(op.Controller, op.Name, irq.ErrorCode(op.Err)).Inc()
	case irq.HookPosDelivered:
		name := ctx.Item.(irq.Delivery).Controller
		m.tracker(name).countDelivery(false)
		m.metrics.deliveries.WithLabelValues(name, "delivered").Inc()
	case irq.HookPosSpurious:
		name := ctx.Item.(irq.Delivery).Controller
		m.tracker(name).countDelivery(true)
		m.metrics.deliveries.WithLabelValues(name, "spurious").Inc()
	}
}

func (m *Monitor) tracker(name string) *statsTracker {
	m.statsLock.Lock()
	defer m.statsLock.Unlock()

	t, found := m.stats[name]
	if !found {
		t = &statsTracker{stats: ControllerStats{Name: name}}
		m.stats[name] = t
	}

	return t
}

// Stats returns the statistics of every registered controller in registry
// order.
func (m *Monitor) Stats() []ControllerStats {
	list := []ControllerStats{}

	for _, h := range m.handles() {
		list = append(list, m.tracker(h.Name()).snapshot())
	}

	return list
}
