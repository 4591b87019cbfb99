package game

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
)

// Metrics tracks scheduler and input counters for the /metrics endpoint.
type Metrics struct {
	TickCount      int64
	TotalTickNs    int64
	InputsAccepted int64
	InputsRejected int64
	RoomsReaped    int64
}

func (m *Metrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

func (m *Metrics) IncAccepted() { atomic.AddInt64(&m.InputsAccepted, 1) }
func (m *Metrics) IncRejected() { atomic.AddInt64(&m.InputsRejected, 1) }
func (m *Metrics) IncReaped()   { atomic.AddInt64(&m.RoomsReaped, 1) }

// Snapshot returns a read-only copy for HTTP output.
func (m *Metrics) Snapshot() map[string]any {
	ticks := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if ticks > 0 {
		avgMs = float64(total) / float64(ticks) / 1e6
	}
	return map[string]any{
		"tick_count":      ticks,
		"avg_tick_ms":     avgMs,
		"inputs_accepted": atomic.LoadInt64(&m.InputsAccepted),
		"inputs_rejected": atomic.LoadInt64(&m.InputsRejected),
		"rooms_reaped":    atomic.LoadInt64(&m.RoomsReaped),
	}
}

func (gm *Manager) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	gm.Mutex.RLock()
	roomCount := len(gm.Rooms)
	gm.Mutex.RUnlock()

	out := gm.Metrics.Snapshot()
	out["rooms"] = roomCount

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
