package engine

import (
	"sync"
	"time"
)

// CallMetrics tracks Diacritize calls on one engine.
type CallMetrics struct {
	TotalCalls         int64
	SuccessfulCalls    int64
	FailedCalls        int64
	TokenizationErrors int64
	InferenceErrors    int64
	TotalLatency       time.Duration
	LastCall           time.Time
	Mu                 sync.RWMutex
}

// Record updates the counters for a call that started at start and ended with err.
func (m *CallMetrics) Record(start time.Time, err error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	m.TotalCalls++
	m.TotalLatency += time.Since(start)
	m.LastCall = time.Now()
	if err == nil {
		m.SuccessfulCalls++
		return
	}
	m.FailedCalls++
	switch errorKind(err) {
	case "tokenization":
		m.TokenizationErrors++
	case "inference":
		m.InferenceErrors++
	}
}

// GetMetrics returns the counters as a map
func (m *CallMetrics) GetMetrics() map[string]interface{} {
	m.Mu.RLock()
	defer m.Mu.RUnlock()

	var avg time.Duration
	if m.TotalCalls > 0 {
		avg = m.TotalLatency / time.Duration(m.TotalCalls)
	}
	return map[string]interface{}{
		"total_calls":         m.TotalCalls,
		"successful_calls":    m.SuccessfulCalls,
		"failed_calls":        m.FailedCalls,
		"tokenization_errors": m.TokenizationErrors,
		"inference_errors":    m.InferenceErrors,
		"average_latency":     avg,
		"last_call":           m.LastCall,
	}
}
