// Package metrics instruments settlement outcomes and latency. The
// marketplace records through the Recorder interface; Prometheus and no-op
// implementations are provided.
package metrics

import "time"

type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
}
