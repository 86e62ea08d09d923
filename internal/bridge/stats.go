// internal/bridge/stats.go
package bridge

import (
	"fmt"
	"time"

	"github.com/tamzrod/joystick2crsf/internal/sink"
)

// jitter accumulates how late each tick ran relative to its absolute
// deadline. Only positive (late) deltas count; one summary line prints per
// carrier-rate's worth of samples, roughly once a second.
type jitter struct {
	min   time.Duration
	max   time.Duration
	sum   time.Duration
	count int
}

func (j *jitter) record(dt time.Duration) {
	if dt <= 0 {
		return
	}
	if j.count == 0 || dt < j.min {
		j.min = dt
	}
	if dt > j.max {
		j.max = dt
	}
	j.sum += dt
	j.count++
}

func (j *jitter) full() bool {
	return j.count >= carrierHz
}

// flush prints the rolling summary plus per-second frame counts for each
// configured sink, then resets the accumulators.
func (j *jitter) flush(d *sink.Dispatcher, sseUp bool, sseCount uint64) {
	ms := func(v time.Duration) float64 { return float64(v) / float64(time.Millisecond) }
	fmt.Printf("loop min %.3f  max %.3f  avg %.3f ms",
		ms(j.min), ms(j.max), ms(j.sum)/float64(j.count))
	if d.Serial != nil {
		fmt.Printf("  serial %d/s", d.SerialCount)
	}
	if d.UDP != nil {
		fmt.Printf("  udp %d/s", d.UDPCount)
	}
	if sseUp {
		fmt.Printf("  sse %d/s", sseCount)
	}
	fmt.Println()

	*j = jitter{}
}
