// internal/bridge/realtime_linux.go
//go:build linux

package bridge

import (
	"log"

	"golang.org/x/sys/unix"
)

// tryRealtime attempts to move the process into the FIFO real-time class.
// Failure (typically missing privileges) is only a warning.
func tryRealtime(prio int) {
	attr := &unix.SchedAttr{
		Size:     unix.SizeofSchedAttr,
		Policy:   unix.SCHED_FIFO,
		Priority: uint32(prio),
	}
	if err := unix.SchedSetAttr(0, attr, 0); err != nil {
		log.Printf("bridge: SCHED_FIFO %d unavailable: %v", prio, err)
		return
	}
	log.Printf("bridge: SCHED_FIFO %d", prio)
}
