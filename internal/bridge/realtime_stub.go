// internal/bridge/realtime_stub.go
//go:build !linux

package bridge

import "log"

func tryRealtime(prio int) {
	log.Printf("bridge: real-time scheduling not supported on this platform")
}
