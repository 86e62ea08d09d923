// internal/bridge/loop.go
package bridge

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/tamzrod/joystick2crsf/internal/config"
	"github.com/tamzrod/joystick2crsf/internal/frame"
	"github.com/tamzrod/joystick2crsf/internal/pad"
	"github.com/tamzrod/joystick2crsf/internal/rc"
	"github.com/tamzrod/joystick2crsf/internal/sink"
)

// The carrier tick. The frame divisor selects which ticks emit, giving
// effective rates of 250, 125, or 50 Hz.
const (
	carrierHz    = 250
	tickInterval = time.Second / carrierHz
)

// runCycle opens the sinks and the controller, then runs the tick loop until
// stop, reload, controller loss, or a fatal sink error.
func (s *Supervisor) runCycle(cfg *config.Config) cycleResult {
	var res cycleResult

	dispatch := &sink.Dispatcher{}
	var sse *sink.SSE
	var js *pad.Device
	defer func() {
		// Teardown order: controller, serial, UDP, SSE client+listener.
		if js != nil {
			js.Close()
		}
		if dispatch.Serial != nil {
			dispatch.Serial.Close()
		}
		if dispatch.UDP != nil {
			dispatch.UDP.Close()
		}
		if sse != nil {
			sse.Close()
		}
	}()

	if cfg.SerialEnabled && !cfg.Simulation {
		sp, err := sink.OpenSerial(cfg.SerialDevice, cfg.SerialBaud)
		if err != nil {
			log.Print(err)
			res.fatal = true
			return res
		}
		dispatch.Serial = sp
	}

	if cfg.UDPEnabled {
		if cfg.UDPTarget == "" {
			log.Printf("udp: enabled but udp_target is empty; continuing without UDP output")
		} else if up, err := sink.OpenUDP(cfg.UDPTarget); err != nil {
			log.Print(err)
			log.Printf("udp: continuing without UDP output")
		} else {
			dispatch.UDP = up
			log.Printf("udp: target %s resolved to %s", cfg.UDPTarget, up.RemoteAddr())
		}
	}

	if cfg.SSEEnabled {
		if cfg.SSEBind == "" {
			log.Printf("sse: enabled but sse_bind is empty")
			res.fatal = true
			return res
		}
		srv, err := sink.OpenSSE(cfg.SSEBind, cfg.SSEPath)
		if err != nil {
			log.Print(err)
			res.fatal = true
			return res
		}
		sse = srv
		log.Printf("sse: listening on %s%s", cfg.SSEBind, cfg.SSEPath)
	}

	if !dispatch.Active() && sse == nil {
		log.Printf("bridge: no output destinations configured; frames will stay local")
	}

	var packer frame.Packer
	if cfg.Protocol == config.ProtocolMavlink {
		packer = &frame.OverridePacker{
			SysID:        uint8(cfg.MavlinkSysID),
			CompID:       uint8(cfg.MavlinkCompID),
			TargetSysID:  uint8(cfg.MavlinkTargetSysID),
			TargetCompID: uint8(cfg.MavlinkTargetCompID),
		}
	} else {
		packer = frame.ChannelsPacker{}
	}

	every := carrierHz / cfg.Rate
	buf := make([]byte, frame.BufferSize)
	frameCount := 0
	var sseCount uint64
	var latch rc.ArmLatch
	var jit jitter

	now := time.Now()
	nextTick := now
	nextRescan := now

	for s.running.Load() && !res.restart {
		now = time.Now()

		if s.reload.CompareAndSwap(true, false) {
			log.Printf("bridge: configuration reload requested; restarting")
			res.restart = true
			break
		}

		if js != nil {
			if err := js.Update(); err != nil {
				log.Printf("pad: joystick %d detached", cfg.JoystickIndex)
				js.Close()
				js = nil
				res.restart = true
				res.backoff = true
				break
			}
		}

		if js == nil && !now.Before(nextRescan) {
			d, err := pad.Open(cfg.JoystickIndex)
			if err != nil {
				log.Print(err)
				res.restart = true
				res.backoff = true
				break
			}
			if err := d.Update(); err != nil {
				log.Print(err)
				d.Close()
				res.restart = true
				res.backoff = true
				break
			}
			js = d
			log.Printf("pad: joystick %d connected: %s", cfg.JoystickIndex, js.Name())
			nextRescan = now.Add(time.Duration(cfg.RescanInterval) * time.Second)
		}

		if js == nil {
			log.Printf("pad: joystick %d not available; restarting for rediscovery", cfg.JoystickIndex)
			res.restart = true
			res.backoff = true
			break
		}

		chSrc, rawSrc := rc.Build(js, cfg.Dead)
		chOut, rawOut := rc.Remap(chSrc, rawSrc, cfg.Map, cfg.Invert)

		if cfg.ArmToggle >= 0 {
			src := cfg.Map[cfg.ArmToggle]
			if src < 0 || src >= 16 {
				src = cfg.ArmToggle
			}
			engaged := latch.Update(chSrc[src], now)
			latch.Apply(&chOut, &rawOut, cfg.ArmToggle, engaged, cfg.Invert[cfg.ArmToggle])
		}

		if sse != nil {
			sse.Poll(now)
			if sse.Emit(chOut, rawOut, now) {
				sseCount++
			}
		}

		frameCount++
		if frameCount >= every {
			frameCount = 0
			n := packer.Pack(chOut, buf)

			if cfg.Channels {
				printChannels(chOut, rawOut)
			}

			if err := dispatch.Dispatch(buf[:n]); err != nil {
				log.Print(err)
				s.running.Store(false)
				res.fatal = true
				break
			}
		}

		if cfg.Stats {
			jit.record(time.Since(nextTick))
			if jit.full() {
				jit.flush(dispatch, sse != nil, sseCount)
				dispatch.ResetCounts()
				sseCount = 0
			}
			if dispatch.Serial != nil {
				dispatch.Serial.Drain(os.Stdout)
			}
		}

		nextTick = nextTick.Add(tickInterval)
		if !s.running.Load() {
			break
		}
		time.Sleep(time.Until(nextTick))
	}

	return res
}

func printChannels(ch rc.ChannelVector, raw rc.RawVector) {
	fmt.Printf("CH:")
	for _, v := range ch {
		fmt.Printf(" %4d", v)
	}
	fmt.Printf(" | RAW:")
	for _, v := range raw {
		fmt.Printf(" %6d", v)
	}
	fmt.Println()
}
