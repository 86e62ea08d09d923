// internal/bridge/supervisor.go
package bridge

import (
	"log"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/tamzrod/joystick2crsf/internal/config"
)

// Supervisor owns the restart loop around the tick loop: it loads the
// configuration, runs one cycle, and decides whether to reload, back off for
// controller rediscovery, or exit.
type Supervisor struct {
	confPath string

	running  atomic.Bool
	reload   atomic.Bool
	stop     chan struct{}
	stopOnce sync.Once
}

// cycleResult is one inner-loop outcome.
type cycleResult struct {
	restart bool // run another cycle (reload or rediscovery)
	backoff bool // sleep 2 s before the next cycle
	fatal   bool // exit with a nonzero status
}

// New creates a supervisor for the given config path.
func New(confPath string) *Supervisor {
	s := &Supervisor{
		confPath: confPath,
		stop:     make(chan struct{}),
	}
	s.running.Store(true)
	return s
}

// Run drives the cycle loop until shutdown and returns the process exit
// code. The configuration is re-read at the top of every cycle; the initial
// load only fails fast on an unusable file.
func (s *Supervisor) Run() int {
	cfg, err := config.Load(s.confPath)
	if err != nil {
		log.Print(err)
		return 1
	}
	if err := config.Validate(cfg); err != nil {
		log.Print(err)
		return 1
	}

	s.watchSignals()
	tryRealtime(10)

	exitCode := 0
	for s.running.Load() {
		cfg, err := config.Load(s.confPath)
		if err != nil {
			log.Print(err)
			exitCode = 1
			break
		}
		if err := config.Validate(cfg); err != nil {
			log.Print(err)
			exitCode = 1
			break
		}
		config.Normalize(cfg)

		res := s.runCycle(cfg)
		if res.fatal {
			exitCode = 1
			break
		}
		if !s.running.Load() || !res.restart {
			break
		}
		if res.backoff {
			log.Printf("bridge: waiting 2 seconds before attempting to rediscover joystick")
			select {
			case <-s.stop:
			case <-time.After(2 * time.Second):
			}
		}
	}
	return exitCode
}

// watchSignals translates SIGINT into a stop and SIGHUP into a reload
// request; the tick loop drains both flags at well-defined points.
func (s *Supervisor) watchSignals() {
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGHUP)
	go func() {
		for sig := range ch {
			switch sig {
			case syscall.SIGINT:
				s.running.Store(false)
				s.stopOnce.Do(func() { close(s.stop) })
			case syscall.SIGHUP:
				s.reload.Store(true)
			}
		}
	}()
}
