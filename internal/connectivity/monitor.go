// Package connectivity watches platform-reported network reachability.
//
// The monitor exposes a single boolean signal. It is a local heuristic:
// an up interface with a routable address says nothing about whether any
// remote endpoint is reachable. The rest of the app is built on exactly
// that contract; the signal gates the synced flag and triggers
// reconciliation, it does not promise delivery.
package connectivity

import (
	"context"
	"net"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// minInterval guards against busy-polling from a bad config value.
const minInterval = 100 * time.Millisecond

// Change is emitted on the monitor's channel for every transition of the
// signal. The signal follows the probe directly; there is no debouncing,
// so a flapping network produces a matching stream of changes.
type Change struct {
	Online bool
	At     time.Time
}

// Monitor polls a reachability probe and emits transitions.
type Monitor struct {
	probe    func() bool
	interval time.Duration
	online   atomic.Bool
	changes  chan Change
	logger   *zap.Logger
}

// New builds a monitor around probe. A nil probe means SystemProbe. The
// initial state is taken from one immediate probe so Online is answerable
// before Run starts.
func New(probe func() bool, interval time.Duration, logger *zap.Logger) *Monitor {
	if probe == nil {
		probe = SystemProbe
	}
	if interval < minInterval {
		interval = minInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Monitor{
		probe:    probe,
		interval: interval,
		changes:  make(chan Change, 8),
		logger:   logger,
	}
	m.online.Store(probe())
	return m
}

// Online reports the current state of the signal.
func (m *Monitor) Online() bool { return m.online.Load() }

// Changes returns the channel transitions are delivered on. The channel
// is never closed; stop consuming when the Run context ends.
func (m *Monitor) Changes() <-chan Change { return m.changes }

// Run polls the probe until ctx is cancelled, emitting a Change for every
// transition.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Info("connectivity monitor started",
		zap.Bool("online", m.online.Load()),
		zap.Duration("interval", m.interval))

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("connectivity monitor stopped")
			return
		case <-ticker.C:
			now := m.probe()
			if m.online.Swap(now) == now {
				continue
			}
			m.logger.Info("connectivity changed", zap.Bool("online", now))
			select {
			case m.changes <- Change{Online: now, At: time.Now()}:
			default:
				// Consumer is behind; drop rather than stall the poll loop.
			}
		}
	}
}

// SystemProbe reports whether any up, non-loopback interface carries a
// global unicast address.
func SystemProbe() bool {
	ifaces, err := net.Interfaces()
	if err != nil {
		return false
	}
	for _, ifc := range ifaces {
		if ifc.Flags&net.FlagUp == 0 || ifc.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := ifc.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			if ipn, ok := addr.(*net.IPNet); ok && ipn.IP.IsGlobalUnicast() {
				return true
			}
		}
	}
	return false
}

// Offline is a probe that is permanently offline. The --offline flag pins
// the signal with it regardless of interface state.
func Offline() bool { return false }
