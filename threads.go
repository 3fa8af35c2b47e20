/*
@Description: RX/TX worker threads: CPU pinning, RT scheduling, queue wiring
*/

package rtlink

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// PacketHandler receives a non-owning view of each decoded RX payload,
// synchronously, from the RX worker goroutine. The view is valid only
// for the duration of the call; implementations that need to retain
// the bytes must copy them (spec.md §9 "Non-owning payload view").
type PacketHandler interface {
	OnPacket(view []byte)
}

// PacketHandlerFunc adapts a plain function to PacketHandler.
type PacketHandlerFunc func(view []byte)

// OnPacket implements PacketHandler.
func (f PacketHandlerFunc) OnPacket(view []byte) { f(view) }

// ThreadManager owns the RX and TX worker goroutines, the two SPSC
// ring buffers, and the latency samplers they feed. Adapted from the
// teacher's UDPSession: workers run until the shutdown handler's
// running flag clears and are joined via a WaitGroup, with atomic
// counters bumped inline with every send/receive.
type ThreadManager struct {
	cfg *Config
	ep  *Endpoint

	TxRing *Ring
	RxRing *Ring

	TxSendLatency     *LatencySampler
	RxProcLatency     *LatencySampler
	RxIntervalLatency *LatencySampler

	Stats   *Stats
	rxPkt   *RxPacket
	handler PacketHandler

	shutdown *ShutdownHandler
	log      *zap.Logger

	wg       sync.WaitGroup
	fatalMu  sync.Mutex
	fatalErr error
}

// NewThreadManager wires a ThreadManager over an already-connected
// Endpoint. handler is invoked synchronously on the RX worker for
// every successfully decoded packet.
func NewThreadManager(cfg *Config, ep *Endpoint, handler PacketHandler, shutdown *ShutdownHandler, log *zap.Logger) *ThreadManager {
	return &ThreadManager{
		cfg:               cfg,
		ep:                ep,
		TxRing:            NewRing(),
		RxRing:            NewRing(),
		TxSendLatency:     NewLatencySampler(),
		RxProcLatency:     NewLatencySampler(),
		RxIntervalLatency: NewLatencySampler(),
		Stats:             NewStats(),
		rxPkt:             NewRxPacket(cfg),
		handler:           handler,
		shutdown:          shutdown,
		log:               log,
	}
}

// RxPacket exposes the decoder/link-health state driven by the RX
// worker, for status reporting from the main thread.
func (tm *ThreadManager) RxPacket() *RxPacket { return tm.rxPkt }

// Start launches the RX and TX worker goroutines, applying CPU
// affinity and SCHED_FIFO real-time priority to each (best-effort;
// failures are logged and non-fatal per spec.md §4.6/§7).
func (tm *ThreadManager) Start() {
	tm.wg.Add(2)
	go tm.rxWorker()
	go tm.txWorker()
}

// Wait blocks until both workers have exited (after shutdown).
func (tm *ThreadManager) Wait() {
	tm.wg.Wait()
}

// FatalErr returns the first fatal error observed by either worker, or
// nil if none occurred.
func (tm *ThreadManager) FatalErr() error {
	tm.fatalMu.Lock()
	defer tm.fatalMu.Unlock()
	return tm.fatalErr
}

func (tm *ThreadManager) setFatal(err error) {
	tm.fatalMu.Lock()
	if tm.fatalErr == nil {
		tm.fatalErr = err
	}
	tm.fatalMu.Unlock()
	tm.shutdown.Trigger()
}

// Enqueue pushes an encoded frame onto the TX ring for the TX worker
// to send. Called by the periodic scheduler's TX tick (C7).
func (tm *ThreadManager) Enqueue(frame []byte) bool {
	ok := tm.TxRing.Push(frame)
	if !ok {
		atomic.AddUint64(&tm.Stats.TxDropped, 1)
	}
	return ok
}

func (tm *ThreadManager) rxWorker() {
	defer tm.wg.Done()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := pinThread(tm.cfg.RxCPU, tm.cfg.RxPriority); err != nil && tm.log != nil {
		tm.log.Warn("rx worker: affinity/scheduling unavailable", zap.Error(err))
	}

	var buf [RingSlotMaxBytes]byte
	haveLast := false
	var lastRxStart int64
	prevStatus := StatusHealthy

	for tm.shutdown.Running() {
		n, err := tm.ep.Receive(buf[:], tm.cfg.RecvTimeout)
		if err != nil {
			if IsTransientRecvErr(err) {
				continue
			}
			tm.setFatal(err)
			return
		}
		if n <= 0 {
			continue
		}

		rxStart := time.Now().UnixNano()
		atomic.AddUint64(&tm.Stats.RxPackets, 1)
		atomic.AddUint64(&tm.Stats.RxBytes, uint64(n))

		if haveLast {
			tm.RxIntervalLatency.RecordDelta(lastRxStart, rxStart)
		}
		haveLast = true
		lastRxStart = rxStart

		if !tm.RxRing.Push(buf[:n]) {
			atomic.AddUint64(&tm.Stats.RxDropped, 1)
		}

		if err := tm.rxPkt.Decode(buf[:n]); err != nil {
			// CRC mismatches and malformed frames are logged and
			// dropped without affecting link-health state (spec.md
			// §7): the frame never existed.
			if err == ErrCrcMismatch {
				atomic.AddUint64(&tm.Stats.CrcErrors, 1)
			} else {
				atomic.AddUint64(&tm.Stats.DecodeErrors, 1)
			}
			if tm.log != nil {
				tm.log.Warn("rx worker: frame dropped", zap.Error(err))
			}
		} else {
			if tm.handler != nil {
				tm.handler.OnPacket(tm.rxPkt.Data())
			}
			status := tm.rxPkt.Health().Status()
			if status != prevStatus {
				switch status {
				case StatusUnstable:
					atomic.AddUint64(&tm.Stats.UnstableTransitions, 1)
				case StatusLost:
					atomic.AddUint64(&tm.Stats.LossEvents, 1)
				}
				prevStatus = status
			}
		}

		rxEnd := time.Now().UnixNano()
		tm.RxProcLatency.RecordDelta(rxStart, rxEnd)
	}
}

func (tm *ThreadManager) txWorker() {
	defer tm.wg.Done()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := pinThread(tm.cfg.TxCPU, tm.cfg.TxPriority); err != nil && tm.log != nil {
		tm.log.Warn("tx worker: affinity/scheduling unavailable", zap.Error(err))
	}

	var buf [RingSlotMaxBytes]byte

	for tm.shutdown.Running() {
		n, ok := tm.TxRing.Pop(buf[:])
		if !ok {
			time.Sleep(10 * time.Microsecond)
			continue
		}

		txStart := time.Now().UnixNano()
		sent, err := tm.ep.Send(buf[:n])
		txEnd := time.Now().UnixNano()

		if err != nil || sent <= 0 {
			atomic.AddUint64(&tm.Stats.TxDropped, 1)
			continue
		}

		atomic.AddUint64(&tm.Stats.TxPackets, 1)
		atomic.AddUint64(&tm.Stats.TxBytes, uint64(sent))
		tm.TxSendLatency.RecordDelta(txStart, txEnd)
	}
}
