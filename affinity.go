/*
@Description: CPU affinity and real-time scheduling for worker threads
*/

package rtlink

import (
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// schedFIFO is SCHED_FIFO from <sched.h>; golang.org/x/sys/unix does
// not expose a scheduling-policy constant for it.
const schedFIFO = 1

// schedParam mirrors struct sched_param from <sched.h>: a single
// sched_priority int field.
type schedParam struct {
	priority int32
}

// pinThread applies CPU affinity and SCHED_FIFO real-time priority to
// the calling OS thread (must be called after runtime.LockOSThread).
// core < 0 skips affinity; failures are returned for the caller to log
// as non-fatal per spec.md §4.6/§7 — the worker keeps running under
// the default scheduling policy.
func pinThread(core int, priority int) error {
	var affinityErr, schedErr error

	if core >= 0 {
		var set unix.CPUSet
		set.Zero()
		set.Set(core)
		if err := unix.SchedSetaffinity(0, &set); err != nil {
			affinityErr = errors.Wrap(ErrSetAffinityFail, err.Error())
		}
	}

	if priority > 0 {
		param := schedParam{priority: int32(priority)}
		// sched_setscheduler(0, SCHED_FIFO, &param) — tid 0 means the
		// calling thread. golang.org/x/sys/unix does not wrap this
		// syscall directly, so it is issued via raw Syscall, matching
		// the corpus's general pattern of falling back to raw
		// unix.Syscall for calls the package doesn't cover.
		_, _, errno := unix.Syscall(unix.SYS_SCHED_SETSCHEDULER, 0, schedFIFO, uintptr(unsafe.Pointer(&param)))
		if errno != 0 {
			schedErr = errors.Wrap(ErrSetSchedulerFail, errno.Error())
		}
	}

	if affinityErr != nil {
		return affinityErr
	}
	return schedErr
}
