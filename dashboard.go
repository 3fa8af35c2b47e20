/*
@Description: Pinned ANSI terminal dashboard and scrolling log pane
*/

package rtlink

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// HeaderLines is the number of lines reserved for the pinned upper
// pane (title, column headers, separator, 3 data rows, separator),
// matching original_source/include/stats/TerminalUI.hpp exactly.
const HeaderLines = 7

// Dashboard is a two-pane ANSI-capable terminal renderer: a fixed
// upper pane of latency statistics and a scrolling lower pane of log
// lines. Safe to call from the main thread while RX/TX workers run
// concurrently; all writes go through a single mutex.
type Dashboard struct {
	w    io.Writer
	mu   sync.Mutex
	rows int
	cols int
	init bool
}

// NewDashboard returns a Dashboard writing to w, sized rows x cols.
// Non-positive rows or cols fall back to 24 and 80; the terminal's real
// size is not queried.
func NewDashboard(w io.Writer, rows, cols int) *Dashboard {
	if rows <= 0 {
		rows = 24
	}
	if cols <= 0 {
		cols = 80
	}
	return &Dashboard{w: w, rows: rows, cols: cols}
}

// Initialize clears the screen, draws an empty dashboard, and pins the
// scroll region to the lower pane.
func (d *Dashboard) Initialize() {
	d.mu.Lock()
	defer d.mu.Unlock()

	fmt.Fprint(d.w, "\033[2J\033[H")
	d.drawDashboard(LatencyStats{}, LatencyStats{}, LatencyStats{})
	fmt.Fprintf(d.w, "\033[%d;%dr", HeaderLines+1, d.rows)
	fmt.Fprintf(d.w, "\033[%d;1H", HeaderLines+1)
	d.init = true
}

// UpdateStats redraws the pinned dashboard with fresh TX-send,
// RX-processing and RX-interval latency snapshots, preserving the
// cursor position within the scroll region.
func (d *Dashboard) UpdateStats(tx, rx, interval LatencyStats) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.init {
		return
	}

	fmt.Fprint(d.w, "\033[s")
	d.drawDashboard(tx, rx, interval)
	fmt.Fprint(d.w, "\033[u")
}

// Log writes a message to the scrolling lower pane. Before
// Initialize, it falls back to a direct write.
func (d *Dashboard) Log(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprint(d.w, msg)
}

// Write implements io.Writer so Dashboard can serve as a zap
// WriteSyncer target for the scrolling log pane.
func (d *Dashboard) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.w.Write(p)
}

// Sync implements zapcore.WriteSyncer; terminal writes need no flush.
func (d *Dashboard) Sync() error { return nil }

// Shutdown resets the scroll region and moves the cursor to the bottom
// of the screen. Safe to call multiple times.
func (d *Dashboard) Shutdown() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.init {
		return
	}
	fmt.Fprint(d.w, "\033[r")
	fmt.Fprintf(d.w, "\033[%d;1H\n", d.rows)
	d.init = false
}

func (d *Dashboard) drawDashboard(tx, rx, interval LatencyStats) {
	fmt.Fprint(d.w, "\033[H")

	title := " UDP Latency Dashboard"
	pad := d.cols - len(title)
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(d.w, "\033[1;7m%s%s\033[0m\n", title, strings.Repeat(" ", pad))

	fmt.Fprintf(d.w, "\033[2m %-8s%6s %9s %9s %9s %9s %9s %9s  (us)\033[0m\033[K\n",
		"", "count", "min", "p50", "p95", "p99", "p99.9", "max")

	sepLen := d.cols - 2
	if sepLen > 78 {
		sepLen = 78
	}
	if sepLen < 10 {
		sepLen = 10
	}
	fmt.Fprintf(d.w, "\033[2m %s\033[0m\033[K\n", strings.Repeat("-", sepLen))

	d.drawDataRow("TX Send", tx)
	d.drawDataRow("RX Proc", rx)
	d.drawDataRow("RX Intv", interval)

	leftDash := 20
	rightDash := d.cols - leftDash - 14 - 2
	if rightDash < 4 {
		rightDash = 4
	}
	if rightDash > 50 {
		rightDash = 50
	}
	fmt.Fprintf(d.w, "\033[2m %s Packet Log  %s\033[0m\033[K",
		strings.Repeat("-", leftDash), strings.Repeat("-", rightDash))
}

func (d *Dashboard) drawDataRow(label string, r LatencyStats) {
	if r.Count == 0 {
		fmt.Fprintf(d.w, " %-8s%6s %9s %9s %9s %9s %9s %9s\033[K\n",
			label, "-", "-", "-", "-", "-", "-", "-")
		return
	}
	fmt.Fprintf(d.w, " %-8s%6d %9.1f %9.1f %9.1f %9.1f %9.1f %9.1f\033[K\n",
		label, r.Count, r.MinUs, r.P50Us, r.P95Us, r.P99Us, r.P999Us, r.MaxUs)
}
