/*
@Description: Terminal dashboard rendering tests
*/

package rtlink

import (
	"bytes"
	"strings"
	"testing"
)

func TestDashboardInitializeDrawsSevenHeaderLines(t *testing.T) {
	var buf bytes.Buffer
	d := NewDashboard(&buf, 24, 80)
	d.Initialize()

	out := buf.String()
	if !strings.Contains(out, "\033[2J\033[H") {
		t.Errorf("Initialize did not clear the screen")
	}
	if !strings.Contains(out, "UDP Latency Dashboard") {
		t.Errorf("Initialize did not draw the title bar")
	}
	if !strings.Contains(out, "\033[8;24r") {
		t.Errorf("Initialize did not pin the scroll region below the %d-line header", HeaderLines)
	}
}

func TestDashboardUpdateStatsNoopBeforeInitialize(t *testing.T) {
	var buf bytes.Buffer
	d := NewDashboard(&buf, 24, 80)
	d.UpdateStats(LatencyStats{}, LatencyStats{}, LatencyStats{})
	if buf.Len() != 0 {
		t.Errorf("UpdateStats wrote output before Initialize: %q", buf.String())
	}
}

func TestDashboardUpdateStatsSavesAndRestoresCursor(t *testing.T) {
	var buf bytes.Buffer
	d := NewDashboard(&buf, 24, 80)
	d.Initialize()
	buf.Reset()

	stats := LatencyStats{Count: 10, MinUs: 1, P50Us: 2, P95Us: 3, P99Us: 4, P999Us: 5, MaxUs: 6}
	d.UpdateStats(stats, stats, stats)

	out := buf.String()
	if !strings.HasPrefix(out, "\033[s") {
		t.Errorf("UpdateStats did not save the cursor first")
	}
	if !strings.HasSuffix(out, "\033[u") {
		t.Errorf("UpdateStats did not restore the cursor last")
	}
	if strings.Count(out, "TX Send") != 1 || strings.Count(out, "RX Proc") != 1 || strings.Count(out, "RX Intv") != 1 {
		t.Errorf("UpdateStats did not render all three data rows: %q", out)
	}
}

func TestDashboardWriteImplementsIoWriter(t *testing.T) {
	var buf bytes.Buffer
	d := NewDashboard(&buf, 24, 80)
	n, err := d.Write([]byte("log line\n"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != len("log line\n") {
		t.Errorf("Write returned %d, want %d", n, len("log line\n"))
	}
	if buf.String() != "log line\n" {
		t.Errorf("buffer = %q", buf.String())
	}
}

func TestDashboardShutdownResetsScrollRegion(t *testing.T) {
	var buf bytes.Buffer
	d := NewDashboard(&buf, 24, 80)
	d.Initialize()
	buf.Reset()

	d.Shutdown()
	if !strings.Contains(buf.String(), "\033[r") {
		t.Errorf("Shutdown did not reset the scroll region")
	}

	buf.Reset()
	d.Shutdown() // must be a no-op once already shut down
	if buf.Len() != 0 {
		t.Errorf("second Shutdown wrote output: %q", buf.String())
	}
}
