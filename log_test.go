/*
@Description: Logger wiring tests
*/

package rtlink

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLoggerWritesToDashboard(t *testing.T) {
	var buf bytes.Buffer
	dash := NewDashboard(&buf, 24, 80)

	log := NewLogger(dash)
	defer log.Sync()
	log.Info("link established")

	if !strings.Contains(buf.String(), "link established") {
		t.Errorf("dashboard pane did not receive the log line: %q", buf.String())
	}
}
