/*
@Description: CPU pinning no-op path tests
*/

package rtlink

import "testing"

func TestPinThreadSkipsDisabledAffinityAndPriority(t *testing.T) {
	if err := pinThread(-1, 0); err != nil {
		t.Errorf("pinThread(-1, 0) = %v, want nil (both affinity and RT priority disabled)", err)
	}
}
