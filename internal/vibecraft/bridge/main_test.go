package bridge

import (
	"testing"

	"go.uber.org/goleak"
)

// The Bridge is the one component with persistent background goroutines
// (reader task, reconnect loop); fail the package if any test leaks one.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
