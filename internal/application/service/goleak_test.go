package service

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain verifies no goroutine leaks after the debounce and engine tests
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
