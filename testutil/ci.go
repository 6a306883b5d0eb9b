// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"os"
	"testing"
)

// EnvSlowTests enables the statistical tests that sample tens of
// thousands of digests.
const EnvSlowTests = "HASHCORE_CI"

// SkipCI skips tb under -short or when EnvSlowTests is unset.
func SkipCI(tb testing.TB) {
	tb.Helper()
	if testing.Short() {
		tb.Skip("slow test skipped in short mode")
	}
	if os.Getenv(EnvSlowTests) == "" {
		tb.Skipf("set %s to run slow tests", EnvSlowTests)
	}
}
