// Copyright 2025 Dataiter Authors
// SPDX-License-Identifier: Apache-2.0

package compression

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain verifies no codec leaks goroutines; every stream in this package
// is expected to run entirely in the caller's goroutine.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
