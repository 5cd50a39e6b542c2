// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Excalibur EXS Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/excalibur-exs/tetrad/fault"
)

// test that the error classes stay distinguishable
func TestErrorClassification(t *testing.T) {

	if !fault.IsErrInvalid(fault.InvalidRounds) {
		t.Errorf("InvalidRounds is not classified as invalid")
	}
	if fault.IsErrProcess(fault.InvalidRounds) {
		t.Errorf("InvalidRounds is wrongly classified as process")
	}

	if !fault.IsErrProcess(fault.NonceSpaceExhausted) {
		t.Errorf("NonceSpaceExhausted is not classified as process")
	}
	if fault.IsErrInvalid(fault.NonceSpaceExhausted) {
		t.Errorf("NonceSpaceExhausted is wrongly classified as invalid")
	}
}

func TestErrorText(t *testing.T) {
	expected := "nonce space exhausted at this difficulty"
	if actual := fault.NonceSpaceExhausted.Error(); actual != expected {
		t.Errorf("actual: %q  expected: %q", actual, expected)
	}
}
