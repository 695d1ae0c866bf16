// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/iox"
	"go.ringq.dev/ringq"
)

func TestIsWouldBlock(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"ErrWouldBlock", ringq.ErrWouldBlock, true},
		{"iox.ErrWouldBlock", iox.ErrWouldBlock, true},
		{"ErrDataLost", ringq.ErrDataLost, false},
		{"other", errors.New("other"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ringq.IsWouldBlock(tt.err); got != tt.want {
				t.Errorf("IsWouldBlock(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsDataLost(t *testing.T) {
	if !ringq.IsDataLost(ringq.ErrDataLost) {
		t.Error("IsDataLost(ErrDataLost) = false, want true")
	}
	if ringq.IsDataLost(ringq.ErrWouldBlock) {
		t.Error("IsDataLost(ErrWouldBlock) = true, want false")
	}
	if ringq.IsDataLost(nil) {
		t.Error("IsDataLost(nil) = true, want false")
	}
}

func TestIsSemantic(t *testing.T) {
	for _, err := range []error{ringq.ErrWouldBlock, ringq.ErrDataLost} {
		if !ringq.IsSemantic(err) {
			t.Errorf("IsSemantic(%v) = false, want true", err)
		}
	}
	if ringq.IsSemantic(errors.New("boom")) {
		t.Error("IsSemantic(unrelated error) = true, want false")
	}
}

func TestIsNonFailure(t *testing.T) {
	for _, err := range []error{nil, ringq.ErrWouldBlock, ringq.ErrDataLost} {
		if !ringq.IsNonFailure(err) {
			t.Errorf("IsNonFailure(%v) = false, want true", err)
		}
	}
	if ringq.IsNonFailure(errors.New("boom")) {
		t.Error("IsNonFailure(unrelated error) = true, want false")
	}
}
