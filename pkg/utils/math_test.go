package utils

import (
	"testing"
	"time"
)

func TestCeilToPowerOfTwo(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-3, 1},
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{64, 64},
		{100, 128},
	}

	for _, tt := range tests {
		got := CeilToPowerOfTwo(tt.in)
		if got != tt.want {
			t.Errorf("CeilToPowerOfTwo(%d) = %d, want %d", tt.in, got, tt.want)
		}
		if !IsPowerOfTwo(got) {
			t.Errorf("CeilToPowerOfTwo(%d) = %d is not a power of two", tt.in, got)
		}
	}
}

func TestToDuration(t *testing.T) {
	if got := ToDuration(3); got != 3*time.Second {
		t.Errorf("ToDuration(3) = %v", got)
	}
	if got := ToDurationMs(250); got != 250*time.Millisecond {
		t.Errorf("ToDurationMs(250) = %v", got)
	}
}
