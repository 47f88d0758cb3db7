package testkit

import (
	"testing"
	"time"
)

var clock = func() time.Time { return time.Unix(0, 0) }

func TestSwap_Restores(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("swapped", func(t *testing.T) {
		Swap(t, &clock, func() time.Time { return fixed })
		if !clock().Equal(fixed) {
			t.Fatalf("seam not swapped")
		}
	})

	if !clock().Equal(time.Unix(0, 0)) {
		t.Fatalf("seam not restored")
	}
}
