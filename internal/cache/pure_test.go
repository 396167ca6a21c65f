package cache

import (
	"context"
	"testing"
	"time"
)

func TestCheckWindow_DisabledLimit(t *testing.T) {
	t.Parallel()

	// A zero or negative limit disables the window; no Redis round
	// trip happens, so a bare Cache is safe here.
	c := &Cache{}

	for _, limit := range []int{0, -1} {
		result, err := c.checkWindow(context.Background(), "ratelimit:test", limit, time.Minute)
		if err != nil {
			t.Fatalf("checkWindow with limit %d: %v", limit, err)
		}
		if !result.Allowed {
			t.Errorf("limit %d should always allow", limit)
		}
		if result.ResetAt.Before(time.Now()) {
			t.Errorf("ResetAt should be in the future, got %v", result.ResetAt)
		}
	}
}
