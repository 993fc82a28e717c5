package utils

import "testing"

func TestPickIsStable(t *testing.T) {
	opts := []string{"a", "b", "c"}
	first := Pick("30123456", "plan", opts)
	for i := 0; i < 10; i++ {
		if got := Pick("30123456", "plan", opts); got != first {
			t.Fatalf("pick changed: %s vs %s", got, first)
		}
	}
	if Pick("x", "plan", nil) != "" {
		t.Fatalf("expected empty pick for no options")
	}
}
