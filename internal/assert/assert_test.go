package assert

import (
	"testing"
)

func TestThatPassing(t *testing.T) {
	if !That(true, "never fails") {
		t.Error("That(true) should return true")
	}
}

func TestThatFailingPanics(t *testing.T) {
	if !Enabled {
		t.Skip("assertions compiled out")
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic from failed assertion")
		}
		f, ok := r.(Failure)
		if !ok {
			t.Fatalf("expected Failure panic value, got %T", r)
		}
		if f.Msg != "slot 3 busy" {
			t.Errorf("unexpected message %q", f.Msg)
		}
	}()

	Thatf(false, "slot %d busy", 3)
}
