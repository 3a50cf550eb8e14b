package chat_test

import (
	"testing"

	"github.com/ringel-ai/admitchat/chat"
)

func TestDurations_SetDoesNotMutateReceiver(t *testing.T) {
	d1 := chat.Durations{"a": 100}
	d2 := d1.Set("b", 250)

	if _, ok := d1.Get("b"); ok {
		t.Fatalf("Set mutated the original ledger")
	}
	if ms, ok := d2.Get("b"); !ok || ms != 250 {
		t.Fatalf("new ledger missing entry: got %d %t", ms, ok)
	}
	if ms, _ := d2.Get("a"); ms != 100 {
		t.Fatalf("new ledger dropped prior entry")
	}
}

func TestDurations_SetOverwritesByID(t *testing.T) {
	d := chat.Durations{}.Set("m", 10).Set("m", 20)
	if ms, _ := d.Get("m"); ms != 20 {
		t.Fatalf("overwrite by id failed: got %d want 20", ms)
	}
	if len(d) != 1 {
		t.Fatalf("expected single entry, got %d", len(d))
	}
}

func TestDurations_SetOnNilLedger(t *testing.T) {
	var d chat.Durations
	d2 := d.Set("m", 5)
	if ms, ok := d2.Get("m"); !ok || ms != 5 {
		t.Fatalf("set on nil ledger: got %d %t", ms, ok)
	}
}
