package store

import (
	"testing"

	"spaarpot/internal/core"
)

func TestCurrentStartsEmpty(t *testing.T) {
	s := New()
	if got := s.Current(); len(got) != 0 {
		t.Errorf("Current() = %v, want empty", got)
	}
}

func TestSubscribeReceivesCurrentImmediately(t *testing.T) {
	s := New()
	s.Replace([]core.Contract{{ID: "c1", Name: "Huur"}})

	var got []core.Contract
	cancel := s.Subscribe(func(list []core.Contract) { got = list })
	defer cancel()

	if len(got) != 1 || got[0].ID != "c1" {
		t.Errorf("initial notification = %v", got)
	}
}

func TestReplaceNotifiesInSubscriptionOrder(t *testing.T) {
	s := New()

	var order []string
	cancelA := s.Subscribe(func([]core.Contract) { order = append(order, "a") })
	defer cancelA()
	cancelB := s.Subscribe(func([]core.Contract) { order = append(order, "b") })
	defer cancelB()

	order = nil
	s.Replace([]core.Contract{{ID: "c1"}})

	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("notification order = %v, want [a b]", order)
	}
}

func TestCancelStopsNotifications(t *testing.T) {
	s := New()

	calls := 0
	cancel := s.Subscribe(func([]core.Contract) { calls++ })
	cancel()
	cancel() // second cancel is a no-op

	s.Replace([]core.Contract{{ID: "c1"}})
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (initial only)", calls)
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	s := New()
	s.Replace([]core.Contract{{
		ID:   "c1",
		Name: "Huur",
		Obligations: []core.PaymentObligation{
			{ID: "o1", Rates: []core.PaymentRate{{ID: "r1", Amount: core.Money{Cents: 100}}}},
		},
	}})

	snap := s.Current()
	snap[0].Name = "tampered"
	snap[0].Obligations[0].Rates[0].Amount.Cents = 999

	again := s.Current()
	if again[0].Name != "Huur" {
		t.Error("Current() exposes shared contract state")
	}
	if again[0].Obligations[0].Rates[0].Amount.Cents != 100 {
		t.Error("Current() exposes shared rate state")
	}
}

func TestSubscriberMayReadStoreDuringNotify(t *testing.T) {
	s := New()

	var seen int
	cancel := s.Subscribe(func(list []core.Contract) {
		// Re-entrant read must not deadlock.
		seen = len(s.Current())
		_ = list
	})
	defer cancel()

	s.Replace([]core.Contract{{ID: "c1"}, {ID: "c2"}})
	if seen != 2 {
		t.Errorf("re-entrant Current() saw %d contracts, want 2", seen)
	}
}
