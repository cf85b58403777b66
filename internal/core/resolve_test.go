package core

import (
	"testing"
	"time"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestActiveRate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	tests := []struct {
		name   string
		rates  []PaymentRate
		wantID string
		wantOK bool
	}{
		{
			name:   "no rates",
			rates:  nil,
			wantOK: false,
		},
		{
			name: "single valid rate",
			rates: []PaymentRate{
				{ID: "r1", ValidFrom: now.Add(-10 * day), CreatedAt: now.Add(-10 * day)},
			},
			wantID: "r1",
			wantOK: true,
		},
		{
			name: "overlapping valid rates pick latest validFrom",
			rates: []PaymentRate{
				{ID: "old", ValidFrom: now.Add(-30 * day), CreatedAt: now.Add(-30 * day)},
				{ID: "new", ValidFrom: now.Add(-5 * day), CreatedAt: now.Add(-5 * day)},
			},
			wantID: "new",
			wantOK: true,
		},
		{
			name: "validFrom tie broken by createdAt",
			rates: []PaymentRate{
				{ID: "first", ValidFrom: now.Add(-5 * day), CreatedAt: now.Add(-5 * day)},
				{ID: "second", ValidFrom: now.Add(-5 * day), CreatedAt: now.Add(-4 * day)},
			},
			wantID: "second",
			wantOK: true,
		},
		{
			name: "expired rate excluded",
			rates: []PaymentRate{
				{ID: "expired", ValidFrom: now.Add(-30 * day), ValidTo: timePtr(now.Add(-10 * day)), CreatedAt: now.Add(-30 * day)},
				{ID: "current", ValidFrom: now.Add(-9 * day), CreatedAt: now.Add(-9 * day)},
			},
			wantID: "current",
			wantOK: true,
		},
		{
			name: "future rate excluded",
			rates: []PaymentRate{
				{ID: "current", ValidFrom: now.Add(-9 * day), CreatedAt: now.Add(-9 * day)},
				{ID: "future", ValidFrom: now.Add(9 * day), CreatedAt: now.Add(-1 * day)},
			},
			wantID: "current",
			wantOK: true,
		},
		{
			name: "validTo boundary inclusive",
			rates: []PaymentRate{
				{ID: "edge", ValidFrom: now.Add(-9 * day), ValidTo: timePtr(now), CreatedAt: now.Add(-9 * day)},
			},
			wantID: "edge",
			wantOK: true,
		},
		{
			name: "none valid falls back to most recently defined",
			rates: []PaymentRate{
				{ID: "older", ValidFrom: now.Add(5 * day), CreatedAt: now.Add(-2 * day)},
				{ID: "newest", ValidFrom: now.Add(10 * day), CreatedAt: now.Add(-1 * day)},
			},
			wantID: "newest",
			wantOK: true,
		},
		{
			name: "fallback uses createdAt when validFrom missing",
			rates: []PaymentRate{
				{ID: "a", ValidFrom: now.Add(2 * day), CreatedAt: now.Add(-3 * day), ValidTo: timePtr(now.Add(3 * day))},
				{ID: "b", CreatedAt: now.Add(5 * day), ValidTo: timePtr(now.Add(-1 * day))},
			},
			wantID: "b",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ActiveRate(tt.rates, now)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.ID != tt.wantID {
				t.Errorf("ActiveRate() = %q, want %q", got.ID, tt.wantID)
			}
		})
	}
}

func TestResolveFrequency(t *testing.T) {
	tests := []struct {
		name       string
		rate       PaymentRate
		obligation PaymentObligation
		want       Frequency
		wantOK     bool
	}{
		{
			name:   "tagged recurring schedule",
			rate:   PaymentRate{Schedule: &Schedule{Type: ScheduleRecurring, Frequency: Monthly}},
			want:   Monthly,
			wantOK: true,
		},
		{
			name:   "legacy rate frequency",
			rate:   PaymentRate{Frequency: Weekly},
			want:   Weekly,
			wantOK: true,
		},
		{
			name:       "legacy obligation frequency",
			rate:       PaymentRate{},
			obligation: PaymentObligation{Frequency: Quarterly},
			want:       Quarterly,
			wantOK:     true,
		},
		{
			name:       "schedule wins over legacy fields",
			rate:       PaymentRate{Schedule: &Schedule{Type: ScheduleRecurring, Frequency: Yearly}, Frequency: Monthly},
			obligation: PaymentObligation{Frequency: Weekly},
			want:       Yearly,
			wantOK:     true,
		},
		{
			name:       "label keyword maandelijks",
			rate:       PaymentRate{},
			obligation: PaymentObligation{Label: "Huur maandelijks"},
			want:       Monthly,
			wantOK:     true,
		},
		{
			name:       "label keyword tweewekelijks beats wekelijks substring",
			rate:       PaymentRate{},
			obligation: PaymentObligation{Label: "schoonmaak tweewekelijks"},
			want:       Biweekly,
			wantOK:     true,
		},
		{
			name:       "label keyword kwartaal",
			rate:       PaymentRate{},
			obligation: PaymentObligation{Label: "verzekering per kwartaal"},
			want:       Quarterly,
			wantOK:     true,
		},
		{
			name:       "label keyword per jaar",
			rate:       PaymentRate{},
			obligation: PaymentObligation{Label: "contributie per jaar"},
			want:       Yearly,
			wantOK:     true,
		},
		{
			name:       "unresolvable goes to unknown",
			rate:       PaymentRate{},
			obligation: PaymentObligation{Label: "abonnement"},
			wantOK:     false,
		},
		{
			name:   "no schedule no legacy no label",
			rate:   PaymentRate{},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveFrequency(tt.rate, tt.obligation)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ResolveFrequency() = %q, want %q", got, tt.want)
			}
		})
	}
}
