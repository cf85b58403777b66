package core

import (
	"reflect"
	"testing"
	"time"
)

func recurringObligation(id string, cents int64, f Frequency, at time.Time) PaymentObligation {
	return PaymentObligation{
		ID:        id,
		CreatedAt: at,
		Rates: []PaymentRate{{
			ID:        id + "-r1",
			Amount:    Money{Cents: cents},
			ValidFrom: at,
			CreatedAt: at,
			Schedule:  &Schedule{Type: ScheduleRecurring, Frequency: f},
		}},
	}
}

func TestSummarizeSumsPerFrequencyBucket(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	earlier := now.Add(-24 * time.Hour)
	c := Contract{
		ID:   "c1",
		Name: "Huur",
		Obligations: []PaymentObligation{
			recurringObligation("o1", 5000, Monthly, earlier),
			recurringObligation("o2", 7500, Monthly, earlier),
		},
	}

	s := Summarize(c, now)
	want := []FrequencyTotal{{Frequency: Monthly, Total: Money{Cents: 12500}}}
	if !reflect.DeepEqual(s.Recurring, want) {
		t.Errorf("Recurring = %+v, want %+v", s.Recurring, want)
	}
	if !s.Unknown.IsZero() {
		t.Errorf("Unknown = %d, want 0", s.Unknown.Cents)
	}

	lines := s.Lines()
	if len(lines) != 1 || lines[0] != "125.00 per maand" {
		t.Errorf("Lines() = %v, want [125.00 per maand]", lines)
	}
}

func TestSummarizeMixedFrequencies(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	earlier := now.Add(-24 * time.Hour)
	c := Contract{
		Obligations: []PaymentObligation{
			recurringObligation("o1", 120000, Monthly, earlier),
			recurringObligation("o2", 9900, Yearly, earlier),
			recurringObligation("o3", 1500, Weekly, earlier),
		},
	}

	s := Summarize(c, now)
	want := []FrequencyTotal{
		{Frequency: Weekly, Total: Money{Cents: 1500}},
		{Frequency: Monthly, Total: Money{Cents: 120000}},
		{Frequency: Yearly, Total: Money{Cents: 9900}},
	}
	if !reflect.DeepEqual(s.Recurring, want) {
		t.Errorf("Recurring = %+v, want canonical order %+v", s.Recurring, want)
	}
}

func TestSummarizeUnknownBucketKeepsAmount(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	earlier := now.Add(-24 * time.Hour)
	c := Contract{
		Obligations: []PaymentObligation{
			{
				ID:        "o1",
				Label:     "abonnement",
				CreatedAt: earlier,
				Rates: []PaymentRate{{
					ID: "r1", Amount: Money{Cents: 2500}, ValidFrom: earlier, CreatedAt: earlier,
				}},
			},
		},
	}

	s := Summarize(c, now)
	if s.Unknown.Cents != 2500 {
		t.Errorf("Unknown = %d, want 2500 (amount must not be discarded)", s.Unknown.Cents)
	}
	lines := s.Lines()
	if len(lines) != 1 || lines[0] != "25.00 frequentie onbekend" {
		t.Errorf("Lines() = %v", lines)
	}
}

func TestSummarizeLabelInferenceBeforeUnknown(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	earlier := now.Add(-24 * time.Hour)
	c := Contract{
		Obligations: []PaymentObligation{
			{
				ID:        "o1",
				Label:     "premie per maand",
				CreatedAt: earlier,
				Rates: []PaymentRate{{
					ID: "r1", Amount: Money{Cents: 4200}, ValidFrom: earlier, CreatedAt: earlier,
				}},
			},
		},
	}

	s := Summarize(c, now)
	if len(s.Recurring) != 1 || s.Recurring[0].Frequency != Monthly {
		t.Fatalf("Recurring = %+v, want monthly via label inference", s.Recurring)
	}
	if !s.Unknown.IsZero() {
		t.Errorf("Unknown = %d, want 0", s.Unknown.Cents)
	}
}

func TestSummarizeInstallments(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	earlier := now.Add(-24 * time.Hour)
	c := Contract{
		Obligations: []PaymentObligation{
			{
				ID:        "o1",
				CreatedAt: earlier,
				Rates: []PaymentRate{{
					ID:        "r1",
					Amount:    Money{Cents: 20000},
					ValidFrom: earlier,
					CreatedAt: earlier,
					Schedule: &Schedule{
						Type: ScheduleInstallments,
						Installments: []InstallmentTerm{
							{Date: "2025-01-01", Amount: Money{Cents: 10000}},
							{Date: "2025-02-01", Amount: Money{Cents: 10000}},
						},
					},
				}},
			},
			recurringObligation("o2", 5000, Monthly, earlier),
		},
	}

	s := Summarize(c, now)
	if s.InstallmentsTotal.Cents != 20000 {
		t.Errorf("InstallmentsTotal = %d, want 20000", s.InstallmentsTotal.Cents)
	}
	if s.InstallmentsCount != 2 {
		t.Errorf("InstallmentsCount = %d, want 2", s.InstallmentsCount)
	}

	lines := s.Lines()
	wantLines := []string{"50.00 per maand", "2 termijnen, totaal 200.00"}
	if !reflect.DeepEqual(lines, wantLines) {
		t.Errorf("Lines() = %v, want %v", lines, wantLines)
	}
}

func TestSummarizeUsesActiveRatePerObligation(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	old := now.Add(-60 * 24 * time.Hour)
	recent := now.Add(-1 * 24 * time.Hour)
	c := Contract{
		Obligations: []PaymentObligation{
			{
				ID:        "o1",
				CreatedAt: old,
				Rates: []PaymentRate{
					{ID: "r1", Amount: Money{Cents: 120000}, ValidFrom: old, CreatedAt: old, Frequency: Monthly},
					{ID: "r2", Amount: Money{Cents: 130000}, ValidFrom: recent, CreatedAt: recent, Frequency: Monthly},
				},
			},
		},
	}

	s := Summarize(c, now)
	if len(s.Recurring) != 1 || s.Recurring[0].Total.Cents != 130000 {
		t.Errorf("Recurring = %+v, want only the newest rate (130000)", s.Recurring)
	}
}

func TestSummaryIsEmpty(t *testing.T) {
	if !(ContractSummary{}).IsEmpty() {
		t.Error("zero summary should be empty")
	}
	s := Summarize(Contract{}, time.Now())
	if !s.IsEmpty() {
		t.Error("contract without obligations should produce an empty summary")
	}
}
