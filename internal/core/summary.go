package core

import (
	"strconv"
	"time"
)

// FrequencyTotal is an aggregated amount for one frequency bucket.
type FrequencyTotal struct {
	Frequency Frequency
	Total     Money
}

// ContractSummary is the aggregated display view of a contract's
// currently active rates across all its obligations.
type ContractSummary struct {
	Recurring         []FrequencyTotal // non-zero buckets in canonical order
	Unknown           Money            // amounts whose frequency could not be determined
	InstallmentsTotal Money
	InstallmentsCount int
}

// dutchFrequencyLabels are the display labels for frequency buckets.
var dutchFrequencyLabels = map[Frequency]string{
	Daily:     "per dag",
	Weekly:    "per week",
	Biweekly:  "per twee weken",
	Monthly:   "per maand",
	Quarterly: "per kwartaal",
	Yearly:    "per jaar",
}

// DutchLabel returns the display wording for a frequency bucket.
func (f Frequency) DutchLabel() string {
	if label, ok := dutchFrequencyLabels[f]; ok {
		return label
	}
	return string(f)
}

// Summarize resolves the active rate of every obligation independently
// and aggregates the results: recurring amounts are summed per
// frequency bucket, amounts with an undeterminable frequency accumulate
// into the unknown bucket instead of being dropped, and installment
// schedules contribute their term count and total.
func Summarize(c Contract, now time.Time) ContractSummary {
	var s ContractSummary
	buckets := make(map[Frequency]Money)

	for _, ob := range c.Obligations {
		rate, ok := ActiveRate(ob.Rates, now)
		if !ok {
			continue
		}

		if rate.Schedule != nil && rate.Schedule.Type == ScheduleInstallments {
			for _, term := range rate.Schedule.Installments {
				s.InstallmentsTotal = s.InstallmentsTotal.Add(term.Amount)
			}
			s.InstallmentsCount += len(rate.Schedule.Installments)
			continue
		}

		if f, ok := ResolveFrequency(rate, ob); ok {
			buckets[f] = buckets[f].Add(rate.Amount)
		} else {
			s.Unknown = s.Unknown.Add(rate.Amount)
		}
	}

	for _, f := range Frequencies() {
		if total, ok := buckets[f]; ok && !total.IsZero() {
			s.Recurring = append(s.Recurring, FrequencyTotal{Frequency: f, Total: total})
		}
	}
	return s
}

// IsEmpty reports whether the summary has nothing worth rendering.
func (s ContractSummary) IsEmpty() bool {
	return len(s.Recurring) == 0 && s.Unknown.IsZero() && s.InstallmentsCount == 0
}

// Lines renders the summary as display lines: one per non-zero
// frequency bucket, one for the unknown bucket when non-zero, one for
// installment totals when any exist.
func (s ContractSummary) Lines() []string {
	var lines []string
	for _, ft := range s.Recurring {
		lines = append(lines, ft.Total.Format()+" "+ft.Frequency.DutchLabel())
	}
	if !s.Unknown.IsZero() {
		lines = append(lines, s.Unknown.Format()+" frequentie onbekend")
	}
	if s.InstallmentsCount > 0 {
		lines = append(lines, strconv.Itoa(s.InstallmentsCount)+" termijnen, totaal "+s.InstallmentsTotal.Format())
	}
	return lines
}
