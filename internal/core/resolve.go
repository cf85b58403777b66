package core

import (
	"strings"
	"time"
)

// ActiveRate selects the rate that applies to an obligation at the
// reference time:
//
//  1. among rates whose validity window contains now, the one with the
//     latest ValidFrom wins, ties broken by latest CreatedAt;
//  2. when no rate is currently valid (all expired or all in the
//     future), the most recently defined rate is returned instead.
//
// The fallback is a display convenience, not a validity claim. The
// second return value is false only when the obligation has no rates
// at all.
func ActiveRate(rates []PaymentRate, now time.Time) (PaymentRate, bool) {
	var (
		best      PaymentRate
		haveValid bool
	)
	for _, r := range rates {
		if !validAt(r, now) {
			continue
		}
		if !haveValid || laterRate(r, best) {
			best = r
			haveValid = true
		}
	}
	if haveValid {
		return best, true
	}

	var haveAny bool
	for _, r := range rates {
		if !haveAny || definedAt(r).After(definedAt(best)) {
			best = r
			haveAny = true
		}
	}
	return best, haveAny
}

func validAt(r PaymentRate, now time.Time) bool {
	if !r.ValidFrom.IsZero() && r.ValidFrom.After(now) {
		return false
	}
	if r.ValidTo != nil && r.ValidTo.Before(now) {
		return false
	}
	return true
}

func laterRate(a, b PaymentRate) bool {
	if !a.ValidFrom.Equal(b.ValidFrom) {
		return a.ValidFrom.After(b.ValidFrom)
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// definedAt is when a rate was effectively defined: ValidFrom when set,
// otherwise CreatedAt (legacy records without an explicit start).
func definedAt(r PaymentRate) time.Time {
	if !r.ValidFrom.IsZero() {
		return r.ValidFrom
	}
	return r.CreatedAt
}

// frequencyResolver is one step in the fallback chain. It inspects a
// rate in the context of its obligation and reports a frequency when it
// can determine one.
type frequencyResolver func(PaymentRate, PaymentObligation) (Frequency, bool)

var frequencyResolvers = []frequencyResolver{
	frequencyFromSchedule,
	frequencyFromLegacyRate,
	frequencyFromLegacyObligation,
	frequencyFromLabel,
}

// ResolveFrequency determines the recurring frequency of a rate via an
// ordered fallback chain: tagged schedule, legacy rate-level field,
// legacy obligation-level field, then keyword inference on the
// obligation label. The first resolver that succeeds wins. A false
// result routes the amount into the unknown-frequency bucket.
func ResolveFrequency(r PaymentRate, ob PaymentObligation) (Frequency, bool) {
	for _, resolve := range frequencyResolvers {
		if f, ok := resolve(r, ob); ok {
			return f, true
		}
	}
	return "", false
}

func frequencyFromSchedule(r PaymentRate, _ PaymentObligation) (Frequency, bool) {
	if r.Schedule != nil && r.Schedule.Type == ScheduleRecurring && r.Schedule.Frequency.IsValid() {
		return r.Schedule.Frequency, true
	}
	return "", false
}

func frequencyFromLegacyRate(r PaymentRate, _ PaymentObligation) (Frequency, bool) {
	// A bare frequency without a schedule is an implicit recurring
	// schedule on records written before schedules existed.
	if r.Schedule == nil && r.Frequency.IsValid() {
		return r.Frequency, true
	}
	return "", false
}

func frequencyFromLegacyObligation(r PaymentRate, ob PaymentObligation) (Frequency, bool) {
	if r.Schedule == nil && ob.Frequency.IsValid() {
		return ob.Frequency, true
	}
	return "", false
}

// labelKeywords maps Dutch frequency wording found in free-text labels.
// Order matters: "tweewekelijks" contains "wekelijks" and
// "driemaandelijks" contains "maandelijks", so the more specific
// buckets come first.
var labelKeywords = []struct {
	frequency Frequency
	keywords  []string
}{
	{Biweekly, []string{"tweewekelijks", "twee weken", "veertien dagen"}},
	{Quarterly, []string{"driemaandelijks", "kwartaal"}},
	{Monthly, []string{"maandelijks", "per maand", "maand"}},
	{Weekly, []string{"wekelijks", "per week", "week"}},
	{Yearly, []string{"jaarlijks", "per jaar", "jaar"}},
	{Daily, []string{"dagelijks", "per dag"}},
}

func frequencyFromLabel(r PaymentRate, ob PaymentObligation) (Frequency, bool) {
	if r.Schedule != nil {
		return "", false
	}
	label := strings.ToLower(ob.Label)
	if label == "" {
		return "", false
	}
	for _, entry := range labelKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(label, kw) {
				return entry.frequency, true
			}
		}
	}
	return "", false
}
