package core

import (
	"time"

	"github.com/google/uuid"
)

// MergeObligations applies a batch of obligation inputs against an
// existing obligation list with strict append-only semantics:
//
//   - an input whose ID matches an existing obligation updates that
//     obligation's label (when one is supplied) and appends a freshly
//     identified rate to its history (when one is supplied);
//   - an input without a matching ID becomes a new obligation at the
//     end of the list, carrying zero or one initial rate;
//   - existing obligations are never removed or reordered, and existing
//     rates are never touched.
//
// A nil input slice leaves the existing list as-is. The returned slice
// is always a fresh copy; callers may hand it out without aliasing the
// caller's data.
func MergeObligations(inputs []ObligationInput, existing []PaymentObligation, now time.Time) []PaymentObligation {
	if inputs == nil {
		return CloneObligations(existing)
	}

	result := CloneObligations(existing)
	index := make(map[string]int, len(result))
	for i, ob := range result {
		index[ob.ID] = i
	}

	for _, in := range inputs {
		if i, ok := index[in.ID]; ok && in.ID != "" {
			if in.Label != nil {
				result[i].Label = *in.Label
			}
			if in.Rate != nil {
				result[i].Rates = append(result[i].Rates, newRate(*in.Rate, now))
			}
			continue
		}

		ob := PaymentObligation{
			ID:        uuid.NewString(),
			CreatedAt: now,
			Rates:     []PaymentRate{},
		}
		if in.Label != nil {
			ob.Label = *in.Label
		}
		if in.Rate != nil {
			ob.Rates = append(ob.Rates, newRate(*in.Rate, now))
		}
		result = append(result, ob)
		index[ob.ID] = len(result) - 1
	}

	return result
}

func newRate(in RateInput, now time.Time) PaymentRate {
	validFrom := in.ValidFrom
	if validFrom.IsZero() {
		validFrom = now
	}
	return PaymentRate{
		ID:        uuid.NewString(),
		Amount:    in.Amount,
		ValidFrom: validFrom,
		ValidTo:   in.ValidTo,
		CreatedAt: now,
		Schedule:  in.Schedule,
		Frequency: in.Frequency,
	}
}
