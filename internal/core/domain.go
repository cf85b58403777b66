package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Daily     Frequency = "daily"
	Weekly    Frequency = "weekly"
	Biweekly  Frequency = "biweekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Yearly    Frequency = "yearly"
)

const (
	ScheduleRecurring    ScheduleType = "recurring"
	ScheduleInstallments ScheduleType = "installments"
)

type (
	// Frequency is how often a recurring amount is due.
	Frequency string

	ScheduleType string

	// InstallmentTerm is a single dated amount in an installments schedule.
	// The date is kept as the ISO string it was entered with so stored
	// records round-trip unchanged.
	InstallmentTerm struct {
		ID     string `json:"id,omitempty"`
		Date   string `json:"date"`
		Amount Money  `json:"amount"`
	}

	// Schedule is the tagged scheduling variant of a rate: either a
	// recurring frequency or an explicit list of installment terms.
	Schedule struct {
		Type         ScheduleType      `json:"type"`
		Frequency    Frequency         `json:"frequency,omitempty"`
		Installments []InstallmentTerm `json:"installments,omitempty"`
	}

	// PaymentRate is one entry in an obligation's append-only history.
	// Amount is the per-period amount for recurring schedules and the
	// total sum for installments. Frequency is the legacy untagged field
	// found on records that predate Schedule.
	PaymentRate struct {
		ID        string     `json:"id"`
		Amount    Money      `json:"amount"`
		ValidFrom time.Time  `json:"validFrom"`
		ValidTo   *time.Time `json:"validTo,omitempty"`
		CreatedAt time.Time  `json:"createdAt"`
		Schedule  *Schedule  `json:"schedule,omitempty"`
		Frequency Frequency  `json:"frequency,omitempty"`
	}

	// PaymentObligation is a named payment commitment under a contract.
	// Rates only ever grow; entries are never mutated or removed.
	// Frequency is a legacy obligation-level field kept for old records.
	PaymentObligation struct {
		ID        string        `json:"id"`
		Label     string        `json:"label,omitempty"`
		CreatedAt time.Time     `json:"createdAt"`
		Frequency Frequency     `json:"frequency,omitempty"`
		Rates     []PaymentRate `json:"rates"`
	}

	// Contract is a tracked recurring financial arrangement.
	Contract struct {
		ID            string              `json:"id"`
		Name          string              `json:"name"`
		AccountNumber string              `json:"accountNumber"`
		Description   string              `json:"description,omitempty"`
		CreatedAt     time.Time           `json:"createdAt"`
		Obligations   []PaymentObligation `json:"obligations,omitempty"`
	}
)

var (
	ErrEmptyName          = errors.New("empty contract name")
	ErrEmptyAccountNumber = errors.New("empty account number")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrNegativeAmount     = errors.New("negative amount")
	ErrInvalidFrequency   = errors.New("invalid frequency")
	ErrInvalidSchedule    = errors.New("invalid schedule")
)

// Frequencies lists all valid frequencies in canonical display order.
func Frequencies() []Frequency {
	return []Frequency{Daily, Weekly, Biweekly, Monthly, Quarterly, Yearly}
}

func (f Frequency) IsValid() bool {
	switch f {
	case Daily, Weekly, Biweekly, Monthly, Quarterly, Yearly:
		return true
	default:
		return false
	}
}

// ParseFrequency maps a raw string to a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", ErrInvalidFrequency
	}
	return f, nil
}

func (s Schedule) Validate() error {
	switch s.Type {
	case ScheduleRecurring:
		if !s.Frequency.IsValid() {
			return ErrInvalidFrequency
		}
	case ScheduleInstallments:
		for _, term := range s.Installments {
			if strings.TrimSpace(term.Date) == "" {
				return ErrInvalidSchedule
			}
			if term.Amount.Cents < 0 {
				return ErrNegativeAmount
			}
		}
	default:
		return ErrInvalidSchedule
	}
	return nil
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing internal slices to mutation.
func (c Contract) Clone() Contract {
	out := c
	out.Obligations = CloneObligations(c.Obligations)
	return out
}

func CloneObligations(obs []PaymentObligation) []PaymentObligation {
	if obs == nil {
		return nil
	}
	out := make([]PaymentObligation, len(obs))
	for i, ob := range obs {
		out[i] = ob
		out[i].Rates = append([]PaymentRate(nil), ob.Rates...)
	}
	return out
}

// NewContractInput is the shape accepted by repository add and update.
type NewContractInput struct {
	Name          string
	AccountNumber string
	Description   string
	Obligations   []ObligationInput
}

// ObligationInput targets an existing obligation when ID is set,
// otherwise it creates a new one. A nil Label leaves the existing label
// untouched; a non-nil Label replaces it, even with an empty string.
type ObligationInput struct {
	ID    string
	Label *string
	Rate  *RateInput
}

// RateInput describes one new rate to append. A zero ValidFrom defaults
// to the time of the operation.
type RateInput struct {
	Amount    Money
	ValidFrom time.Time
	ValidTo   *time.Time
	Schedule  *Schedule
	Frequency Frequency
}

// Normalized returns a copy with name, account number and description
// trimmed of surrounding whitespace.
func (in NewContractInput) Normalized() NewContractInput {
	out := in
	out.Name = strings.TrimSpace(in.Name)
	out.AccountNumber = strings.TrimSpace(in.AccountNumber)
	out.Description = strings.TrimSpace(in.Description)
	return out
}

func (in NewContractInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(in.AccountNumber) == "" {
		return ErrEmptyAccountNumber
	}
	for _, ob := range in.Obligations {
		if ob.Rate == nil {
			continue
		}
		if err := ob.Rate.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r RateInput) Validate() error {
	if r.Amount.Cents < 0 {
		return ErrNegativeAmount
	}
	if r.Schedule != nil {
		if err := r.Schedule.Validate(); err != nil {
			return err
		}
	}
	if r.Frequency != "" && !r.Frequency.IsValid() {
		return ErrInvalidFrequency
	}
	return nil
}
