// Package http provides the HTTP server and handler implementations.
//
// This file implements parsing of contract forms into domain inputs.

package http

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"spaarpot/internal/core"
)

// Dutch user-facing validation messages.
const (
	msgInvalidForm      = "Formulier kon niet worden verwerkt"
	msgMissingRequired  = "Naam en rekeningnummer zijn verplicht."
	msgInvalidAmount    = "Ongeldig bedrag"
	msgInvalidFrequency = "Ongeldige frequentie"
	msgInvalidDate      = "Ongeldige datum"
)

// ParseContractForm maps form fields to a contract input. Obligation
// rows come in as parallel arrays: obligation_id, obligation_label,
// obligation_amount, obligation_frequency and obligation_valid_from
// share the same index. A row with an empty amount contributes no new
// rate; a row with an empty id creates a new obligation.
func ParseContractForm(form url.Values) (core.NewContractInput, *HTMXResponseBuilder) {
	in := core.NewContractInput{
		Name:          sanitizeInput(form.Get("name")),
		AccountNumber: sanitizeInput(form.Get("account_number")),
		Description:   sanitizeInput(form.Get("description")),
	}

	if in.Name == "" || in.AccountNumber == "" {
		return core.NewContractInput{}, UnprocessableEntityError(msgMissingRequired)
	}

	ids := form["obligation_id"]
	labels := form["obligation_label"]
	amounts := form["obligation_amount"]
	frequencies := form["obligation_frequency"]
	validFroms := form["obligation_valid_from"]

	rows := len(ids)
	for _, vs := range [][]string{labels, amounts, frequencies, validFroms} {
		if len(vs) > rows {
			rows = len(vs)
		}
	}

	for i := 0; i < rows; i++ {
		ob := core.ObligationInput{ID: strings.TrimSpace(at(ids, i))}

		if label := sanitizeInput(at(labels, i)); label != "" || ob.ID == "" {
			l := label
			ob.Label = &l
		}

		amount := strings.TrimSpace(at(amounts, i))
		if amount != "" {
			cents, err := core.ParseDecimalToCents(amount)
			if err != nil {
				return core.NewContractInput{}, UnprocessableEntityError(msgInvalidAmount)
			}

			rate := &core.RateInput{Amount: core.Money{Cents: cents}}

			if raw := strings.TrimSpace(at(frequencies, i)); raw != "" {
				f, err := core.ParseFrequency(raw)
				if err != nil {
					return core.NewContractInput{}, UnprocessableEntityError(msgInvalidFrequency)
				}
				rate.Schedule = &core.Schedule{Type: core.ScheduleRecurring, Frequency: f}
			}

			if raw := strings.TrimSpace(at(validFroms, i)); raw != "" {
				from, err := time.Parse("2006-01-02", raw)
				if err != nil {
					return core.NewContractInput{}, UnprocessableEntityError(msgInvalidDate)
				}
				rate.ValidFrom = from
			}

			ob.Rate = rate
		}

		// Skip fully empty rows from templated forms.
		if ob.ID == "" && ob.Rate == nil && (ob.Label == nil || *ob.Label == "") {
			continue
		}

		in.Obligations = append(in.Obligations, ob)
	}

	return in, nil
}

func at(vs []string, i int) string {
	if i < len(vs) {
		return vs[i]
	}
	return ""
}

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// ParseFormOrFail parses the request form and returns an error response on failure.
// Returns nil on success.
func ParseFormOrFail(r *http.Request) *HTMXResponseBuilder {
	if err := r.ParseForm(); err != nil {
		return BadRequestError(msgInvalidForm)
	}
	return nil
}
