package http

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"spaarpot/internal/contracts"
	"spaarpot/internal/core"
	applog "spaarpot/internal/log"
)

const (
	msgContractNotFound = "Contract niet gevonden"
	msgSaveFailed       = "Kon contract niet opslaan"
	msgIBANWarning      = "Let op: rekeningnummer lijkt een IBAN maar de controlegetallen kloppen niet."
)

type frequencyOption struct {
	Value string
	Label string
}

func frequencyOptions() []frequencyOption {
	opts := make([]frequencyOption, 0, len(core.Frequencies()))
	for _, f := range core.Frequencies() {
		opts = append(opts, frequencyOption{Value: string(f), Label: f.DutchLabel()})
	}
	return opts
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	logger := applog.FromContext(r.Context())
	if s.templates == nil {
		logger.ErrorContext(r.Context(), "Templates not loaded", applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := struct {
		Frequencies []frequencyOption
	}{
		Frequencies: frequencyOptions(),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		applog.NewStructuredLogger(logger).LogError(r.Context(), "Index template execution failed",
			err, applog.ComponentTemplate, applog.OpRender, applog.LogFields{"template": "index.html"})
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleCreateContract accepts the new-contract form and persists it.
func (s *Server) handleCreateContract(w http.ResponseWriter, r *http.Request) {
	logger := applog.FromContext(r.Context())

	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	in, errResp := ParseContractForm(r.Form)
	if errResp != nil {
		errResp.Write(w)
		return
	}

	// A checksum failure is a warning, not a rejection: free-form
	// account references are allowed, so only IBAN-shaped values with
	// bad check digits are flagged.
	warning := ""
	if normalized := core.NormalizeIBAN(in.AccountNumber); core.LooksLikeIBAN(normalized) && !core.ValidIBAN(normalized) {
		warning = msgIBANWarning
	}

	c, err := s.service.Submit(r.Context(), in)
	if err != nil {
		writeDomainError(w, r, err, "Contract create error")
		return
	}

	applog.NewStructuredLogger(logger).LogContractSaved(r.Context(), c.ID, c.Name, applog.OpCreate)

	body := `<div class="success">Contract opgeslagen: ` + template.HTMLEscapeString(c.Name) + `</div>`
	if warning != "" {
		body += `<div class="warning">` + template.HTMLEscapeString(warning) + `</div>`
	}

	NewHTMXResponse().
		TriggerContractCreated(c.ID).
		TriggerFormReset().
		BodyHTML(body).
		Write(w)
}

type contractView struct {
	ID            string
	Name          string
	AccountNumber string
	Description   string
	Lines         []string
}

// handleContractList renders the contract list partial from the store.
func (s *Server) handleContractList(w http.ResponseWriter, r *http.Request) {
	logger := applog.FromContext(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	now := time.Now()
	var views []contractView
	for _, c := range s.service.Store().Current() {
		views = append(views, contractView{
			ID:            c.ID,
			Name:          c.Name,
			AccountNumber: c.AccountNumber,
			Description:   c.Description,
			Lines:         summaryLines(core.Summarize(c, now)),
		})
	}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="contract-list"><div class="placeholder">Geen weergave beschikbaar</div></section>`))
		return
	}

	data := struct {
		Contracts []contractView
	}{Contracts: views}

	if err := s.templates.ExecuteTemplate(w, "contract_list.html", data); err != nil {
		applog.NewStructuredLogger(logger).LogError(r.Context(), "Contract list template execution failed",
			err, applog.ComponentTemplate, applog.OpRender, applog.LogFields{"template": "contract_list.html"})
		_, _ = w.Write([]byte(`<section id="contract-list"><div class="placeholder">Fout bij laden van contracten</div></section>`))
	}
}

type obligationView struct {
	ID        string
	Label     string
	Amount    string
	Frequency string
}

// handleContractEdit renders the edit dialog for one contract.
func (s *Server) handleContractEdit(w http.ResponseWriter, r *http.Request) {
	logger := applog.FromContext(r.Context())

	id := r.URL.Query().Get("id")
	c, err := s.service.EditRequest(r.Context(), id)
	if err != nil {
		if errors.Is(err, contracts.ErrNotFound) {
			NotFoundError(msgContractNotFound).Write(w)
			return
		}
		logger.ErrorContext(r.Context(), "Contract edit error",
			applog.FieldError, err, applog.FieldContractID, id)
		InternalServerError(msgSaveFailed).Write(w)
		return
	}

	now := time.Now()
	var obs []obligationView
	for _, ob := range c.Obligations {
		view := obligationView{ID: ob.ID, Label: ob.Label}
		if rate, ok := core.ActiveRate(ob.Rates, now); ok {
			view.Amount = rate.Amount.Format()
			if f, ok := core.ResolveFrequency(rate, ob); ok {
				view.Frequency = string(f)
			}
		}
		obs = append(obs, view)
	}

	if s.templates == nil {
		InternalServerError(msgSaveFailed).Write(w)
		return
	}

	data := struct {
		ID            string
		Name          string
		AccountNumber string
		Description   string
		Obligations   []obligationView
		Frequencies   []frequencyOption
	}{
		ID:            c.ID,
		Name:          c.Name,
		AccountNumber: c.AccountNumber,
		Description:   c.Description,
		Obligations:   obs,
		Frequencies:   frequencyOptions(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "contract_edit.html", data); err != nil {
		applog.NewStructuredLogger(logger).LogError(r.Context(), "Contract edit template execution failed",
			err, applog.ComponentTemplate, applog.OpRender, applog.LogFields{"template": "contract_edit.html"})
		InternalServerError(msgSaveFailed).Write(w)
	}
}

// handleSaveContract merges the edit form into the stored contract.
// New amounts append to the rate history; nothing is overwritten.
func (s *Server) handleSaveContract(w http.ResponseWriter, r *http.Request) {
	logger := applog.FromContext(r.Context())

	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	id := r.Form.Get("id")
	in, errResp := ParseContractForm(r.Form)
	if errResp != nil {
		errResp.Write(w)
		return
	}

	c, err := s.service.Save(r.Context(), id, in)
	if err != nil {
		if errors.Is(err, contracts.ErrNotFound) {
			NotFoundError(msgContractNotFound).Write(w)
			return
		}
		writeDomainError(w, r, err, "Contract save error")
		return
	}

	applog.NewStructuredLogger(logger).LogContractSaved(r.Context(), c.ID, c.Name, applog.OpUpdate)

	// Empty body clears the edit dialog, the trigger refreshes the list.
	NewHTMXResponse().
		TriggerContractSaved(c.ID).
		TriggerEditClosed().
		BodyHTML("").
		Write(w)
}

// handleCloseEdit clears the edit dialog without saving.
func (s *Server) handleCloseEdit(w http.ResponseWriter, r *http.Request) {
	NewHTMXResponse().
		TriggerEditClosed().
		BodyHTML("").
		Write(w)
}

// writeDomainError maps validation errors to 422 with a Dutch message
// and everything else to 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	logger := applog.FromContext(r.Context())

	switch {
	case errors.Is(err, core.ErrEmptyName), errors.Is(err, core.ErrEmptyAccountNumber):
		UnprocessableEntityError(msgMissingRequired).Write(w)
	case errors.Is(err, core.ErrInvalidAmount), errors.Is(err, core.ErrNegativeAmount):
		UnprocessableEntityError(msgInvalidAmount).Write(w)
	case errors.Is(err, core.ErrInvalidFrequency), errors.Is(err, core.ErrInvalidSchedule):
		UnprocessableEntityError(msgInvalidFrequency).Write(w)
	default:
		logger.ErrorContext(r.Context(), logMsg, applog.FieldError, err)
		InternalServerError(msgSaveFailed).Write(w)
	}
}
