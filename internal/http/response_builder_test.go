package http

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTMXResponseBuilderTriggers(t *testing.T) {
	rr := httptest.NewRecorder()

	NewHTMXResponse().
		TriggerContractCreated("c-1").
		TriggerFormReset().
		BodyHTML(`<div class="success">ok</div>`).
		Write(rr)

	if rr.Code != 200 {
		t.Fatalf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}

	var triggers map[string]interface{}
	if err := json.Unmarshal([]byte(rr.Header().Get("HX-Trigger")), &triggers); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	if _, ok := triggers["contract:created"]; !ok {
		t.Errorf("triggers = %v", triggers)
	}
	if _, ok := triggers["form:reset"]; !ok {
		t.Errorf("triggers = %v", triggers)
	}
}

func TestHTMXResponseBuilderNoTriggersNoHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHTMXResponse().BodyHTML("x").Write(rr)

	if rr.Header().Get("HX-Trigger") != "" {
		t.Error("HX-Trigger set without triggers")
	}
}

func TestErrorResponseEscapesMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	UnprocessableEntityError(`<script>alert("x")</script>`).Write(rr)

	if rr.Code != 422 {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	if strings.Contains(body, "<script>") {
		t.Errorf("message not escaped: %s", body)
	}
	if !strings.Contains(body, `class="error"`) {
		t.Errorf("missing error wrapper: %s", body)
	}
}

func TestMethodNotAllowedSetsAllowHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	MethodNotAllowedError("POST").Write(rr)

	if rr.Code != 405 {
		t.Fatalf("status = %d", rr.Code)
	}
	if allow := rr.Header().Get("Allow"); allow != "POST" {
		t.Errorf("Allow = %q", allow)
	}
}
