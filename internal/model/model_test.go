package model

import "testing"

func TestNextMethodCyclesAndWraps(t *testing.T) {
	if got := NextMethod(MethodGet); got != MethodPost {
		t.Errorf("got %v, want %v", got, MethodPost)
	}
	if got := NextMethod(MethodOptions); got != MethodGet {
		t.Errorf("expected wrap-around, got %v", got)
	}
	if got := NextMethod("NOT-A-METHOD"); got != MethodGet {
		t.Errorf("unknown method should fall back to the first entry, got %v", got)
	}
}

func TestLoadTestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LoadTestConfig
		wantErr bool
	}{
		{name: "valid", cfg: LoadTestConfig{Concurrency: 10, DurationSec: 30, RampUpSec: 5}, wantErr: false},
		{name: "zero concurrency", cfg: LoadTestConfig{Concurrency: 0, DurationSec: 30}, wantErr: true},
		{name: "concurrency too high", cfg: LoadTestConfig{Concurrency: 1001, DurationSec: 30}, wantErr: true},
		{name: "zero duration", cfg: LoadTestConfig{Concurrency: 1, DurationSec: 0}, wantErr: true},
		{name: "duration too high", cfg: LoadTestConfig{Concurrency: 1, DurationSec: 3601}, wantErr: true},
		{name: "negative ramp up", cfg: LoadTestConfig{Concurrency: 1, DurationSec: 10, RampUpSec: -1}, wantErr: true},
		{name: "ramp up exceeds duration", cfg: LoadTestConfig{Concurrency: 1, DurationSec: 10, RampUpSec: 10}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthConfigRedact(t *testing.T) {
	bearer := AuthConfig{Kind: AuthBearer, Token: "supersecrettoken"}
	r := bearer.Redact()
	if r.Token == bearer.Token {
		t.Error("expected token to be redacted")
	}

	basic := AuthConfig{Kind: AuthBasic, Username: "user", Password: "hunter2pass"}
	rb := basic.Redact()
	if rb.Password == basic.Password {
		t.Error("expected password to be redacted")
	}
	if rb.Username != basic.Username {
		t.Error("username should not be redacted")
	}
}

func TestApiCollectionAddAndRemoveEndpoint(t *testing.T) {
	c := ApiCollection{ID: "c1", Name: "test"}
	before := c.UpdatedAt

	c.AddEndpoint(ApiEndpoint{ID: "e1", Name: "first"})
	if len(c.Endpoints) != 1 {
		t.Fatalf("expected 1 endpoint, got %d", len(c.Endpoints))
	}
	if !c.UpdatedAt.After(before) && c.UpdatedAt != before {
		t.Error("expected Touch to update UpdatedAt")
	}

	if !c.RemoveEndpoint("e1") {
		t.Error("expected RemoveEndpoint to report success")
	}
	if len(c.Endpoints) != 0 {
		t.Errorf("expected 0 endpoints after removal, got %d", len(c.Endpoints))
	}
	if c.RemoveEndpoint("missing") {
		t.Error("expected RemoveEndpoint to report false for unknown id")
	}
}

func TestHttpResponseHeaderValueCaseInsensitive(t *testing.T) {
	r := HttpResponse{Headers: []HttpHeader{{Name: "Content-Type", Value: "application/json"}}}
	if got := r.HeaderValue("content-type"); got != "application/json" {
		t.Errorf("got %q", got)
	}
	if got := r.HeaderValue("Missing"); got != "" {
		t.Errorf("expected empty string for missing header, got %q", got)
	}
}

func TestEndpointTimeoutDefault(t *testing.T) {
	e := ApiEndpoint{}
	if e.Timeout() != DefaultTimeout {
		t.Errorf("got %v, want default %v", e.Timeout(), DefaultTimeout)
	}
	e.TimeoutSecs = 5
	if e.Timeout().Seconds() != 5 {
		t.Errorf("got %v, want 5s", e.Timeout())
	}
}
