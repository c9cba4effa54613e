// Package executor builds and performs HTTP requests from an ApiEndpoint
// and a set of per-call RequestInputs, capturing per-phase network timing
// and size accounting as it goes.
package executor

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"strings"
	"time"

	"github.com/studiowebux/restcli-core/internal/model"
	"github.com/studiowebux/restcli-core/internal/template"
)

// Executor performs requests. It is safe to call Execute concurrently from
// multiple goroutines — the underlying http.Client and its connection pool
// are shared and require no external locking, matching spec §4.4's
// "CLONEABLE" requirement.
type Executor struct {
	client *http.Client
}

// New returns an Executor with a connection-pooled transport sized for
// concurrent load-test use as well as one-shot requests.
func New() *Executor {
	return &Executor{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        1000,
				MaxIdleConnsPerHost: 1000,
				IdleConnTimeout:     90 * time.Second,
				ForceAttemptHTTP2:   true,
			},
		},
	}
}

// Execute resolves templates, applies auth, performs the HTTP call, and
// returns a fully populated HttpResponse, or a typed error per spec §4.4.
func (e *Executor) Execute(ctx context.Context, endpoint *model.ApiEndpoint, inputs model.RequestInputs) (*model.HttpResponse, error) {
	details, reqURL, body, err := e.resolve(endpoint, inputs)
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, endpoint.Timeout())
	defer cancel()

	var bodyReader io.Reader
	if body != "" {
		bodyReader = bytes.NewBufferString(body)
	}

	httpReq, err := http.NewRequestWithContext(timeoutCtx, string(endpoint.Method), reqURL.String(), bodyReader)
	if err != nil {
		return nil, &model.RequestTransportError{Underlying: err}
	}
	for name, value := range details.Headers {
		httpReq.Header.Set(name, value)
	}

	var tTCPDone, tTLSDone time.Time
	var tConnectStart time.Time
	trace := &httptrace.ClientTrace{
		ConnectStart: func(string, string) { tConnectStart = time.Now() },
		ConnectDone:  func(string, string, error) { tTCPDone = time.Now() },
		TLSHandshakeDone: func(tls.ConnectionState, error) { tTLSDone = time.Now() },
	}
	httpReq = httpReq.WithContext(httptrace.WithClientTrace(httpReq.Context(), trace))

	t0 := time.Now()
	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, &model.RequestTransportError{Underlying: err}
	}
	t1 := time.Now()
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.RequestTransportError{Underlying: err}
	}
	t2 := time.Now()

	headers := make([]model.HttpHeader, 0, len(resp.Header))
	headerSize := 0
	for name, values := range resp.Header {
		value := strings.Join(values, ", ")
		headers = append(headers, model.HttpHeader{Name: name, Value: value})
		headerSize += len(name) + len(value) + 4
	}

	timing := model.NetworkTiming{
		RequestSent:     1 * time.Millisecond, // lower-bound estimate, spec §4.4 step 7
		Waiting:         t1.Sub(t0),
		ContentDownload: t2.Sub(t1),
		Total:           t2.Sub(t0),
	}
	if !tConnectStart.IsZero() && !tTCPDone.IsZero() {
		d := tTCPDone.Sub(tConnectStart)
		timing.TCPConnect = &d
	}
	if !tTCPDone.IsZero() && !tTLSDone.IsZero() {
		d := tTLSDone.Sub(tTCPDone)
		timing.TLSHandshake = &d
	}

	return &model.HttpResponse{
		StatusCode: resp.StatusCode,
		StatusText: resp.Status,
		Headers:    headers,
		Body:       bodyBytes,
		Duration:   timing.Total,
		Traffic: model.NetworkTraffic{
			Timing:             timing,
			Request:            details,
			ResponseHeaderSize: headerSize,
			ResponseBodySize:   len(bodyBytes),
		},
	}, nil
}

// resolve performs the spec §4.4 substitution order: URL, then auth, then
// merged headers, then body.
func (e *Executor) resolve(endpoint *model.ApiEndpoint, inputs model.RequestInputs) (model.RequestDetails, *url.URL, string, error) {
	rawURL, err := template.SubstituteStrict(endpoint.URL, inputs.Variables)
	if err != nil {
		return model.RequestDetails{}, nil, "", err
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return model.RequestDetails{}, nil, "", &model.RequestTransportError{Underlying: err}
	}

	headers := map[string]string{}
	for name, v := range endpoint.Headers {
		resolved, err := template.SubstituteStrict(v, inputs.Variables)
		if err != nil {
			return model.RequestDetails{}, nil, "", err
		}
		headers[name] = resolved
	}
	for name, v := range inputs.Headers {
		headers[name] = v
	}

	if endpoint.Auth != nil {
		if err := applyAuth(*endpoint.Auth, inputs.Variables, headers, parsed); err != nil {
			return model.RequestDetails{}, nil, "", err
		}
	}

	body := ""
	switch {
	case inputs.Body != nil:
		body = *inputs.Body
	case endpoint.BodyTemplate != "":
		resolved, err := template.SubstituteStrict(endpoint.BodyTemplate, inputs.Variables)
		if err != nil {
			return model.RequestDetails{}, nil, "", err
		}
		body = resolved
	}

	details := model.RequestDetails{
		Method:   endpoint.Method,
		URL:      parsed.String(),
		Headers:  headers,
		Body:     body,
		BodySize: len(body),
	}
	return details, parsed, body, nil
}

// applyAuth mutates headers (and parsed's query string, for ApiKey/query)
// to inject the resolved auth credential. Applied AFTER template
// resolution, per spec §4.4 step 3.
func applyAuth(auth model.AuthConfig, vars map[string]string, headers map[string]string, parsed *url.URL) error {
	switch auth.Kind {
	case model.AuthBearer:
		token, err := template.SubstituteStrict(auth.Token, vars)
		if err != nil {
			return err
		}
		headers["Authorization"] = "Bearer " + token
	case model.AuthBasic:
		user, err := template.SubstituteStrict(auth.Username, vars)
		if err != nil {
			return err
		}
		pass, err := template.SubstituteStrict(auth.Password, vars)
		if err != nil {
			return err
		}
		encoded := base64.StdEncoding.EncodeToString([]byte(user + ":" + pass))
		headers["Authorization"] = "Basic " + encoded
	case model.AuthApiKey:
		name, err := template.SubstituteStrict(auth.Name, vars)
		if err != nil {
			return err
		}
		value, err := template.SubstituteStrict(auth.Value, vars)
		if err != nil {
			return err
		}
		switch auth.Location {
		case model.ApiKeyQueryParam:
			q := parsed.Query()
			q.Set(name, value)
			parsed.RawQuery = q.Encode()
		default:
			headers[name] = value
		}
	}
	return nil
}

// FormatDuration renders a duration as a short human-readable string, used
// by both the TUI status line and the CLI one-shot summary.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// FormatSize renders a byte count as a short human-readable string.
func FormatSize(n int) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%dB", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.2fKB", float64(n)/1024.0)
	default:
		return fmt.Sprintf("%.2fMB", float64(n)/(1024.0*1024.0))
	}
}

// IsSuccessStatus reports whether status is in the 2xx range.
func IsSuccessStatus(status int) bool { return status >= 200 && status < 300 }
