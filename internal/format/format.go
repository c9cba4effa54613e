// Package format implements content-type dispatch and pretty-printing for
// response bodies: JSON with depth-indexed bracket-rainbow coloring, an
// XML indenter, and a plain-text fallback.
package format

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"
)

// Kind is the detected content kind of a response body.
type Kind string

const (
	KindJSON  Kind = "json"
	KindXML   Kind = "xml"
	KindPlain Kind = "plain"
)

// DetectKind classifies a response by a case-insensitive substring match of
// the Content-Type header value, per spec §4.3 — never by sniffing the body.
func DetectKind(contentType string) Kind {
	lower := strings.ToLower(contentType)
	switch {
	case strings.Contains(lower, "json"):
		return KindJSON
	case strings.Contains(lower, "xml"):
		return KindXML
	default:
		return KindPlain
	}
}

// Pretty re-serializes body according to kind, two-space indentation for
// JSON, element-boundary indentation for XML. Invalid JSON/XML falls back
// to the raw UTF-8-lossy string.
func Pretty(body []byte, kind Kind) string {
	switch kind {
	case KindJSON:
		if out, err := prettyJSON(body); err == nil {
			return out
		}
	case KindXML:
		if out, err := prettyXML(body); err == nil {
			return out
		}
	}
	return string(body)
}

func prettyJSON(body []byte) (string, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return "", err
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func prettyXML(body []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		if err := enc.EncodeToken(tok); err != nil {
			return "", err
		}
	}
	if err := enc.Flush(); err != nil {
		return "", err
	}
	if buf.Len() == 0 {
		return "", fmt.Errorf("empty or unparsable xml")
	}
	return buf.String(), nil
}
