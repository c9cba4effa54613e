package format

import "testing"

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        Kind
	}{
		{name: "json", contentType: "application/json; charset=utf-8", want: KindJSON},
		{name: "json case insensitive", contentType: "APPLICATION/JSON", want: KindJSON},
		{name: "xml", contentType: "text/xml", want: KindXML},
		{name: "plain", contentType: "text/plain", want: KindPlain},
		{name: "empty", contentType: "", want: KindPlain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectKind(tt.contentType); got != tt.want {
				t.Errorf("DetectKind(%q) = %v, want %v", tt.contentType, got, tt.want)
			}
		})
	}
}

func TestPrettyJSON(t *testing.T) {
	got := Pretty([]byte(`{"a":1,"b":[2,3]}`), KindJSON)
	want := "{\n  \"a\": 1,\n  \"b\": [\n    2,\n    3\n  ]\n}"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyInvalidJSONFallsBackToRaw(t *testing.T) {
	raw := "not json at all"
	if got := Pretty([]byte(raw), KindJSON); got != raw {
		t.Errorf("got %q, want raw fallback %q", got, raw)
	}
}

func TestPrettyPlainPassesThrough(t *testing.T) {
	raw := "hello world"
	if got := Pretty([]byte(raw), KindPlain); got != raw {
		t.Errorf("got %q, want %q", got, raw)
	}
}

func TestColorizeJSONDepthColoring(t *testing.T) {
	pretty := `{"a":{"b":1}}`
	spans := ColorizeJSON(pretty)

	var openBraces, closeBraces []Span
	for _, s := range spans {
		if s.Text == "{" {
			openBraces = append(openBraces, s)
		}
		if s.Text == "}" {
			closeBraces = append(closeBraces, s)
		}
	}
	if len(openBraces) != 2 || len(closeBraces) != 2 {
		t.Fatalf("expected 2 open and 2 close braces, got %d/%d", len(openBraces), len(closeBraces))
	}
	if openBraces[0].Color == openBraces[1].Color {
		t.Error("expected different colors at different nesting depths")
	}
	// matching open/close at the same depth share a color: outer open (depth 0->1)
	// pairs with outer close (depth 1->0).
	if openBraces[0].Color != closeBraces[1].Color {
		t.Errorf("outer open/close should share a color: %s vs %s", openBraces[0].Color, closeBraces[1].Color)
	}
}

func TestColorizeJSONKeyVsStringValue(t *testing.T) {
	spans := ColorizeJSON(`{"name": "value"}`)
	var keyColor, valueColor string
	for _, s := range spans {
		if s.Text == `"name"` {
			keyColor = s.Color
		}
		if s.Text == `"value"` {
			valueColor = s.Color
		}
	}
	if keyColor == "" || valueColor == "" {
		t.Fatal("expected to find both key and value spans")
	}
	if keyColor == valueColor {
		t.Error("expected key and string value to be colored differently")
	}
}

func TestRenderFlattensSpans(t *testing.T) {
	spans := []Span{{Text: "{"}, {Text: "\"a\""}, {Text: ":"}, {Text: "1"}, {Text: "}"}}
	if got := Render(spans); got != `{"a":1}` {
		t.Errorf("got %q", got)
	}
}
