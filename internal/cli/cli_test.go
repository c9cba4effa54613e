package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/studiowebux/restcli-core/internal/config"
	"github.com/studiowebux/restcli-core/internal/model"
	"github.com/studiowebux/restcli-core/internal/storage"
)

func TestFindCollectionByIDOrName(t *testing.T) {
	collections := []model.ApiCollection{
		{ID: "c1", Name: "Users API"},
		{ID: "c2", Name: "Orders API"},
	}
	if got := findCollection(collections, "c2"); got == nil || got.ID != "c2" {
		t.Errorf("lookup by id failed, got %+v", got)
	}
	if got := findCollection(collections, "Users API"); got == nil || got.ID != "c1" {
		t.Errorf("lookup by name failed, got %+v", got)
	}
	if got := findCollection(collections, "missing"); got != nil {
		t.Errorf("expected nil for unknown collection, got %+v", got)
	}
}

func TestFindEndpointByIDOrName(t *testing.T) {
	c := &model.ApiCollection{
		Endpoints: []model.ApiEndpoint{
			{ID: "e1", Name: "list"},
			{ID: "e2", Name: "create"},
		},
	}
	if got := findEndpoint(c, "e2"); got == nil || got.Name != "create" {
		t.Errorf("lookup by id failed, got %+v", got)
	}
	if got := findEndpoint(c, "list"); got == nil || got.ID != "e1" {
		t.Errorf("lookup by name failed, got %+v", got)
	}
	if got := findEndpoint(c, "missing"); got != nil {
		t.Errorf("expected nil for unknown endpoint, got %+v", got)
	}
}

func TestMergeVarsExtraOverridesSaved(t *testing.T) {
	saved := map[string]string{"host": "saved.example.com", "port": "80"}
	extra := []string{"host=override.example.com", "malformed", "token=abc"}

	got := mergeVars(saved, extra)

	if got["host"] != "override.example.com" {
		t.Errorf("expected extra to override saved, got %q", got["host"])
	}
	if got["port"] != "80" {
		t.Errorf("expected saved-only key to survive, got %q", got["port"])
	}
	if got["token"] != "abc" {
		t.Errorf("expected new extra key to be added, got %q", got["token"])
	}
	if _, ok := got["malformed"]; ok {
		t.Error("malformed key=value pair without '=' should be ignored")
	}
}

func TestFillMissingVariablesSkipsAlreadyProvided(t *testing.T) {
	e := &model.ApiEndpoint{
		URL:          "https://example.com/{{id}}",
		BodyTemplate: `{"name":"{{name}}"}`,
		Headers:      map[string]string{"X-Token": "{{id}}"},
	}
	vars := map[string]string{"id": "42", "name": "ada"}

	if err := fillMissingVariables(e, vars); err != nil {
		t.Fatalf("fillMissingVariables: %v", err)
	}
	if vars["id"] != "42" || vars["name"] != "ada" {
		t.Errorf("provided variables should be untouched, got %+v", vars)
	}
}

func TestFillMissingVariablesSkipsFakerPlaceholders(t *testing.T) {
	e := &model.ApiEndpoint{URL: "https://example.com/{{f:uuid}}"}
	vars := map[string]string{}

	if err := fillMissingVariables(e, vars); err != nil {
		t.Fatalf("fillMissingVariables: %v", err)
	}
	if len(vars) != 0 {
		t.Errorf("faker placeholders should never be prompted for, got %+v", vars)
	}
}

func TestLoadEnvFileSkipsBlankAndCommentLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\nhost=example.com\n\nport=8080\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	pairs, err := loadEnvFile(path)
	if err != nil {
		t.Fatalf("loadEnvFile: %v", err)
	}
	got := mergeVars(nil, pairs)
	if got["host"] != "example.com" || got["port"] != "8080" {
		t.Errorf("unexpected parsed env file, got %+v", got)
	}
}

func TestLoadEnvFileMissingFileReturnsError(t *testing.T) {
	if _, err := loadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("expected error for missing env file")
	}
}

func TestExportCollectionWritesYAML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if err := config.Initialize(); err != nil {
		t.Fatalf("config.Initialize: %v", err)
	}
	c := model.ApiCollection{ID: "c1", Name: "Users API"}
	if err := storage.SaveCollection(config.CollectionsDir, c); err != nil {
		t.Fatalf("SaveCollection: %v", err)
	}

	out := filepath.Join(t.TempDir(), "users.yaml")
	if err := ExportCollection("Users API", out, "yaml"); err != nil {
		t.Fatalf("ExportCollection: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty exported YAML")
	}
}

func TestExportCollectionRejectsUnknownFormat(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if err := config.Initialize(); err != nil {
		t.Fatalf("config.Initialize: %v", err)
	}
	if err := ExportCollection("anything", filepath.Join(t.TempDir(), "out"), "json"); err == nil {
		t.Error("expected an error for an unsupported export format")
	}
}

func TestExportCollectionUnknownCollectionReturnsError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if err := config.Initialize(); err != nil {
		t.Fatalf("config.Initialize: %v", err)
	}
	if err := ExportCollection("missing", filepath.Join(t.TempDir(), "out.yaml"), "yaml"); err == nil {
		t.Error("expected an error for an unknown collection")
	}
}

func TestPrintSummaryWritesBodyToOutputFile(t *testing.T) {
	resp := &model.HttpResponse{StatusCode: 200, StatusText: "OK", Body: []byte(`{"ok":true}`)}
	path := filepath.Join(t.TempDir(), "out.json")

	if err := printSummary(resp, false, path); err != nil {
		t.Fatalf("printSummary: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected response body written to output file")
	}
}
