// Package cli is the one-shot, non-interactive execution path: find a
// collection and endpoint by name, resolve any variables missing from
// the saved VariableSet by prompting on stdin, execute, and print a
// colorized summary.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/studiowebux/restcli-core/internal/config"
	"github.com/studiowebux/restcli-core/internal/executor"
	"github.com/studiowebux/restcli-core/internal/format"
	"github.com/studiowebux/restcli-core/internal/model"
	"github.com/studiowebux/restcli-core/internal/storage"
	"github.com/studiowebux/restcli-core/internal/template"
)

// RunOptions configures a one-shot execution.
type RunOptions struct {
	Collection string
	Endpoint   string
	ExtraVars  []string // key=value pairs from -e
	EnvFile    string   // path to a key=value file, lower priority than ExtraVars
	OutputFile string   // if set, the formatted body is written here instead of stdout
	ShowFull   bool
}

// Run resolves the named collection/endpoint, fills in any variables the
// template engine reports missing, executes the request and prints the
// result.
func Run(opts RunOptions) error {
	collections, errs := storage.ListCollections(config.CollectionsDir)
	for _, err := range errs {
		fmt.Fprintln(os.Stderr, color.YellowString("warning: %v", err))
	}

	collection := findCollection(collections, opts.Collection)
	if collection == nil {
		return fmt.Errorf("collection not found: %s", opts.Collection)
	}
	endpoint := findEndpoint(collection, opts.Endpoint)
	if endpoint == nil {
		return fmt.Errorf("endpoint not found: %s in collection %s", opts.Endpoint, opts.Collection)
	}

	variables, err := storage.LoadVariables(config.VariablesFile)
	if err != nil {
		return err
	}
	vars := variables.Variables
	if opts.EnvFile != "" {
		envPairs, err := loadEnvFile(opts.EnvFile)
		if err != nil {
			return err
		}
		vars = mergeVars(vars, envPairs)
	}
	vars = mergeVars(vars, opts.ExtraVars)

	if err := fillMissingVariables(endpoint, vars); err != nil {
		return err
	}

	exec := executor.New()
	ctx, cancel := context.WithTimeout(context.Background(), endpoint.Timeout())
	defer cancel()

	resp, err := exec.Execute(ctx, endpoint, model.RequestInputs{Variables: vars})
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	return printSummary(resp, opts.ShowFull, opts.OutputFile)
}

// loadEnvFile reads a key=value file (blank lines and #-comments ignored)
// into the same "key=value" pair form mergeVars expects from -e.
func loadEnvFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}
	var pairs []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pairs = append(pairs, line)
	}
	return pairs, nil
}

// ExportCollection finds a collection by id or name and writes it to
// outputPath in the given format. Only "yaml" (or empty, defaulting to
// yaml) is supported — this is the CLI's "collections export --format
// yaml" command, the one caller that keeps storage.ExportCollectionYAML
// (and yaml.v3) wired.
func ExportCollection(name, outputPath, exportFormat string) error {
	if exportFormat != "" && exportFormat != "yaml" {
		return fmt.Errorf("unsupported export format %q (only \"yaml\" is supported)", exportFormat)
	}
	collections, errs := storage.ListCollections(config.CollectionsDir)
	for _, err := range errs {
		fmt.Fprintln(os.Stderr, color.YellowString("warning: %v", err))
	}
	c := findCollection(collections, name)
	if c == nil {
		return fmt.Errorf("collection not found: %s", name)
	}
	return storage.ExportCollectionYAML(outputPath, *c)
}

func findCollection(collections []model.ApiCollection, name string) *model.ApiCollection {
	for i := range collections {
		if collections[i].ID == name || collections[i].Name == name {
			return &collections[i]
		}
	}
	return nil
}

func findEndpoint(c *model.ApiCollection, name string) *model.ApiEndpoint {
	for i := range c.Endpoints {
		if c.Endpoints[i].ID == name || c.Endpoints[i].Name == name {
			return &c.Endpoints[i]
		}
	}
	return nil
}

func mergeVars(saved map[string]string, extra []string) map[string]string {
	vars := make(map[string]string, len(saved)+len(extra))
	for k, v := range saved {
		vars[k] = v
	}
	for _, kv := range extra {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) == 2 {
			vars[parts[0]] = parts[1]
		}
	}
	return vars
}

// fillMissingVariables finds every {{name}} placeholder across the
// endpoint's templated fields and, for anything not already in vars,
// prompts on stdin — mirroring the TUI's "prompt for missing input"
// behavior for non-interactive use.
func fillMissingVariables(e *model.ApiEndpoint, vars map[string]string) error {
	templates := []string{e.URL, e.BodyTemplate}
	for _, v := range e.Headers {
		templates = append(templates, v)
	}

	seen := map[string]bool{}
	for _, t := range templates {
		names, err := template.FindVariables(t)
		if err != nil {
			return err
		}
		for _, name := range names {
			if seen[name] {
				continue
			}
			seen[name] = true
			if _, ok := vars[name]; ok {
				continue
			}
			value, err := promptForVariable(name)
			if err != nil {
				return err
			}
			vars[name] = value
		}
	}
	return nil
}

func promptForVariable(name string) (string, error) {
	fmt.Fprintf(os.Stderr, "Enter value for %q: ", name)
	reader := bufio.NewReader(os.Stdin)
	value, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

// printSummary prints the status line and headers (if full) to stdout, then
// either prints the pretty-formatted body or, if outputPath is set, writes
// it there instead and leaves a short note on stdout.
func printSummary(resp *model.HttpResponse, full bool, outputPath string) error {
	statusColor := color.New(color.FgGreen, color.Bold)
	if resp.StatusCode >= 500 {
		statusColor = color.New(color.FgRed, color.Bold)
	} else if resp.StatusCode >= 400 {
		statusColor = color.New(color.FgYellow, color.Bold)
	} else if resp.StatusCode >= 300 {
		statusColor = color.New(color.FgCyan, color.Bold)
	}

	statusColor.Printf("%d %s", resp.StatusCode, resp.StatusText)
	fmt.Printf("  %s\n", resp.Duration.Round(1e6))

	if full {
		for _, h := range resp.Headers {
			fmt.Printf("%s: %s\n", h.Name, h.Value)
		}
		fmt.Println()
	}

	kind := format.DetectKind(resp.HeaderValue("Content-Type"))
	pretty := format.Pretty(resp.Body, kind)

	if outputPath == "" {
		fmt.Println(pretty)
		return nil
	}
	if err := os.WriteFile(outputPath, []byte(pretty), config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Printf("(response body written to %s)\n", outputPath)
	return nil
}
