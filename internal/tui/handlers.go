package tui

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/studiowebux/restcli-core/internal/archive"
	"github.com/studiowebux/restcli-core/internal/config"
	"github.com/studiowebux/restcli-core/internal/format"
	"github.com/studiowebux/restcli-core/internal/loadtest"
	"github.com/studiowebux/restcli-core/internal/model"
	"github.com/studiowebux/restcli-core/internal/storage"
	"github.com/studiowebux/restcli-core/internal/template"
)

func (m *Model) startNewCollection() {
	m.editingNewCollection = true
	m.textInput = ""
	m.switchScreen(ScreenCollectionEdit)
}

func (m *Model) startEditCollection() {
	c := m.currentCollection()
	if c == nil {
		return
	}
	m.editingNewCollection = false
	m.textInput = c.Name
	m.switchScreen(ScreenCollectionEdit)
}

func (m *Model) saveCollectionEdit() {
	if m.textInput == "" {
		return
	}
	if m.editingNewCollection {
		c := model.ApiCollection{
			ID:        uuid.NewString(),
			Name:      m.textInput,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		m.collections = append(m.collections, c)
		m.collectionIdx = len(m.collections) - 1
		m.persistCollection(&m.collections[m.collectionIdx])
	} else if c := m.currentCollection(); c != nil {
		c.Name = m.textInput
		c.Touch()
		m.persistCollection(c)
	}
	m.switchScreen(ScreenCollectionList)
}

func (m *Model) cancelEdit() {
	switch m.screen {
	case ScreenCollectionEdit:
		m.switchScreen(ScreenCollectionList)
	case ScreenEndpointEdit:
		m.switchScreen(ScreenEndpointList)
	default:
		m.switchScreen(m.prevScreen)
	}
}

func (m *Model) persistCollection(c *model.ApiCollection) {
	if err := storage.SaveCollection(config.CollectionsDir, *c); err != nil {
		m.errMsg = err.Error()
	}
}

func (m *Model) startNewEndpoint() {
	m.editingNewEndpoint = true
	m.endpointForm = endpointForm{}
	m.endpointForm.fields[fieldMethod] = string(model.MethodGet)
	m.endpointForm.fields[fieldTimeout] = "30"
	m.switchScreen(ScreenEndpointEdit)
}

func (m *Model) startEditEndpoint() {
	e := m.currentEndpoint()
	if e == nil {
		return
	}
	m.editingNewEndpoint = false
	f := endpointForm{}
	f.fields[fieldName] = e.Name
	f.fields[fieldMethod] = string(e.Method)
	f.fields[fieldURL] = e.URL
	f.fields[fieldBody] = e.BodyTemplate
	f.fields[fieldDescription] = e.Description
	f.fields[fieldTimeout] = strconv.Itoa(int(e.TimeoutSecs))
	f.headers = map[string]string{}
	for k, v := range e.Headers {
		f.headers[k] = v
	}
	f.fields[fieldHeaders] = headerCountLabel(len(f.headers))
	m.endpointForm = f
	m.switchScreen(ScreenEndpointEdit)
}

func headerCountLabel(n int) string {
	if n == 0 {
		return "0 header(s)"
	}
	return strconv.Itoa(n) + " header(s)"
}

func (m *Model) saveEndpointEdit() {
	f := m.endpointForm
	if f.fields[fieldName] == "" || f.fields[fieldURL] == "" {
		m.errMsg = "name and URL are required"
		return
	}
	timeout, _ := strconv.Atoi(f.fields[fieldTimeout])
	if timeout <= 0 {
		timeout = int(model.DefaultTimeout.Seconds())
	}

	c := m.currentCollection()
	if c == nil {
		return
	}

	if m.editingNewEndpoint {
		e := model.ApiEndpoint{
			ID:           uuid.NewString(),
			Name:         f.fields[fieldName],
			Method:       model.HttpMethod(f.fields[fieldMethod]),
			URL:          f.fields[fieldURL],
			Headers:      f.headers,
			BodyTemplate: f.fields[fieldBody],
			Description:  f.fields[fieldDescription],
			TimeoutSecs:  timeout,
		}
		c.AddEndpoint(e)
		m.endpointIdx = len(c.Endpoints) - 1
	} else if e := m.currentEndpoint(); e != nil {
		e.Name = f.fields[fieldName]
		e.Method = model.HttpMethod(f.fields[fieldMethod])
		e.URL = f.fields[fieldURL]
		e.Headers = f.headers
		e.BodyTemplate = f.fields[fieldBody]
		e.Description = f.fields[fieldDescription]
		e.TimeoutSecs = timeout
		c.Touch()
	}
	m.persistCollection(c)
	m.switchScreen(ScreenEndpointList)
}

func (m *Model) performConfirmedDelete() {
	switch m.confirmTarget {
	case "collection":
		for i, c := range m.collections {
			if c.ID == m.confirmID {
				m.collections = append(m.collections[:i], m.collections[i+1:]...)
				break
			}
		}
		if m.collectionIdx >= len(m.collections) {
			m.collectionIdx = len(m.collections) - 1
		}
		if m.collectionIdx < 0 {
			m.collectionIdx = 0
		}
		if err := storage.DeleteCollection(config.CollectionsDir, m.confirmID); err != nil {
			m.errMsg = err.Error()
		}
	case "endpoint":
		if c := m.currentCollection(); c != nil {
			c.RemoveEndpoint(m.confirmID)
			if m.endpointIdx >= len(c.Endpoints) {
				m.endpointIdx = len(c.Endpoints) - 1
			}
			if m.endpointIdx < 0 {
				m.endpointIdx = 0
			}
			m.persistCollection(c)
		}
	case "variable":
		delete(m.variables.Variables, m.confirmID)
		m.persistVariables()
		names := m.sortedVariableNames()
		if m.varListIdx >= len(names) {
			m.varListIdx = len(names) - 1
		}
		if m.varListIdx < 0 {
			m.varListIdx = 0
		}
	}
}

// collectVariableNames gathers every {{name}} placeholder across an
// endpoint's templated fields (URL, body, headers), deduped in first-seen
// order, and excludes {{f:kind}} faker placeholders — mirroring the CLI's
// fillMissingVariables scan.
func collectVariableNames(e *model.ApiEndpoint) ([]string, error) {
	templates := []string{e.URL, e.BodyTemplate}
	for _, v := range e.Headers {
		templates = append(templates, v)
	}

	seen := map[string]bool{}
	var names []string
	for _, t := range templates {
		found, err := template.FindVariables(t)
		if err != nil {
			return nil, err
		}
		for _, name := range found {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names, nil
}

func mergeVariableInput(saved, edited map[string]string) map[string]string {
	out := make(map[string]string, len(saved)+len(edited))
	for k, v := range saved {
		out[k] = v
	}
	for k, v := range edited {
		out[k] = v
	}
	return out
}

// quickExecute implements spec's quick-execute contract: gather the
// endpoint's placeholders and, if every name already resolves from the
// VariableManager, execute immediately; otherwise report the first
// missing name and remain in place instead of firing a request.
func (m *Model) quickExecute() (tea.Model, tea.Cmd) {
	e := m.currentEndpoint()
	if e == nil {
		return m, nil
	}
	names, err := collectVariableNames(e)
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	for _, name := range names {
		if _, ok := m.variables.Variables[name]; !ok {
			m.errMsg = fmt.Sprintf("Variable '%s' not defined", name)
			return m, nil
		}
	}
	m.errMsg = ""
	m.switchScreen(ScreenEndpointDetail)
	return m, executeCmd(m.exec, *e, m.quickInputs())
}

// startVariableInput opens the VariableInput prompt page for traditional
// execute: one field per discovered placeholder, pre-filled from the
// VariableManager, editable before the request fires.
func (m *Model) startVariableInput(e *model.ApiEndpoint) (tea.Model, tea.Cmd) {
	names, err := collectVariableNames(e)
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	values := make(map[string]string, len(names))
	for _, name := range names {
		values[name] = m.variables.Variables[name]
	}
	m.variableInput = variableInputForm{endpoint: *e, names: names, values: values}
	m.switchScreen(ScreenVariableInput)
	return m, nil
}

func (m *Model) quickInputs() model.RequestInputs {
	return model.RequestInputs{
		Variables: m.variables.Variables,
	}
}

func (m *Model) bodyLineCount() int {
	if m.responseSpans == "" {
		return 0
	}
	n := 1
	for _, r := range m.responseSpans {
		if r == '\n' {
			n++
		}
	}
	return n
}

func (m *Model) headerLineCount() int {
	if m.response == nil {
		return 0
	}
	return len(m.response.Headers)
}

func (m *Model) copyResponseBody() {
	if m.response == nil {
		return
	}
	if err := copyToClipboard(string(m.response.Body)); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.statusMsg = "copied to clipboard"
}

func (m *Model) sortedVariableNames() []string {
	names := make([]string, 0, len(m.variables.Variables))
	for k := range m.variables.Variables {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (m *Model) saveVariableEdit() {
	f := m.variableForm
	if f.fields[0] == "" {
		return
	}
	if m.variables.Variables == nil {
		m.variables.Variables = map[string]string{}
	}
	m.variables.Variables[f.fields[0]] = f.fields[1]
	m.persistVariables()
	m.switchScreen(ScreenVariableList)
}

func (m *Model) persistVariables() {
	if err := storage.SaveVariables(config.VariablesFile, m.variables); err != nil {
		m.errMsg = err.Error()
	}
}

// seedLoadTestConfig opens the LoadTestConfig screen for e, pre-filling
// m.loadTestConfig from the endpoint's saved config if any (spec §4.7's
// CollectionList "l" transition: "seed form from endpoint's saved config
// if any").
func (m *Model) seedLoadTestConfig(e *model.ApiEndpoint) {
	if e.LoadTestConfig != nil {
		m.loadTestConfig = *e.LoadTestConfig
	}
	m.loadTestDigits = [3]string{}
	m.loadTestField = 0
	m.switchScreen(ScreenLoadTestConfig)
}

func (m *Model) startLoadTest() (tea.Model, tea.Cmd) {
	c := m.currentCollection()
	e := m.currentEndpoint()
	if c == nil || e == nil {
		m.switchScreen(ScreenEndpointList)
		return m, nil
	}
	concurrency, _ := strconv.Atoi(m.loadTestDigits[0])
	duration, _ := strconv.Atoi(m.loadTestDigits[1])
	rampUp, _ := strconv.Atoi(m.loadTestDigits[2])
	if concurrency > 0 {
		m.loadTestConfig.Concurrency = concurrency
	}
	if duration > 0 {
		m.loadTestConfig.DurationSec = duration
	}
	m.loadTestConfig.RampUpSec = rampUp

	if err := m.loadTestConfig.Validate(); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	cfg := m.loadTestConfig
	e.LoadTestConfig = &cfg
	c.Touch()
	m.persistCollection(c)

	handle, err := loadtest.Start(context.Background(), m.exec, e, m.quickInputs(), m.loadTestConfig)
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.loadHandle = handle
	m.loadTestStart = time.Now()
	m.loadTestEndpoint = *e
	m.switchScreen(ScreenLoadTestRunning)
	return m, tea.Batch(loadTestTickCmd(), awaitLoadTestDone(handle))
}

func (m *Model) recordLoadTestRun() {
	if m.archiveDB == nil || m.loadHandle == nil {
		return
	}
	snap := m.loadHandle.Collector().Snapshot()
	summary := archive.RunSummary{
		EndpointID:   m.loadTestEndpoint.ID,
		EndpointName: m.loadTestEndpoint.Name,
		Config:       m.loadTestConfig,
		StartedAt:    m.loadTestStart,
		CompletedAt:  time.Now(),
		Snapshot:     snap,
	}
	if err := m.archiveDB.RecordRun(summary); err != nil {
		m.errMsg = err.Error()
	}
}

func (m *Model) formatResponseBody() {
	if m.response == nil {
		m.responseSpans = ""
		return
	}
	kind := format.DetectKind(m.response.HeaderValue("Content-Type"))
	pretty := format.Pretty(m.response.Body, kind)
	if kind == format.KindJSON {
		m.responseSpans = format.Render(format.ColorizeJSON(pretty))
	} else {
		m.responseSpans = pretty
	}
}
