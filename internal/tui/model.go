// Package tui is the interactive terminal client: a single bubbletea
// Model driving the 13-screen flow (collection/endpoint browsing, request
// editing, execution, load testing, variables) over the storage,
// template, executor and loadtest collaborators.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/restcli-core/internal/archive"
	"github.com/studiowebux/restcli-core/internal/config"
	"github.com/studiowebux/restcli-core/internal/executor"
	"github.com/studiowebux/restcli-core/internal/keybinds"
	"github.com/studiowebux/restcli-core/internal/loadtest"
	"github.com/studiowebux/restcli-core/internal/model"
	"github.com/studiowebux/restcli-core/internal/storage"
)

// Screen identifies which of the 13 views is active.
type Screen int

const (
	ScreenCollectionList Screen = iota
	ScreenCollectionEdit
	ScreenEndpointList
	ScreenEndpointEdit
	ScreenEndpointDetail
	ScreenResponseView
	ScreenLoadTestConfig
	ScreenLoadTestRunning
	ScreenVariableList
	ScreenVariableEdit
	ScreenVariableInput
	ScreenConfirmDelete
	ScreenHelp
)

// Panel identifies sidebar vs detail focus on the two list screens.
type Panel int

const (
	PanelCollections Panel = iota
	PanelEndpoints
)

// endpointForm holds the 7 editable fields of EndpointEdit: Name, Method,
// URL, Body, Description, Timeout, Headers (Headers is edited through the
// nested header sub-mode, field index 4 per spec's "h enters header mode
// only when current_field==4" rule wired in update.go).
type endpointForm struct {
	fields       [7]string
	field        int
	headers      map[string]string
	headerMode   bool
	headerField  int // 0 = key, 1 = value
	headerKey    string
	headerValue  string
	editHeaderOf string // header name being edited, "" for new
}

const (
	fieldName = iota
	fieldMethod
	fieldURL
	fieldBody
	fieldHeaders
	fieldDescription
	fieldTimeout
)

type variableForm struct {
	fields [2]string // name, value
	field  int
	isNew  bool
}

// variableInputForm backs the VariableInput prompt page: one field per
// variable name found in endpoint's templates, pre-filled from the
// VariableManager and editable before execute fires.
type variableInputForm struct {
	endpoint model.ApiEndpoint
	names    []string
	values   map[string]string
	field    int
}

// Model is the single source of TUI state.
type Model struct {
	width, height int

	screen     Screen
	prevScreen Screen
	panel      Panel

	collections    []model.ApiCollection
	collectionErrs []error
	collectionIdx  int
	endpointIdx    int

	variables model.VariableSet

	exec        *executor.Executor
	loadHandle  *loadtest.Handle
	archiveDB   *archive.Store

	endpointForm  endpointForm
	variableForm  variableForm
	variableInput variableInputForm
	varListIdx    int

	textInput     string
	confirmTarget string // "collection" or "endpoint" or "variable"
	confirmID     string

	response        *model.HttpResponse
	responseErr     error
	responseSpans   string
	showTraffic     bool
	showHeaders     bool
	collapsedBody   bool
	bodyScroll      int
	headersScroll   int
	responseView    viewport.Model

	loadTestConfig   model.LoadTestConfig
	loadTestField    int
	loadTestDigits   [3]string
	loadTestStart    time.Time
	loadTestEndpoint model.ApiEndpoint

	keys *keybinds.Registry
	ctx  keybinds.Context

	statusMsg string
	errMsg    string

	editingNewCollection bool
	editingNewEndpoint   bool

	quitting bool
}

// New constructs the initial Model: loads collections, variables, and
// opens the optional load-test archive.
func New() (*Model, error) {
	collections, errs := loadCollections()
	variables, err := loadVariableSet()
	if err != nil {
		return nil, err
	}

	var archiveDB *archive.Store
	if db, err := archive.Open(config.ArchiveDBPath); err == nil {
		archiveDB = db
	}

	m := &Model{
		screen:         ScreenCollectionList,
		panel:          PanelCollections,
		collections:    collections,
		collectionErrs: errs,
		variables:      variables,
		exec:           executor.New(),
		archiveDB:      archiveDB,
		keys:           keybinds.DefaultRegistry(),
		ctx:            keybinds.ContextCollectionList,
		responseView:   viewport.New(80, 20),
		loadTestConfig: model.LoadTestConfig{Concurrency: 10, DurationSec: 30, RampUpSec: 0},
	}
	if len(errs) > 0 {
		m.errMsg = "some collections failed to load"
	}
	return m, nil
}

func loadCollections() ([]model.ApiCollection, []error) {
	return storage.ListCollections(config.CollectionsDir)
}

func loadVariableSet() (model.VariableSet, error) {
	return storage.LoadVariables(config.VariablesFile)
}

// Init satisfies tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Run starts the TUI.
func Run() error {
	if err := config.Initialize(); err != nil {
		return err
	}
	m, err := New()
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	if m.archiveDB != nil {
		m.archiveDB.Close()
	}
	return err
}

func (m *Model) currentCollection() *model.ApiCollection {
	if m.collectionIdx < 0 || m.collectionIdx >= len(m.collections) {
		return nil
	}
	return &m.collections[m.collectionIdx]
}

func (m *Model) currentEndpoint() *model.ApiEndpoint {
	c := m.currentCollection()
	if c == nil || m.endpointIdx < 0 || m.endpointIdx >= len(c.Endpoints) {
		return nil
	}
	return &c.Endpoints[m.endpointIdx]
}

func (m *Model) switchScreen(s Screen) {
	m.prevScreen = m.screen
	m.screen = s
	m.ctx = contextForScreen(s)
}

func contextForScreen(s Screen) keybinds.Context {
	switch s {
	case ScreenCollectionList, ScreenEndpointList:
		return keybinds.ContextCollectionList
	case ScreenEndpointDetail, ScreenResponseView:
		return keybinds.ContextEndpointDetail
	case ScreenLoadTestConfig:
		return keybinds.ContextLoadTestConfig
	case ScreenLoadTestRunning:
		return keybinds.ContextLoadTestRun
	case ScreenVariableList:
		return keybinds.ContextVariableList
	case ScreenVariableEdit, ScreenCollectionEdit, ScreenEndpointEdit, ScreenVariableInput:
		return keybinds.ContextTextInput
	case ScreenConfirmDelete:
		return keybinds.ContextConfirm
	case ScreenHelp:
		return keybinds.ContextHelp
	default:
		return keybinds.ContextGlobal
	}
}

func clampScroll(offset, totalLines, visibleHeight int) int {
	max := totalLines - visibleHeight
	if max < 0 {
		max = 0
	}
	if offset > max {
		offset = max
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// loadTestDeadlineDescription is used by the running screen to show a
// human elapsed/remaining summary without recomputing time math in view.go.
func loadTestDeadlineDescription(start time.Time, d time.Duration) (elapsed, remaining time.Duration) {
	elapsed = time.Since(start)
	remaining = d - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return elapsed, remaining
}
