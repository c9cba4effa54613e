package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/restcli-core/internal/keybinds"
	"github.com/studiowebux/restcli-core/internal/model"
)

// Update is bubbletea's central dispatch. Key handling follows spec §9's
// priority order: overlay screens (Help, ConfirmDelete) are handled before
// anything else, then in-edit context overrides (method cycling, header
// sub-mode, digit-only fields), then list-screen globals via the keybinds
// registry, and finally plain character insertion as the fallthrough for
// text-editing screens.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.responseView.Width = msg.Width - 4
		m.responseView.Height = msg.Height - 6
		return m, nil

	case executeResultMsg:
		m.response = msg.resp
		m.responseErr = msg.err
		m.bodyScroll = 0
		m.headersScroll = 0
		m.formatResponseBody()
		m.switchScreen(ScreenResponseView)
		return m, nil

	case loadTestTickMsg:
		if m.screen == ScreenLoadTestRunning {
			return m, loadTestTickCmd()
		}
		return m, nil

	case loadTestDoneMsg:
		if m.loadHandle != nil {
			m.recordLoadTestRun()
		}
		m.statusMsg = "load test finished"
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenHelp:
		return m.updateHelp(key)
	case ScreenConfirmDelete:
		return m.updateConfirmDelete(key)
	case ScreenCollectionList:
		return m.updateCollectionList(key)
	case ScreenEndpointList:
		return m.updateEndpointList(key)
	case ScreenCollectionEdit:
		return m.updateTextForm(key, &m.textInput, m.saveCollectionEdit, m.cancelEdit)
	case ScreenEndpointEdit:
		return m.updateEndpointEdit(key)
	case ScreenEndpointDetail:
		return m.updateEndpointDetail(key)
	case ScreenResponseView:
		return m.updateResponseView(key)
	case ScreenLoadTestConfig:
		return m.updateLoadTestConfig(key)
	case ScreenLoadTestRunning:
		return m.updateLoadTestRunning(key)
	case ScreenVariableList:
		return m.updateVariableList(key)
	case ScreenVariableEdit:
		return m.updateVariableEdit(key)
	case ScreenVariableInput:
		return m.updateVariableInput(key)
	}
	return m, nil
}

func (m *Model) updateHelp(key string) (tea.Model, tea.Cmd) {
	if action, ok := m.keys.Match(keybinds.ContextHelp, key); ok && action == keybinds.ActionQuit {
		m.switchScreen(m.prevScreen)
	}
	return m, nil
}

func (m *Model) updateConfirmDelete(key string) (tea.Model, tea.Cmd) {
	action, ok := m.keys.Match(keybinds.ContextConfirm, key)
	if !ok {
		return m, nil
	}
	switch action {
	case keybinds.ActionConfirmYes:
		m.performConfirmedDelete()
		m.switchScreen(m.prevScreen)
	case keybinds.ActionConfirmNo:
		m.switchScreen(m.prevScreen)
	}
	return m, nil
}

// updateCollectionList drives the main split view (spec §4.7's
// CollectionList state). Most actions are dual-purpose depending on
// panel_focus: Collections-focused they target the selected collection,
// Endpoints-focused they target the selected endpoint of that collection
// — mirroring updateEndpointList's dedicated-screen handling of the same
// physical keys.
func (m *Model) updateCollectionList(key string) (tea.Model, tea.Cmd) {
	if key == "?" {
		m.switchScreen(ScreenHelp)
		return m, nil
	}
	if key == "ctrl+l" || key == "ctrl+h" || key == "tab" {
		if m.panel == PanelCollections {
			m.panel = PanelEndpoints
		} else {
			m.panel = PanelCollections
		}
		return m, nil
	}
	action, ok := m.keys.Match(keybinds.ContextCollectionList, key)
	if !ok {
		return m, nil
	}

	c := m.currentCollection()
	endpointsFocused := m.panel == PanelEndpoints

	switch action {
	case keybinds.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case keybinds.ActionNavigateDown:
		if endpointsFocused {
			if c != nil && m.endpointIdx < len(c.Endpoints)-1 {
				m.endpointIdx++
			}
		} else if m.collectionIdx < len(m.collections)-1 {
			m.collectionIdx++
			m.endpointIdx = 0
		}
	case keybinds.ActionNavigateUp:
		if endpointsFocused {
			if c != nil && m.endpointIdx > 0 {
				m.endpointIdx--
			}
		} else if m.collectionIdx > 0 {
			m.collectionIdx--
			m.endpointIdx = 0
		}
	case keybinds.ActionNewCollection: // "n": new endpoint (Endpoints focus) or new collection
		if endpointsFocused {
			if c != nil {
				m.startNewEndpoint()
			}
		} else {
			m.startNewCollection()
		}
	case keybinds.ActionEditCollection: // "e": edit endpoint (Endpoints focus) or edit collection
		if endpointsFocused {
			m.startEditEndpoint()
		} else {
			m.startEditCollection()
		}
	case keybinds.ActionDeleteCollection: // "d": delete endpoint (Endpoints focus) or delete collection
		if endpointsFocused {
			if e := m.currentEndpoint(); e != nil {
				m.confirmTarget, m.confirmID = "endpoint", e.ID
				m.switchScreen(ScreenConfirmDelete)
			}
		} else if c != nil {
			m.confirmTarget, m.confirmID = "collection", c.ID
			m.switchScreen(ScreenConfirmDelete)
		}
	case keybinds.ActionOpenEndpoint: // "enter": endpoint detail (Endpoints focus) or drill into endpoint list
		if endpointsFocused {
			if m.currentEndpoint() != nil {
				m.switchScreen(ScreenEndpointDetail)
			}
		} else if c != nil {
			m.switchScreen(ScreenEndpointList)
		}
	case keybinds.ActionQuickExecute: // "x" (Endpoints focus only)
		if endpointsFocused && m.currentEndpoint() != nil {
			return m.quickExecute()
		}
	case keybinds.ActionOpenVariables:
		m.switchScreen(ScreenVariableList)
	case keybinds.ActionOpenLoadTest: // "l" (Endpoints focus only)
		if endpointsFocused {
			if e := m.currentEndpoint(); e != nil {
				m.seedLoadTestConfig(e)
			}
		}
	}
	return m, nil
}

func (m *Model) updateEndpointList(key string) (tea.Model, tea.Cmd) {
	c := m.currentCollection()
	if c == nil {
		m.switchScreen(ScreenCollectionList)
		return m, nil
	}
	action, ok := m.keys.Match(keybinds.ContextCollectionList, key)
	if !ok {
		if key == "esc" {
			m.switchScreen(ScreenCollectionList)
		}
		return m, nil
	}
	switch action {
	case keybinds.ActionQuit:
		m.switchScreen(ScreenCollectionList)
	case keybinds.ActionNavigateDown:
		if m.endpointIdx < len(c.Endpoints)-1 {
			m.endpointIdx++
		}
	case keybinds.ActionNavigateUp:
		if m.endpointIdx > 0 {
			m.endpointIdx--
		}
	case keybinds.ActionNewCollection: // "n" repurposed: new endpoint in this context
		m.startNewEndpoint()
	case keybinds.ActionEditCollection: // "e" repurposed: edit endpoint
		m.startEditEndpoint()
	case keybinds.ActionDeleteCollection:
		if e := m.currentEndpoint(); e != nil {
			m.confirmTarget, m.confirmID = "endpoint", e.ID
			m.switchScreen(ScreenConfirmDelete)
		}
	case keybinds.ActionOpenEndpoint:
		if m.currentEndpoint() != nil {
			m.switchScreen(ScreenEndpointDetail)
		}
	case keybinds.ActionQuickExecute:
		return m.quickExecute()
	case keybinds.ActionOpenLoadTest:
		if e := m.currentEndpoint(); e != nil {
			m.seedLoadTestConfig(e)
		}
	}
	return m, nil
}

func (m *Model) updateEndpointDetail(key string) (tea.Model, tea.Cmd) {
	action, ok := m.keys.Match(keybinds.ContextEndpointDetail, key)
	if !ok {
		return m, nil
	}
	switch action {
	case keybinds.ActionQuit:
		m.switchScreen(ScreenEndpointList)
	case keybinds.ActionExecute:
		e := m.currentEndpoint()
		if e == nil {
			return m, nil
		}
		return m.startVariableInput(e)
	case keybinds.ActionQuickExecute:
		return m.quickExecute()
	case keybinds.ActionToggleTraffic:
		m.showTraffic = !m.showTraffic
	case keybinds.ActionToggleHeaders:
		m.showHeaders = !m.showHeaders
	case keybinds.ActionToggleCollapse:
		m.collapsedBody = !m.collapsedBody
	case keybinds.ActionCopyToClipboard:
		m.copyResponseBody()
	}
	return m, nil
}

func (m *Model) updateResponseView(key string) (tea.Model, tea.Cmd) {
	action, ok := m.keys.Match(keybinds.ContextEndpointDetail, key)
	if !ok {
		return m, nil
	}
	visible := m.height - 6
	switch action {
	case keybinds.ActionQuit:
		m.switchScreen(ScreenEndpointDetail)
	case keybinds.ActionToggleTraffic:
		m.showTraffic = !m.showTraffic
	case keybinds.ActionToggleHeaders:
		m.showHeaders = !m.showHeaders
	case keybinds.ActionToggleCollapse:
		m.collapsedBody = !m.collapsedBody
	case keybinds.ActionCopyToClipboard:
		m.copyResponseBody()
	case keybinds.ActionScrollBodyPageUp:
		m.bodyScroll = clampScroll(m.bodyScroll-visible, m.bodyLineCount(), visible)
	case keybinds.ActionScrollBodyPageDown:
		m.bodyScroll = clampScroll(m.bodyScroll+visible, m.bodyLineCount(), visible)
	case keybinds.ActionScrollBodyHome:
		m.bodyScroll = 0
	case keybinds.ActionScrollBodyEnd:
		m.bodyScroll = clampScroll(m.bodyLineCount(), m.bodyLineCount(), visible)
	case keybinds.ActionScrollHeadersPageUp:
		m.headersScroll = clampScroll(m.headersScroll-visible, m.headerLineCount(), visible)
	case keybinds.ActionScrollHeadersPageDown:
		m.headersScroll = clampScroll(m.headersScroll+visible, m.headerLineCount(), visible)
	case keybinds.ActionScrollHeadersHome:
		m.headersScroll = 0
	}
	return m, nil
}

// updateEndpointEdit implements spec §9's mode-sensitive override rules:
// "m" cycles Method only on the Method field, "h" enters header sub-mode
// only on the Headers field (and only when not already inside it), the
// Timeout field accepts digits only, and every other field is plain text.
func (m *Model) updateEndpointEdit(key string) (tea.Model, tea.Cmd) {
	f := &m.endpointForm

	if f.headerMode {
		return m.updateHeaderSubForm(key)
	}

	switch key {
	case "esc":
		m.cancelEdit()
		return m, nil
	case "tab":
		f.field = (f.field + 1) % 7
		return m, nil
	case "shift+tab":
		f.field = (f.field - 1 + 7) % 7
		return m, nil
	case "enter":
		if f.field == fieldHeaders {
			f.headerMode = true
			f.headerField = 0
			f.headerKey, f.headerValue = "", ""
			m.ctx = keybinds.ContextHeaderEdit
			return m, nil
		}
		m.saveEndpointEdit()
		return m, nil
	case "backspace":
		s := f.fields[f.field]
		if len(s) > 0 {
			f.fields[f.field] = s[:len(s)-1]
		}
		return m, nil
	case "m":
		if f.field == fieldMethod {
			current := model.HttpMethod(f.fields[fieldMethod])
			f.fields[fieldMethod] = string(model.NextMethod(current))
			return m, nil
		}
	case "h":
		if f.field == fieldHeaders {
			f.headerMode = true
			f.headerField = 0
			f.headerKey, f.headerValue = "", ""
			m.ctx = keybinds.ContextHeaderEdit
			return m, nil
		}
	}

	if len(key) == 1 {
		if f.field == fieldTimeout {
			if key[0] >= '0' && key[0] <= '9' {
				f.fields[fieldTimeout] += key
			}
			return m, nil
		}
		f.fields[f.field] += key
	}
	return m, nil
}

func (m *Model) updateHeaderSubForm(key string) (tea.Model, tea.Cmd) {
	f := &m.endpointForm
	switch key {
	case "esc":
		f.headerMode = false
		m.ctx = keybinds.ContextTextInput
		return m, nil
	case "tab", "shift+tab":
		f.headerField = 1 - f.headerField
		return m, nil
	case "enter":
		if f.headerKey != "" {
			if f.headers == nil {
				f.headers = map[string]string{}
			}
			f.headers[f.headerKey] = f.headerValue
			f.fields[fieldHeaders] = fmt.Sprintf("%d header(s)", len(f.headers))
		}
		f.headerMode = false
		m.ctx = keybinds.ContextTextInput
		return m, nil
	case "backspace":
		if f.headerField == 0 && len(f.headerKey) > 0 {
			f.headerKey = f.headerKey[:len(f.headerKey)-1]
		} else if f.headerField == 1 && len(f.headerValue) > 0 {
			f.headerValue = f.headerValue[:len(f.headerValue)-1]
		}
		return m, nil
	}
	if len(key) == 1 {
		if f.headerField == 0 {
			f.headerKey += key
		} else {
			f.headerValue += key
		}
	}
	return m, nil
}

func (m *Model) updateLoadTestConfig(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		m.switchScreen(ScreenEndpointList)
		return m, nil
	case "tab":
		m.loadTestField = (m.loadTestField + 1) % 3
		return m, nil
	case "shift+tab":
		m.loadTestField = (m.loadTestField - 1 + 3) % 3
		return m, nil
	case "enter":
		return m.startLoadTest()
	case "backspace":
		s := m.loadTestDigits[m.loadTestField]
		if len(s) > 0 {
			m.loadTestDigits[m.loadTestField] = s[:len(s)-1]
		}
		return m, nil
	}
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		m.loadTestDigits[m.loadTestField] += key
	}
	return m, nil
}

func (m *Model) updateLoadTestRunning(key string) (tea.Model, tea.Cmd) {
	if key == "esc" {
		if m.loadHandle != nil {
			m.loadHandle.Stop()
		}
	}
	return m, nil
}

func (m *Model) updateVariableList(key string) (tea.Model, tea.Cmd) {
	names := m.sortedVariableNames()
	switch key {
	case "esc", "q":
		m.switchScreen(m.prevScreen)
		return m, nil
	case "down":
		if m.varListIdx < len(names)-1 {
			m.varListIdx++
		}
		return m, nil
	case "up":
		if m.varListIdx > 0 {
			m.varListIdx--
		}
		return m, nil
	case "n":
		m.variableForm = variableForm{isNew: true}
		m.switchScreen(ScreenVariableEdit)
		return m, nil
	case "e":
		if m.varListIdx < len(names) {
			name := names[m.varListIdx]
			m.variableForm = variableForm{fields: [2]string{name, m.variables.Variables[name]}}
			m.switchScreen(ScreenVariableEdit)
		}
		return m, nil
	case "d":
		if m.varListIdx < len(names) {
			m.confirmTarget, m.confirmID = "variable", names[m.varListIdx]
			m.switchScreen(ScreenConfirmDelete)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) updateVariableEdit(key string) (tea.Model, tea.Cmd) {
	f := &m.variableForm
	switch key {
	case "esc":
		m.switchScreen(ScreenVariableList)
		return m, nil
	case "tab":
		f.field = 1 - f.field
		return m, nil
	case "shift+tab":
		f.field = 1 - f.field
		return m, nil
	case "enter":
		m.saveVariableEdit()
		return m, nil
	case "backspace":
		s := f.fields[f.field]
		if len(s) > 0 {
			f.fields[f.field] = s[:len(s)-1]
		}
		return m, nil
	}
	if len(key) == 1 {
		f.fields[f.field] += key
	}
	return m, nil
}

// updateVariableInput drives the VariableInput prompt page: a field per
// variable name discovered in the endpoint, pre-filled from the
// VariableManager and editable before the request actually fires.
func (m *Model) updateVariableInput(key string) (tea.Model, tea.Cmd) {
	f := &m.variableInput
	switch key {
	case "esc":
		m.switchScreen(m.prevScreen)
		return m, nil
	case "tab":
		if len(f.names) > 0 {
			f.field = (f.field + 1) % len(f.names)
		}
		return m, nil
	case "shift+tab":
		if len(f.names) > 0 {
			f.field = (f.field - 1 + len(f.names)) % len(f.names)
		}
		return m, nil
	case "enter":
		endpoint := f.endpoint
		inputs := model.RequestInputs{Variables: mergeVariableInput(m.variables.Variables, f.values)}
		m.switchScreen(ScreenEndpointDetail)
		return m, executeCmd(m.exec, endpoint, inputs)
	case "backspace":
		if len(f.names) == 0 {
			return m, nil
		}
		name := f.names[f.field]
		s := f.values[name]
		if len(s) > 0 {
			f.values[name] = s[:len(s)-1]
		}
		return m, nil
	}
	if len(key) == 1 && len(f.names) > 0 {
		name := f.names[f.field]
		f.values[name] += key
	}
	return m, nil
}

// updateTextForm is a generic single-field text screen (CollectionEdit).
func (m *Model) updateTextForm(key string, field *string, onSubmit, onCancel func()) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		onCancel()
		return m, nil
	case "enter":
		onSubmit()
		return m, nil
	case "backspace":
		if len(*field) > 0 {
			*field = (*field)[:len(*field)-1]
		}
		return m, nil
	}
	if len(key) == 1 {
		*field += key
	}
	return m, nil
}
