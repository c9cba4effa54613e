package keybinds

// DefaultRegistry builds the keybinding table from spec §4.7's transition
// table and §9's mode-sensitivity rule. List-screen globals live under
// ContextGlobal; everything mode-specific is registered per Context so
// Match's context-then-global fallback reproduces the priority order
// spec §9 specifies: overlay screens, then in-edit overrides, then
// list-screen globals, then (handled in the TUI layer, not here) text
// append as the final fallthrough.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(ContextGlobal, "ctrl+c", ActionQuit)

	r.Register(ContextCollectionList, "q", ActionQuit)
	r.Register(ContextCollectionList, "?", ActionOpenHelp)
	r.Register(ContextCollectionList, "ctrl+h", ActionSwitchFocus)
	r.Register(ContextCollectionList, "ctrl+l", ActionSwitchFocus)
	r.RegisterMultiple(ContextCollectionList, []string{"ctrl+j", "down"}, ActionNavigateDown)
	r.RegisterMultiple(ContextCollectionList, []string{"ctrl+k", "up"}, ActionNavigateUp)
	r.Register(ContextCollectionList, "n", ActionNewCollection) // repurposed in the TUI layer when panel_focus==Endpoints, see updateCollectionList
	r.Register(ContextCollectionList, "e", ActionEditCollection)
	r.Register(ContextCollectionList, "d", ActionDeleteCollection)
	r.Register(ContextCollectionList, "enter", ActionOpenEndpoint)
	r.Register(ContextCollectionList, "x", ActionQuickExecute)
	r.Register(ContextCollectionList, "v", ActionOpenVariables)
	r.Register(ContextCollectionList, "l", ActionOpenLoadTest)

	r.Register(ContextEndpointDetail, "e", ActionExecute)
	r.Register(ContextEndpointDetail, "x", ActionQuickExecute)
	r.Register(ContextEndpointDetail, "t", ActionToggleTraffic)
	r.Register(ContextEndpointDetail, "H", ActionToggleHeaders)
	r.Register(ContextEndpointDetail, " ", ActionToggleCollapse)
	r.Register(ContextEndpointDetail, "y", ActionCopyToClipboard)
	r.Register(ContextEndpointDetail, "pgup", ActionScrollBodyPageUp)
	r.Register(ContextEndpointDetail, "pgdown", ActionScrollBodyPageDown)
	r.Register(ContextEndpointDetail, "home", ActionScrollBodyHome)
	r.Register(ContextEndpointDetail, "end", ActionScrollBodyEnd)
	r.Register(ContextEndpointDetail, "shift+pgup", ActionScrollHeadersPageUp)
	r.Register(ContextEndpointDetail, "shift+pgdown", ActionScrollHeadersPageDown)
	r.Register(ContextEndpointDetail, "shift+home", ActionScrollHeadersHome)
	r.Register(ContextEndpointDetail, "q", ActionQuit)
	r.Register(ContextEndpointDetail, "esc", ActionQuit)

	r.Register(ContextLoadTestConfig, "tab", ActionFieldNext)
	r.Register(ContextLoadTestConfig, "shift+tab", ActionFieldPrev)
	r.Register(ContextLoadTestConfig, "enter", ActionStartLoadTest)
	r.Register(ContextLoadTestConfig, "esc", ActionTextCancel)
	r.Register(ContextLoadTestConfig, "backspace", ActionTextBackspace)

	r.Register(ContextLoadTestRun, "esc", ActionCancelLoadTest)

	r.Register(ContextVariableList, "n", ActionNewCollection)
	r.Register(ContextVariableList, "e", ActionEditCollection)
	r.Register(ContextVariableList, "d", ActionDeleteCollection)
	r.Register(ContextVariableList, "esc", ActionQuit)

	r.Register(ContextHeaderEdit, "tab", ActionFieldNext)
	r.Register(ContextHeaderEdit, "shift+tab", ActionFieldPrev)
	r.Register(ContextHeaderEdit, "enter", ActionTextSubmit)
	r.Register(ContextHeaderEdit, "esc", ActionTextCancel)

	r.Register(ContextTextInput, "tab", ActionFieldNext)
	r.Register(ContextTextInput, "shift+tab", ActionFieldPrev)
	r.Register(ContextTextInput, "enter", ActionTextSubmit)
	r.Register(ContextTextInput, "esc", ActionTextCancel)
	r.Register(ContextTextInput, "backspace", ActionTextBackspace)

	r.Register(ContextConfirm, "y", ActionConfirmYes)
	r.Register(ContextConfirm, "Y", ActionConfirmYes)
	r.Register(ContextConfirm, "n", ActionConfirmNo)
	r.Register(ContextConfirm, "N", ActionConfirmNo)
	r.Register(ContextConfirm, "esc", ActionConfirmNo)

	r.Register(ContextHelp, "esc", ActionQuit)
	r.Register(ContextHelp, "q", ActionQuit)

	return r
}
