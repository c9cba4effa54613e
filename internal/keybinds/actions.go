package keybinds

// Action is a user-facing action triggered by a keybinding.
type Action string

// Context is where a keybinding is active — one per spec §4.7 screen,
// plus a handful of cross-cutting overlay/text contexts.
type Context string

const (
	ContextGlobal Context = "global"

	ContextCollectionList Context = "collection_list"
	ContextEndpointDetail Context = "endpoint_detail"
	ContextLoadTestConfig Context = "load_test_config"
	ContextLoadTestRun    Context = "load_test_running"
	ContextVariableList   Context = "variable_list"
	ContextHeaderEdit     Context = "header_edit"

	// ContextTextInput covers every Edit-form field that isn't overridden
	// by a narrower context rule (EndpointEdit method/header/timeout
	// fields, LoadTestConfig digit fields).
	ContextTextInput Context = "text_input"
	ContextConfirm   Context = "confirm"
	ContextHelp      Context = "help"
)

const (
	ActionQuit Action = "quit"

	ActionNavigateUp   Action = "navigate_up"
	ActionNavigateDown Action = "navigate_down"

	ActionSwitchFocus Action = "switch_focus"

	ActionNewCollection    Action = "new_collection"
	ActionEditCollection   Action = "edit_collection"
	ActionDeleteCollection Action = "delete_collection"
	ActionOpenEndpoint     Action = "open_endpoint"
	ActionQuickExecute     Action = "quick_execute"
	ActionOpenVariables    Action = "open_variables"
	ActionOpenLoadTest     Action = "open_load_test"
	ActionOpenHelp         Action = "open_help"

	ActionExecute        Action = "execute"
	ActionToggleTraffic  Action = "toggle_traffic"
	ActionToggleHeaders  Action = "toggle_headers"
	ActionToggleCollapse Action = "toggle_collapse"
	ActionCopyToClipboard Action = "copy_to_clipboard"
	ActionScrollBodyPageUp    Action = "scroll_body_page_up"
	ActionScrollBodyPageDown  Action = "scroll_body_page_down"
	ActionScrollBodyHome      Action = "scroll_body_home"
	ActionScrollBodyEnd       Action = "scroll_body_end"
	ActionScrollHeadersPageUp Action = "scroll_headers_page_up"
	ActionScrollHeadersPageDown Action = "scroll_headers_page_down"
	ActionScrollHeadersHome     Action = "scroll_headers_home"

	ActionFieldNext Action = "field_next"
	ActionFieldPrev Action = "field_prev"
	ActionCycleMethod    Action = "cycle_method"
	ActionEnterHeaderMode Action = "enter_header_mode"

	ActionTextInsertChar Action = "text_insert_char"
	ActionTextBackspace  Action = "text_backspace"
	ActionTextSubmit     Action = "text_submit"
	ActionTextCancel     Action = "text_cancel"

	ActionConfirmYes Action = "confirm_yes"
	ActionConfirmNo  Action = "confirm_no"

	ActionStartLoadTest Action = "start_load_test"
	ActionCancelLoadTest Action = "cancel_load_test"
)
