package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/restcli-core/internal/executor"
	"github.com/studiowebux/restcli-core/internal/loadtest"
	"github.com/studiowebux/restcli-core/internal/model"
)

type executeResultMsg struct {
	resp *model.HttpResponse
	err  error
}

type loadTestTickMsg time.Time

type loadTestDoneMsg struct{}

func executeCmd(exec *executor.Executor, endpoint model.ApiEndpoint, inputs model.RequestInputs) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), endpoint.Timeout())
		defer cancel()
		resp, err := exec.Execute(ctx, &endpoint, inputs)
		return executeResultMsg{resp: resp, err: err}
	}
}

func loadTestTickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return loadTestTickMsg(t)
	})
}

func awaitLoadTestDone(h *loadtest.Handle) tea.Cmd {
	return func() tea.Msg {
		h.AwaitDone()
		return loadTestDoneMsg{}
	}
}
