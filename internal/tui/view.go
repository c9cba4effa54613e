package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/restcli-core/internal/model"
)

// View satisfies tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "loading..."
	}

	var body string
	switch m.screen {
	case ScreenCollectionList, ScreenEndpointList:
		body = m.viewCollectionsAndEndpoints()
	case ScreenCollectionEdit:
		body = m.viewTextForm("Collection name", m.textInput)
	case ScreenEndpointEdit:
		body = m.viewEndpointEdit()
	case ScreenEndpointDetail:
		body = m.viewEndpointDetail()
	case ScreenResponseView:
		body = m.viewResponse()
	case ScreenLoadTestConfig:
		body = m.viewLoadTestConfig()
	case ScreenLoadTestRunning:
		body = m.viewLoadTestRunning()
	case ScreenVariableList:
		body = m.viewVariableList()
	case ScreenVariableEdit:
		body = m.viewVariableEdit()
	case ScreenVariableInput:
		body = m.viewVariableInput()
	case ScreenConfirmDelete:
		body = m.viewConfirmDelete()
	case ScreenHelp:
		body = m.viewHelp()
	}

	return body + "\n" + m.viewStatusBar()
}

func (m *Model) viewStatusBar() string {
	msg := m.statusMsg
	if m.errMsg != "" {
		msg = styleError.Render(m.errMsg)
	}
	return styleStatusBar.Render(fmt.Sprintf("%s | ? help | ctrl+c quit", msg))
}

func (m *Model) viewCollectionsAndEndpoints() string {
	var left, right strings.Builder
	left.WriteString(styleTitle.Render("Collections") + "\n")
	for i, c := range m.collections {
		line := c.Name
		if i == m.collectionIdx {
			line = styleSelected.Render(line)
		}
		left.WriteString(line + "\n")
	}
	if len(m.collections) == 0 {
		left.WriteString(styleSubtle.Render("(none — press n)") + "\n")
	}

	right.WriteString(styleTitle.Render("Endpoints") + "\n")
	if c := m.currentCollection(); c != nil {
		for i, e := range c.Endpoints {
			line := methodColor(string(e.Method)).Render(string(e.Method)) + " " + e.Name
			if m.screen == ScreenEndpointList && i == m.endpointIdx {
				line = styleSelected.Render(line)
			}
			right.WriteString(line + "\n")
		}
		if len(c.Endpoints) == 0 {
			right.WriteString(styleSubtle.Render("(none — press n)") + "\n")
		}
	}

	leftStyle := styleBox
	rightStyle := styleBox
	if m.panel == PanelCollections || m.screen == ScreenCollectionList {
		leftStyle = styleBoxFocused
	}
	if m.screen == ScreenEndpointList || m.panel == PanelEndpoints {
		rightStyle = styleBoxFocused
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		leftStyle.Width(m.width/3).Render(left.String()),
		rightStyle.Width(m.width-m.width/3-4).Render(right.String()),
	)
}

func (m *Model) viewTextForm(label, value string) string {
	return styleBoxFocused.Width(m.width - 2).Render(
		styleTitle.Render(label) + "\n\n" + value + "_",
	)
}

var endpointFieldLabels = []string{"Name", "Method", "URL", "Body", "Headers", "Description", "Timeout (s)"}

func (m *Model) viewEndpointEdit() string {
	f := m.endpointForm
	var b strings.Builder
	title := "New Endpoint"
	if !m.editingNewEndpoint {
		title = "Edit Endpoint"
	}
	b.WriteString(styleTitle.Render(title) + "\n\n")
	for i, label := range endpointFieldLabels {
		line := fmt.Sprintf("%-14s %s", label+":", f.fields[i])
		if i == f.field && !f.headerMode {
			line = styleFocused.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + styleSubtle.Render("tab/shift+tab move, m cycles method, h edits headers, enter save, esc cancel"))

	if f.headerMode {
		overlay := fmt.Sprintf("Key:   %s\nValue: %s", f.headerKey, f.headerValue)
		b.WriteString("\n\n" + styleBoxFocused.Render(styleTitle.Render("Header")+"\n"+overlay))
	}
	return styleBoxFocused.Width(m.width - 2).Render(b.String())
}

func (m *Model) viewEndpointDetail() string {
	e := m.currentEndpoint()
	if e == nil {
		return "no endpoint selected"
	}
	var b strings.Builder
	b.WriteString(methodColor(string(e.Method)).Render(string(e.Method)) + " " + styleTitle.Render(e.Name) + "\n")
	b.WriteString(e.URL + "\n\n")
	if e.Description != "" {
		b.WriteString(styleSubtle.Render(e.Description) + "\n\n")
	}
	b.WriteString(styleSubtle.Render(fmt.Sprintf("%d header(s), timeout %ds", len(e.Headers), e.TimeoutSecs)) + "\n\n")
	b.WriteString(styleSubtle.Render("e execute, x quick-execute, l load test, esc back"))
	return styleBoxFocused.Width(m.width - 2).Render(b.String())
}

func (m *Model) viewResponse() string {
	var b strings.Builder
	if m.responseErr != nil {
		b.WriteString(styleError.Render(m.responseErr.Error()))
		return styleBoxFocused.Width(m.width - 2).Render(b.String())
	}
	r := m.response
	if r == nil {
		return "no response"
	}

	status := fmt.Sprintf("%d %s", r.StatusCode, r.StatusText)
	statusStyle := styleSuccess
	if r.StatusCode >= 400 {
		statusStyle = styleError
	} else if r.StatusCode >= 300 {
		statusStyle = styleWarning
	}
	b.WriteString(statusStyle.Render(status) + styleSubtle.Render(fmt.Sprintf("  %s  %s", r.Duration.Round(1), FormatSizeHint(len(r.Body)))) + "\n\n")

	if m.showTraffic {
		t := r.Traffic.Timing
		b.WriteString(styleSubtle.Render(fmt.Sprintf(
			"request_sent=%s waiting=%s content_download=%s total=%s\n\n",
			t.RequestSent, t.Waiting, t.ContentDownload, t.Total)))
	}

	if m.showHeaders {
		b.WriteString(styleTitle.Render("Headers") + "\n")
		lines := headerLines(r.Headers)
		lines = scrollWindow(lines, m.headersScroll, m.height-12)
		b.WriteString(strings.Join(lines, "\n") + "\n\n")
	}

	bodyLines := strings.Split(m.responseSpans, "\n")
	if m.collapsedBody && len(bodyLines) > 3 {
		bodyLines = append(bodyLines[:3], styleSubtle.Render("... (collapsed, space to expand)"))
	} else {
		visible := m.height - 10
		bodyLines = scrollWindow(bodyLines, m.bodyScroll, visible)
	}
	b.WriteString(strings.Join(bodyLines, "\n"))

	b.WriteString("\n\n" + styleSubtle.Render("t traffic, H headers, space collapse, y copy, pgup/pgdn scroll, esc back"))
	return styleBoxFocused.Width(m.width - 2).Render(b.String())
}

func headerLines(headers []model.HttpHeader) []string {
	lines := make([]string, 0, len(headers))
	for _, h := range headers {
		lines = append(lines, h.Name+": "+h.Value)
	}
	return lines
}

func scrollWindow(lines []string, offset, visible int) []string {
	if visible <= 0 || offset >= len(lines) {
		return nil
	}
	end := offset + visible
	if end > len(lines) {
		end = len(lines)
	}
	return lines[offset:end]
}

func FormatSizeHint(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%dB", n)
	}
	return fmt.Sprintf("%.1fKB", float64(n)/1024)
}

var loadTestFieldLabels = []string{"Concurrency", "Duration (s)", "Ramp-up (s)"}

// formatTimeSeries renders the collector's bounded sampler feed as a
// one-point-per-line text trend (no sparkline rendering, just the polled
// values at the widget boundary).
func formatTimeSeries(points []model.TimeSeriesDataPoint) string {
	if len(points) == 0 {
		return styleSubtle.Render("(collecting samples...)")
	}
	var b strings.Builder
	for i, p := range points {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("t=%5.1fs  rps=%6.1f  p50=%-8s  n=%d", p.ElapsedSecs, p.RPS, p.P50, p.RequestCount))
	}
	return b.String()
}

func (m *Model) viewLoadTestConfig() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Load Test Configuration") + "\n\n")
	defaults := []int{m.loadTestConfig.Concurrency, m.loadTestConfig.DurationSec, m.loadTestConfig.RampUpSec}
	for i, label := range loadTestFieldLabels {
		val := m.loadTestDigits[i]
		if val == "" {
			val = fmt.Sprintf("%d", defaults[i])
		}
		line := fmt.Sprintf("%-14s %s", label+":", val)
		if i == m.loadTestField {
			line = styleFocused.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + styleSubtle.Render("digits only, tab/shift+tab move, enter start, esc cancel"))
	return styleBoxFocused.Width(m.width - 2).Render(b.String())
}

func (m *Model) viewLoadTestRunning() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Load Test Running") + "\n\n")
	if m.loadHandle == nil {
		return styleBoxFocused.Width(m.width - 2).Render(b.String())
	}
	snap := m.loadHandle.Collector().Snapshot()
	elapsed, remaining := loadTestDeadlineDescription(m.loadTestStart, time.Duration(m.loadTestConfig.DurationSec)*time.Second)
	b.WriteString(fmt.Sprintf("active workers: %d\n", m.loadHandle.ActiveWorkers()))
	b.WriteString(fmt.Sprintf("elapsed: %s  remaining: %s\n\n", elapsed.Round(time.Second), remaining.Round(time.Second)))
	b.WriteString(fmt.Sprintf("total=%d success=%d failure=%d rps=%.1f\n", snap.Total, snap.Success, snap.Failure, snap.CurrentRPS))
	b.WriteString(fmt.Sprintf("p50=%s p90=%s p95=%s p99=%s\n\n", snap.Percentiles.P50, snap.Percentiles.P90, snap.Percentiles.P95, snap.Percentiles.P99))
	b.WriteString(styleSubtle.Render("rps / p50 trend, oldest first:") + "\n")
	b.WriteString(formatTimeSeries(snap.TimeSeries) + "\n\n")
	b.WriteString(styleSubtle.Render("esc cancels"))
	return styleBoxFocused.Width(m.width - 2).Render(b.String())
}

func (m *Model) viewVariableList() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Variables") + "\n")
	names := m.sortedVariableNames()
	for i, name := range names {
		line := fmt.Sprintf("%s = %s", name, m.variables.Variables[name])
		if i == m.varListIdx {
			line = styleSelected.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if len(names) == 0 {
		b.WriteString(styleSubtle.Render("(none — press n)") + "\n")
	}
	b.WriteString("\n" + styleSubtle.Render("n new, e edit, d delete, esc back"))
	return styleBoxFocused.Width(m.width - 2).Render(b.String())
}

func (m *Model) viewVariableInput() string {
	f := m.variableInput
	var b strings.Builder
	b.WriteString(styleTitle.Render("Variables for "+f.endpoint.Name) + "\n\n")
	if len(f.names) == 0 {
		b.WriteString(styleSubtle.Render("(no variables — enter to execute)") + "\n")
	}
	for i, name := range f.names {
		line := fmt.Sprintf("%-20s %s", name+":", f.values[name])
		if i == f.field {
			line = styleFocused.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + styleSubtle.Render("tab move, enter execute, esc cancel"))
	return styleBoxFocused.Width(m.width - 2).Render(b.String())
}

func (m *Model) viewVariableEdit() string {
	f := m.variableForm
	labels := []string{"Name", "Value"}
	var b strings.Builder
	b.WriteString(styleTitle.Render("Variable") + "\n\n")
	for i, label := range labels {
		line := fmt.Sprintf("%-8s %s", label+":", f.fields[i])
		if i == f.field {
			line = styleFocused.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + styleSubtle.Render("tab move, enter save, esc cancel"))
	return styleBoxFocused.Width(m.width - 2).Render(b.String())
}

func (m *Model) viewConfirmDelete() string {
	msg := fmt.Sprintf("Delete %s %q? (y/n)", m.confirmTarget, m.confirmID)
	return styleBoxFocused.Width(m.width - 2).Render(styleWarning.Render(msg))
}

func (m *Model) viewHelp() string {
	lines := []string{
		"Collections: n new, e edit, d delete, enter open, x quick-execute, v variables",
		"Endpoints:   n new, e edit, d delete, enter open, x quick-execute, l load test",
		"Detail:      e execute, t traffic, H headers, space collapse, y copy",
		"Response:    pgup/pgdn/home/end scroll body, shift+pgup/pgdn/home scroll headers",
		"Load test:   digits only, tab move, enter start, esc cancel/stop",
		"Global:      ctrl+c quit, ? help, esc back",
	}
	return styleBoxFocused.Width(m.width - 2).Render(styleTitle.Render("Help") + "\n\n" + strings.Join(lines, "\n") + "\n\n" + styleSubtle.Render("esc/q back"))
}
