// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Openshade

package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/openshade/aokrf/pkg/aok"
	"github.com/openshade/aokrf/pkg/pulse"
	"github.com/spf13/cobra"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Live TUI for watching shade traffic",
	Long: `Full-screen live view of A-OK traffic on the bridge: the most recent
frame, a scrolling frame log, and reception statistics.

Keys:
  q / ctrl+c  quit
  r           reset statistics`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

// frameEventMsg is one decode outcome from the reader goroutine
type frameEventMsg struct {
	frame *aok.Frame
	err   error
}

type readErrMsg struct{ err error }

type tickMsg time.Time

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type monitorModel struct {
	connInfo  string
	events    <-chan frameEventMsg
	stats     *aok.Statistics
	lastFrame *aok.Frame
	log       viewport.Model
	logLines  []string
	width     int
	height    int
	readErr   error
	quitting  bool
}

func newMonitorModel(connInfo string, events <-chan frameEventMsg) monitorModel {
	vp := viewport.New(78, 10)
	return monitorModel{
		connInfo: connInfo,
		events:   events,
		stats:    aok.NewStatistics(),
		log:      vp,
		width:    80,
		height:   24,
	}
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(
		waitForEvent(m.events),
		tickCmd(),
		tea.EnterAltScreen,
	)
}

func waitForEvent(events <-chan frameEventMsg) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return readErrMsg{err: fmt.Errorf("bridge stream ended")}
		}
		return ev
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "r":
			m.stats.Reset()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.log.Width = msg.Width - 4
		logHeight := msg.Height - 14
		if logHeight < 3 {
			logHeight = 3
		}
		m.log.Height = logHeight

	case frameEventMsg:
		m.stats.Update(msg.frame, msg.err)
		if msg.frame != nil {
			m.lastFrame = msg.frame
			m.appendLog(okStyle.Render(aok.FormatFrame(msg.frame)))
		} else if msg.err != nil {
			m.appendLog(errStyle.Render(fmt.Sprintf("[%s] rejected: %v",
				time.Now().Format("15:04:05.000"), msg.err)))
		}
		return m, waitForEvent(m.events)

	case readErrMsg:
		m.readErr = msg.err
		return m, nil

	case tickMsg:
		return m, tickCmd()
	}

	return m, nil
}

func (m *monitorModel) appendLog(line string) {
	m.logLines = append(m.logLines, line)
	if len(m.logLines) > 500 {
		m.logLines = m.logLines[len(m.logLines)-500:]
	}
	m.log.SetContent(strings.Join(m.logLines, "\n"))
	m.log.GotoBottom()
}

func (m monitorModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("aokrf monitor"))
	b.WriteString("  " + labelStyle.Render(m.connInfo))
	if m.readErr != nil {
		b.WriteString("  " + errStyle.Render(fmt.Sprintf("(%v)", m.readErr)))
	}
	b.WriteString("\n\n")

	last := "waiting for traffic..."
	if m.lastFrame != nil {
		last = aok.FormatFrame(m.lastFrame)
	}
	b.WriteString(panelStyle.Width(m.width - 2).Render(
		labelStyle.Render("Last frame") + "\n" + last))
	b.WriteString("\n")

	m.stats.CalculateRates()
	statsLine := fmt.Sprintf("valid %d   sync misses %d   symbol %d   start %d   checksum %d   %.1f frames/s",
		m.stats.ValidFrames, m.stats.SyncFailures, m.stats.SymbolErrors,
		m.stats.StartRejects, m.stats.ChecksumErrors, m.stats.FrameRate)
	b.WriteString(panelStyle.Width(m.width - 2).Render(
		labelStyle.Render("Statistics") + "\n" + statsLine))
	b.WriteString("\n")

	b.WriteString(panelStyle.Width(m.width - 2).Render(
		labelStyle.Render("Frame log") + "\n" + m.log.View()))
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("q quit · r reset statistics"))

	return b.String()
}

func runMonitor(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	events := make(chan frameEventMsg, 16)

	// Reader goroutine: bridge bytes -> pairs -> decode outcomes
	go func() {
		defer close(events)
		reader := pulse.NewStreamReader(conn)
		decoder := aok.NewStreamDecoder()
		decoder.SetTolerance(tolerance)

		for {
			pair, err := reader.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				return
			}
			frame, decodeErr := decoder.Push(pair)
			if frame != nil || decodeErr != nil {
				events <- frameEventMsg{frame: frame, err: decodeErr}
			}
		}
	}()

	p := tea.NewProgram(newMonitorModel(connInfo, events))
	_, err = p.Run()
	return err
}
