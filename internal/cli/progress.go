package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/piwi3910/SpritePack/internal/scanner"
)

// scanModel is the bubbletea model shown while a folder is being scanned.
type scanModel struct {
	updates  <-chan scanner.Progress
	started  time.Time
	width    int
	total    int
	done     int
	skipped  int
	last     string
	quitting bool
}

type scanDoneMsg struct{}

type scanUpdateMsg scanner.Progress

func newScanModel(updates <-chan scanner.Progress) scanModel {
	return scanModel{updates: updates, started: time.Now()}
}

func (m scanModel) Init() tea.Cmd {
	return listenForScan(m.updates)
}

func (m scanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case scanUpdateMsg:
		m.total = msg.Total
		m.done++
		if msg.Err != nil {
			m.skipped++
		}
		m.last = filepath.Base(msg.Path)
		return m, listenForScan(m.updates)
	case scanDoneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		// The scan keeps running; ctrl+c only hides the view.
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m scanModel) View() string {
	if m.quitting {
		return ""
	}

	barWidth := 40
	if m.width > 0 {
		barWidth = min(60, max(20, m.width-10))
	}

	ratio := 0.0
	if m.total > 0 {
		ratio = min(1, float64(m.done)/float64(m.total))
	}

	lines := []string{
		StyleTitle.Render("Scanning sprites"),
		StyleValue.Render(fmt.Sprintf("Files: %d/%d", m.done, m.total)) + StyleDim.Render(fmt.Sprintf("  skipped:%d", m.skipped)),
		StyleDim.Render(m.last),
		StyleDim.Render(fmt.Sprintf("Elapsed: %s", time.Since(m.started).Round(time.Millisecond))),
		barStyle.Render(renderBar(barWidth, ratio)),
	}
	return strings.Join(lines, "\n")
}

var barStyle = lipgloss.NewStyle().Foreground(colorCyan)

func listenForScan(updates <-chan scanner.Progress) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return scanDoneMsg{}
		}
		return scanUpdateMsg(u)
	}
}

func renderBar(width int, ratio float64) string {
	filled := min(width, max(0, int(ratio*float64(width)+0.5)))
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

// runProgram runs the progress view; replaced in tests.
var runProgram = func(p *tea.Program) (tea.Model, error) { return p.Run() }

// scanWithProgress runs ScanFolder while a progress view renders on stderr.
func scanWithProgress(ctx context.Context, dir string, opts scanner.Options) (scanner.Report, error) {
	updates := make(chan scanner.Progress, 64)
	opts.Progress = updates

	program := tea.NewProgram(newScanModel(updates), tea.WithOutput(stderr), tea.WithContext(ctx))
	uiDone := make(chan struct{})
	go func() {
		if _, err := runProgram(program); err != nil {
			loggerFromContext(ctx).Debug("progress view stopped", "err", err)
		}
		close(uiDone)
		for range updates {
		}
	}()

	report, err := scanner.ScanFolder(ctx, dir, opts)
	close(updates)
	<-uiDone
	return report, err
}
