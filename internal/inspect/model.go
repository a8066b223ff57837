// Package inspect provides the Bubble Tea viewer for a scored book.
package inspect

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/bookscore/internal/stats"
)

const (
	tabBands = iota
	tabOutOfRange
	tabHistory
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea inspector.
type Model struct {
	report  stats.BookReport
	history stats.History
	errMsg  string

	tabs      []string
	activeTab int
	bandTable table.Model
	viewports map[int]*viewport.Model

	width  int
	height int
}

// NewModel builds an inspector for report. historyErr, if set, is shown in
// place of the history tab.
func NewModel(report stats.BookReport, history stats.History, historyErr error) *Model {
	m := &Model{
		report:  report,
		history: history,
		tabs:    []string{"Bands", "Out of range", "History"},
		viewports: map[int]*viewport.Model{
			tabOutOfRange: newViewport(),
			tabHistory:    newViewport(),
		},
	}
	if historyErr != nil {
		m.errMsg = historyErr.Error()
	}
	m.bandTable = buildBandTable(report, 0, 1)
	m.renderTabContents()
	return m
}

func newViewport() *viewport.Model {
	vp := viewport.New(0, 0)
	return &vp
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, nil
		case "right", "l", "tab":
			m.moveTab(1)
			return m, nil
		case "g", "home":
			if m.activeTab == tabBands {
				m.bandTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabBands {
				m.bandTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabBands {
				var cmd tea.Cmd
				m.bandTable, cmd = m.bandTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			*vp, cmd = vp.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(lipgloss.Height(activeNavStyle.Render("X")), 1)
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(m.height-headerHeight-footerHeight, 1)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for _, vp := range m.viewports {
		vp.Width = m.width
		vp.Height = bodyHeight
	}
	m.bandTable = buildBandTable(m.report, m.width, bodyHeight)
	if m.activeTab != tabBands {
		m.bandTable.Blur()
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = ((m.activeTab+delta)%count + count) % count
	if m.activeTab == tabBands {
		m.bandTable.Focus()
	} else {
		m.bandTable.Blur()
	}
}

func (m *Model) renderTabContents() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOutOfRange].SetContent(renderOutOfRange(m.report.Result.OutOfRangeWords, width))

	if m.errMsg != "" {
		m.viewports[tabHistory].SetContent("Failed to load history.")
		return
	}
	var buf bytes.Buffer
	if err := stats.WriteHistory(&buf, m.history, stats.FormatTable); err != nil {
		m.viewports[tabHistory].SetContent(err.Error())
		return
	}
	m.viewports[tabHistory].SetContent(strings.TrimRight(buf.String(), "\n"))
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	res := m.report.Result
	summary := fmt.Sprintf("%s  V1 %d  V2 %d (in range %d)",
		m.report.Book, m.report.V1Score, res.TotalScore, res.ScoreExcludingOutOfRange)
	return padLines(m.renderTabs(), m.width) + "\n" + headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderBody() string {
	if m.activeTab == tabBands {
		if len(m.report.Result.BandCounts) == 0 {
			return "No bands."
		}
		return tableMutedStyle.Render(m.bandTable.View())
	}
	return m.viewports[m.activeTab].View()
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Top/bottom: g/G  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}
