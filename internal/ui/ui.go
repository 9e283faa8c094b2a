package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/trackplay/internal/auth"
	"github.com/desertthunder/trackplay/internal/models"
	"github.com/desertthunder/trackplay/internal/shared"
	"github.com/desertthunder/trackplay/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoadingView ViewState = iota
	HistoryView
	RecommendationsView
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	engine  tasks.Engine
	session *auth.SessionManager

	width  int
	height int

	historyList  list.Model
	historyReady bool
	history      []models.HistoryEntry

	recList   list.Model
	recsReady bool
	recs      models.Recommendations

	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate

	sessionChan   <-chan auth.State
	cancelSession func()
	sessionState  auth.State

	err  error
	note string

	help help.Model
	keys keyMap
}

type historyFetchedMsg struct {
	entries []models.HistoryEntry
	err     error
}

type recommendationsFetchedMsg struct {
	recs models.Recommendations
	err  error
}

type progressUpdateMsg tasks.ProgressUpdate

type sessionChangedMsg auth.State

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine tasks.Engine, session *auth.SessionManager) *Model {
	m := &Model{
		ctx:          ctx,
		view:         LoadingView,
		engine:       engine,
		session:      session,
		progressChan: make(chan tasks.ProgressUpdate, 16),
		help:         help.New(),
		keys:         newKeyMap(),
	}
	if session != nil {
		m.sessionState = session.Current()
		m.sessionChan, m.cancelSession = session.Subscribe()
	}
	return m
}

// Init fetches history and recommendations and starts listening for
// progress and session transitions.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.fetchHistory(), m.fetchRecommendations(), m.waitForProgress()}
	if m.sessionChan != nil {
		cmds = append(cmds, m.waitForSession())
	}
	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.historyReady {
			m.historyList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.recsReady {
			m.recList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case historyFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.history = msg.entries
		items := make([]list.Item, len(msg.entries))
		for i, entry := range msg.entries {
			items[i] = historyItem{entry: entry}
		}
		m.historyList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.historyList.Title = "Watch History"
		m.historyReady = true
		if m.width > 0 {
			m.historyList.SetSize(m.width-4, m.height-8)
		}
		if m.view == LoadingView {
			m.view = HistoryView
		}
		return m, nil

	case recommendationsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.recs = msg.recs
		all := msg.recs.All()
		items := make([]list.Item, len(all))
		for i, entry := range all {
			items[i] = recommendationItem{entry: entry}
		}
		m.recList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.recList.Title = "Recommendations"
		m.recsReady = true
		if m.width > 0 {
			m.recList.SetSize(m.width-4, m.height-8)
		}
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case sessionChangedMsg:
		m.sessionState = auth.State(msg)
		if !m.sessionState.IsSignedIn && !m.sessionState.IsLoading {
			return m, tea.Quit
		}
		return m, m.waitForSession()
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" +
			styles.help.Render("Press q to quit")
	}

	header := styles.title.Render("trackplay") + " " + styles.help.Render(m.sessionState.Phase())
	if m.note != "" {
		header += "\n" + styles.warn.Render(m.note)
	}

	switch m.view {
	case LoadingView:
		msg := "Loading..."
		if m.progress.Message != "" {
			msg = m.progress.Message
		}
		return header + "\n\n" + styles.warn.Render(msg)
	case HistoryView:
		return header + "\n" + m.historyList.View() + "\n" + m.help.View(m.keys)
	case RecommendationsView:
		return header + "\n" + m.recList.View() + "\n" + m.help.View(m.keys)
	default:
		return ""
	}
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.cancelSession != nil {
			m.cancelSession()
		}
		return m, tea.Quit
	case "tab":
		if m.view == HistoryView {
			m.view = RecommendationsView
		} else if m.view == RecommendationsView {
			m.view = HistoryView
		}
		return m, nil
	case "r":
		m.err = nil
		m.note = ""
		return m, tea.Batch(m.fetchHistory(), m.fetchRecommendations())
	case "enter", "o":
		if m.view == RecommendationsView {
			return m, m.openSelected()
		}
	}

	return m.updateLists(msg)
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.view == HistoryView && m.historyReady:
		m.historyList, cmd = m.historyList.Update(msg)
	case m.view == RecommendationsView && m.recsReady:
		m.recList, cmd = m.recList.Update(msg)
	}
	return m, cmd
}

// openSelected hands the selected recommendation off to the external player.
func (m *Model) openSelected() tea.Cmd {
	selected := m.recList.SelectedItem()
	item, ok := selected.(recommendationItem)
	if !ok {
		return nil
	}

	link, err := item.entry.DeepLink()
	if err != nil {
		m.note = err.Error()
		return nil
	}

	if err := shared.OpenBrowser(link); err != nil {
		m.note = fmt.Sprintf("could not open player: %v", err)
	} else {
		m.note = fmt.Sprintf("opened %s", item.entry.Title)
	}
	return nil
}

func (m *Model) fetchHistory() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.engine.History(m.ctx, m.progressChan)
		return historyFetchedMsg{entries: entries, err: err}
	}
}

func (m *Model) fetchRecommendations() tea.Cmd {
	return func() tea.Msg {
		recs, err := m.engine.Recommendations(m.ctx, m.progressChan)
		return recommendationsFetchedMsg{recs: recs, err: err}
	}
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.progressChan
		if !ok {
			return nil
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) waitForSession() tea.Cmd {
	return func() tea.Msg {
		state, ok := <-m.sessionChan
		if !ok {
			return nil
		}
		return sessionChangedMsg(state)
	}
}
