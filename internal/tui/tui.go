// Package tui drives the interactive menu: a synchronous state machine over
// the config document and the projects directory. One keypress, one
// transition, one redraw.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/strrl/claude-config-manager/internal/config"
	"github.com/strrl/claude-config-manager/internal/pager"
	"github.com/strrl/claude-config-manager/internal/projects"
	"github.com/strrl/claude-config-manager/internal/ui"
	"github.com/strrl/claude-config-manager/pkg/models"
)

type screen int

const (
	screenMain screen = iota
	screenServers
	screenServerDetail
	screenProjects
	screenConversations
)

// confirmAction identifies the pending destructive operation behind the
// confirmation modal. confirmNone means no modal is shown.
type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmDeleteServer
	confirmDeleteAllServers
	confirmDeleteProject
	confirmDeleteAllProjects
	confirmDeleteConversation
)

// chromeLines is the vertical space taken by headers, status and footer
// around each list body.
const chromeLines = 9

var mainMenuItems = []string{
	"Manage MCP servers",
	"Manage projects",
	"Exit",
}

type model struct {
	doc     *config.Document
	manager *projects.Manager

	screen screen
	keys   keyMap
	help   help.Model
	dots   paginator.Model

	width  int
	height int
	ready  bool

	menu          *pager.PagedList[string]
	servers       *pager.PagedList[models.ServerEntry]
	projectList   *pager.PagedList[models.ProjectEntry]
	conversations *pager.PagedList[models.ConversationRecord]

	selectedServer  models.ServerEntry
	selectedProject models.ProjectEntry
	detail          viewport.Model

	confirm        confirmAction
	confirmServer  models.ServerEntry
	confirmProject models.ProjectEntry
	confirmConvIdx int

	status string
}

func newModel(doc *config.Document, manager *projects.Manager) model {
	m := model{
		doc:           doc,
		manager:       manager,
		screen:        screenMain,
		keys:          newKeyMap(),
		help:          help.New(),
		menu:          pager.New[string](len(mainMenuItems)),
		servers:       pager.New[models.ServerEntry](10),
		projectList:   pager.New[models.ProjectEntry](10),
		conversations: pager.New[models.ConversationRecord](10),
	}
	m.menu.SetItems(mainMenuItems)

	m.dots = paginator.New()
	m.dots.Type = paginator.Dots

	return m
}

func (m model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		pageSize := msg.Height - chromeLines
		if pageSize < 1 {
			pageSize = 1
		}
		m.servers.SetPageSize(pageSize)
		m.projectList.SetPageSize(pageSize)
		m.conversations.SetPageSize(pageSize)

		if !m.ready {
			m.detail = viewport.New(msg.Width, msg.Height-4)
			m.ready = true
		} else {
			m.detail.Width = msg.Width
			m.detail.Height = msg.Height - 4
		}
		return m, nil

	case tea.KeyMsg:
		// Any keypress clears the previous transient message.
		m.status = ""

		if m.confirm != confirmNone {
			return m.updateConfirm(msg)
		}

		switch m.screen {
		case screenMain:
			return m.updateMain(msg)
		case screenServers:
			return m.updateServers(msg)
		case screenServerDetail:
			return m.updateServerDetail(msg)
		case screenProjects:
			return m.updateProjects(msg)
		case screenConversations:
			return m.updateConversations(msg)
		}
	}

	return m, nil
}

func (m model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.menu.CursorUp()

	case key.Matches(msg, m.keys.Down):
		m.menu.CursorDown()

	case key.Matches(msg, m.keys.Select):
		switch m.menu.Index() {
		case 0:
			m.reloadServers()
			m.servers.Select(0)
			m.screen = screenServers
		case 1:
			m.reloadProjects()
			m.projectList.Select(0)
			m.screen = screenProjects
		case 2:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) updateServers(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.screen = screenMain

	case key.Matches(msg, m.keys.Up):
		m.servers.CursorUp()
	case key.Matches(msg, m.keys.Down):
		m.servers.CursorDown()
	case key.Matches(msg, m.keys.PageUp):
		m.servers.PageBack()
	case key.Matches(msg, m.keys.PageDown):
		m.servers.PageForward()

	case key.Matches(msg, m.keys.Select):
		if server, ok := m.servers.Selected(); ok {
			m.selectedServer = server
			m.detail.SetContent(m.renderServerDetail())
			m.detail.GotoTop()
			m.screen = screenServerDetail
		}

	case key.Matches(msg, m.keys.Delete):
		if server, ok := m.servers.Selected(); ok {
			m.confirm = confirmDeleteServer
			m.confirmServer = server
		}

	case key.Matches(msg, m.keys.DeleteAll):
		if m.servers.Len() > 0 {
			m.confirm = confirmDeleteAllServers
		}
	}
	return m, nil
}

func (m model) updateServerDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.screen = screenServers
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		cmd := strings.Join(ui.InstallCommand(m.selectedServer), " ")
		if err := clipboard.WriteAll(cmd); err != nil {
			m.status = "Copy failed: " + err.Error()
		} else {
			m.status = "Install command copied to clipboard"
		}
		return m, nil
	}

	// The viewport handles scrolling keys.
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m model) updateProjects(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.screen = screenMain

	case key.Matches(msg, m.keys.Up):
		m.projectList.CursorUp()
	case key.Matches(msg, m.keys.Down):
		m.projectList.CursorDown()
	case key.Matches(msg, m.keys.PageUp):
		m.projectList.PageBack()
	case key.Matches(msg, m.keys.PageDown):
		m.projectList.PageForward()

	case key.Matches(msg, m.keys.Select):
		if entry, ok := m.projectList.Selected(); ok {
			m.selectedProject = entry
			m.conversations.SetItems(entry.History)
			m.conversations.Select(0)
			m.screen = screenConversations
		}

	case key.Matches(msg, m.keys.Delete):
		if entry, ok := m.projectList.Selected(); ok {
			m.confirm = confirmDeleteProject
			m.confirmProject = entry
		}

	case key.Matches(msg, m.keys.DeleteAll):
		if m.projectList.Len() > 0 {
			m.confirm = confirmDeleteAllProjects
		}
	}
	return m, nil
}

func (m model) updateConversations(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.screen = screenProjects

	case key.Matches(msg, m.keys.Up):
		m.conversations.CursorUp()
	case key.Matches(msg, m.keys.Down):
		m.conversations.CursorDown()
	case key.Matches(msg, m.keys.PageUp):
		m.conversations.PageBack()
	case key.Matches(msg, m.keys.PageDown):
		m.conversations.PageForward()

	case key.Matches(msg, m.keys.Delete):
		if idx := m.conversations.Index(); idx >= 0 && m.selectedProject.Path != "" {
			m.confirm = confirmDeleteConversation
			m.confirmConvIdx = idx
		}
	}
	return m, nil
}

func (m model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		action := m.confirm
		m.confirm = confirmNone
		m.performDelete(action)
		return m, nil

	case "n", "N", "esc", "left", "enter":
		// Enter defaults to No, same as the y/N prompt convention.
		m.confirm = confirmNone
		return m, nil
	}
	return m, nil
}

// performDelete executes the confirmed action, reports the outcome on the
// status line, and re-derives the affected list so the cursor re-clamps.
func (m *model) performDelete(action confirmAction) {
	switch action {
	case confirmDeleteServer:
		err := m.doc.DeleteServer(m.confirmServer.Name)
		switch {
		case err == nil:
			m.status = fmt.Sprintf("Deleted server %q", m.confirmServer.Name)
		case errors.Is(err, config.ErrNotFound):
			m.status = fmt.Sprintf("Server %q was already gone", m.confirmServer.Name)
		default:
			m.status = "Delete failed: " + err.Error()
		}
		m.reloadServers()

	case confirmDeleteAllServers:
		count := m.servers.Len()
		if _, err := m.doc.Backup(); err != nil {
			m.status = "Backup failed: " + err.Error()
			return
		}
		if err := m.doc.DeleteAllServers(); err != nil {
			m.status = "Delete failed: " + err.Error()
		} else {
			m.status = fmt.Sprintf("Deleted all %d servers", count)
		}
		m.reloadServers()

	case confirmDeleteProject:
		if err := m.manager.Delete(m.confirmProject); err != nil {
			m.status = "Delete failed: " + err.Error()
		} else {
			m.status = fmt.Sprintf("Deleted project %q", m.confirmProject.Name())
		}
		m.reloadProjects()

	case confirmDeleteAllProjects:
		count := m.projectList.Len()
		if _, err := m.doc.Backup(); err != nil {
			m.status = "Backup failed: " + err.Error()
			return
		}
		failures, err := m.manager.DeleteAll()
		switch {
		case err != nil:
			m.status = "Delete failed: " + err.Error()
		case len(failures) > 0:
			m.status = fmt.Sprintf("Deleted %d of %d projects, %d failed (first: %v)",
				count-len(failures), count, len(failures), failures[0].Err)
		default:
			m.status = fmt.Sprintf("Deleted all %d projects", count)
		}
		m.reloadProjects()

	case confirmDeleteConversation:
		err := m.doc.DeleteConversation(m.selectedProject.Path, m.confirmConvIdx)
		switch {
		case err == nil:
			m.status = "Deleted conversation"
		case errors.Is(err, config.ErrNotFound):
			m.status = "Conversation was already gone"
		default:
			m.status = "Delete failed: " + err.Error()
		}
		m.reloadConversations()
	}
}

func (m *model) reloadServers() {
	m.servers.SetItems(m.doc.Servers())
}

func (m *model) reloadProjects() {
	entries, err := m.manager.List()
	if err != nil {
		m.status = "Failed to list projects: " + err.Error()
		return
	}
	m.projectList.SetItems(entries)
}

// reloadConversations re-derives the selected project's history from the
// document rather than trimming the in-memory slice.
func (m *model) reloadConversations() {
	for _, p := range m.doc.Projects() {
		if p.Path == m.selectedProject.Path {
			m.selectedProject.History = p.History
			m.conversations.SetItems(p.History)
			return
		}
	}
	m.selectedProject.History = nil
	m.conversations.SetItems(nil)
}

// Run displays the interactive menu and blocks until the user exits.
func Run(doc *config.Document, manager *projects.Manager) error {
	p := tea.NewProgram(
		newModel(doc, manager),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
