package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/strrl/claude-config-manager/internal/pager"
	"github.com/strrl/claude-config-manager/internal/ui"
	"github.com/strrl/claude-config-manager/pkg/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("63")).
			Padding(0, 1)

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	positionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("210")).
			Padding(1, 2)

	dialogTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("210"))
)

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	base := m.renderScreen()
	if m.confirm != confirmNone {
		return m.renderConfirm(base)
	}
	return base
}

func (m model) renderScreen() string {
	var body, position string
	var page, pages int

	switch m.screen {
	case screenMain:
		body = m.renderMainMenu()
	case screenServers:
		body = m.renderServerList()
		position = positionText(m.servers)
		page, pages = m.servers.Page(), m.servers.PageCount()
	case screenServerDetail:
		return m.renderDetailScreen()
	case screenProjects:
		body = m.renderProjectList()
		position = positionText(m.projectList)
		page, pages = m.projectList.Page(), m.projectList.PageCount()
	case screenConversations:
		body = m.renderConversationList()
		position = positionText(m.conversations)
		page, pages = m.conversations.Page(), m.conversations.PageCount()
	}

	var s strings.Builder
	s.WriteString(m.renderHeader())
	s.WriteString("\n")
	s.WriteString(body)
	s.WriteString("\n")
	s.WriteString(m.renderFooter(position, page, pages))
	return s.String()
}

func (m model) renderHeader() string {
	var title string
	switch m.screen {
	case screenMain:
		title = "Claude Config Manager"
	case screenServers:
		title = fmt.Sprintf("MCP Servers (%d)", m.servers.Len())
	case screenProjects:
		title = fmt.Sprintf("Projects (%d)", m.projectList.Len())
	case screenConversations:
		title = fmt.Sprintf("%s - Conversations (%d)", m.selectedProject.Name(), m.conversations.Len())
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render(title))
	s.WriteString("\n")
	s.WriteString(pathStyle.Render("Config: " + m.doc.Path()))
	if m.screen == screenProjects || m.screen == screenConversations {
		s.WriteString("\n")
		s.WriteString(pathStyle.Render("Projects: " + m.manager.Scanner().Root()))
	}
	s.WriteString("\n")
	return s.String()
}

func (m model) renderMainMenu() string {
	var s strings.Builder
	for i, item := range mainMenuItems {
		line := fmt.Sprintf("  %d. %s", i+1, item)
		if i == m.menu.Index() {
			line = selectedStyle.Render("> " + line[2:])
		}
		s.WriteString(line + "\n")
	}
	return s.String()
}

func (m model) renderServerList() string {
	if m.servers.Len() == 0 {
		return dimStyle.Render("  No MCP servers configured.") + "\n"
	}

	var s strings.Builder
	for i, server := range m.servers.PageItems() {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.servers.Cursor() {
			cursor = "> "
			style = selectedStyle
		}

		line := fmt.Sprintf("%s%-18s %-6s %s",
			cursor,
			ui.Truncate(server.Name, 18),
			server.Type,
			ui.Truncate(ui.CommandString(server), m.width-30))

		s.WriteString(style.Render(line) + "\n")
	}
	return s.String()
}

func (m model) renderProjectList() string {
	if m.projectList.Len() == 0 {
		return dimStyle.Render("  No projects found.") + "\n"
	}

	var s strings.Builder
	for i, entry := range m.projectList.PageItems() {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.projectList.Cursor() {
			cursor = "> "
			style = selectedStyle
		}

		var info []string
		info = append(info, fmt.Sprintf("%d msgs", len(entry.History)))
		if entry.SessionCount > 0 {
			info = append(info, fmt.Sprintf("%d sessions", entry.SessionCount))
		}
		if !entry.LastActivity.IsZero() {
			info = append(info, entry.LastActivity.Format("2006-01-02 15:04"))
		} else if !entry.GeneratedAt.IsZero() {
			info = append(info, entry.GeneratedAt.Format("2006-01-02 15:04"))
		}

		line := fmt.Sprintf("%s%-28s %s",
			cursor,
			ui.Truncate(entry.Name(), 28),
			strings.Join(info, " · "))
		s.WriteString(style.Render(line))

		// Entries missing one side render with an explicit location tag so
		// config-only and disk-only projects are told apart at a glance.
		if entry.Presence != models.InBoth {
			s.WriteString(" " + warnStyle.Render("["+entry.Presence.String()+" only]"))
		}
		s.WriteString("\n")
	}
	return s.String()
}

func (m model) renderConversationList() string {
	if m.conversations.Len() == 0 {
		return dimStyle.Render("  No conversation history.") + "\n"
	}

	var s strings.Builder
	start := m.conversations.Page() * m.conversations.PageSize()
	for i, rec := range m.conversations.PageItems() {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.conversations.Cursor() {
			cursor = "> "
			style = selectedStyle
		}

		display := rec.Display
		if display == "" {
			display = "(no display text)"
		}
		line := fmt.Sprintf("%s%3d. %s", cursor, start+i+1, ui.Truncate(display, m.width-10))
		s.WriteString(style.Render(line))

		if rec.PastedPreview != "" {
			s.WriteString(" " + dimStyle.Render("| "+ui.Truncate(rec.PastedPreview, 40)))
		}
		s.WriteString("\n")
	}
	return s.String()
}

func (m model) renderFooter(position string, page, pages int) string {
	var s strings.Builder
	if m.status != "" {
		s.WriteString(statusStyle.Render(m.status))
	}
	s.WriteString("\n")

	if position != "" {
		s.WriteString(positionStyle.Render(position))
		if pages > 1 {
			m.dots.SetTotalPages(pages)
			m.dots.Page = page
			s.WriteString(" " + m.dots.View())
		}
		s.WriteString("  ")
	}
	s.WriteString(m.help.View(m.keys))
	return s.String()
}

// positionText formats the original's "[n/total] Page x/y" indicator.
func positionText[T any](p *pager.PagedList[T]) string {
	if p.Len() == 0 {
		return ""
	}
	text := fmt.Sprintf("[%d/%d]", p.Index()+1, p.Len())
	if pages := p.PageCount(); pages > 1 {
		text += fmt.Sprintf(" Page %d/%d", p.Page()+1, pages)
	}
	return text
}

func (m model) renderDetailScreen() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("MCP Server: " + m.selectedServer.Name))
	s.WriteString("\n")
	s.WriteString(m.detail.View())
	s.WriteString("\n")
	if m.status != "" {
		s.WriteString(statusStyle.Render(m.status))
	}
	s.WriteString("\n")
	s.WriteString(pathStyle.Render("c: copy command • esc: back • q: quit"))
	return s.String()
}

// renderServerDetail builds the viewport content: the server configuration
// and the `claude mcp add` command that recreates it.
func (m model) renderServerDetail() string {
	server := m.selectedServer
	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	var s strings.Builder
	s.WriteString(labelStyle.Render("Configuration") + "\n")
	s.WriteString(fmt.Sprintf("  Type: %s\n", server.Type))
	if server.URL != "" {
		s.WriteString(fmt.Sprintf("  URL: %s\n", server.URL))
	}
	if server.Command != "" {
		s.WriteString(fmt.Sprintf("  Command: %s\n", server.Command))
	}
	if len(server.Args) > 0 {
		s.WriteString(fmt.Sprintf("  Args: %s\n", strings.Join(server.Args, " ")))
	}
	if len(server.Env) > 0 {
		s.WriteString(fmt.Sprintf("  Env: %d variable(s)\n", len(server.Env)))
	}

	s.WriteString("\n")
	s.WriteString(labelStyle.Render("Installation Command") + "\n")

	wrapWidth := m.width - 4
	if wrapWidth < 20 {
		wrapWidth = 20
	}
	cmd := strings.Join(ui.InstallCommand(server), " ")
	for i, line := range wrapText(cmd, wrapWidth) {
		if i > 0 {
			s.WriteString("    ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(line + "\n")
	}

	s.WriteString("\n")
	s.WriteString(dimStyle.Render("Note: add -s user or -s project to choose the scope"))
	return s.String()
}

func (m model) renderConfirm(base string) string {
	dimmed := dimStyle.Render(base)

	var title, message, warning string
	switch m.confirm {
	case confirmDeleteServer:
		title = "Delete MCP server?"
		message = "Server: " + m.confirmServer.Name
	case confirmDeleteAllServers:
		title = "Delete ALL MCP servers?"
		message = fmt.Sprintf("This will delete all %d configured servers.", m.servers.Len())
		warning = "This action cannot be undone!"
	case confirmDeleteProject:
		title = "Delete project?"
		message = "Project: " + m.confirmProject.Name()
		if m.confirmProject.DirName != "" {
			warning = "The directory under the projects root is deleted too."
		}
	case confirmDeleteAllProjects:
		title = "Delete ALL projects?"
		message = fmt.Sprintf("This will delete all %d projects and their data.", m.projectList.Len())
		warning = "This also clears the projects directory!"
	case confirmDeleteConversation:
		title = "Delete conversation?"
		if rec, ok := m.conversations.Selected(); ok {
			message = ui.Truncate(rec.Display, 60)
		}
	}

	var content strings.Builder
	content.WriteString(dialogTitleStyle.Render(title))
	content.WriteString("\n\n")
	content.WriteString(message)
	content.WriteString("\n")
	if warning != "" {
		content.WriteString(warnStyle.Render(warning))
		content.WriteString("\n")
	}
	content.WriteString("\n")
	content.WriteString(statusStyle.Render("y"))
	content.WriteString(pathStyle.Render(" confirm • "))
	content.WriteString(statusStyle.Render("n"))
	content.WriteString(pathStyle.Render(" cancel"))

	return dimmed + "\n\n" + dialogStyle.Render(content.String())
}

// wrapText word-wraps text to the given width.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	currentLine := words[0]
	for _, word := range words[1:] {
		if len(currentLine)+1+len(word) > width {
			lines = append(lines, currentLine)
			currentLine = word
		} else {
			currentLine += " " + word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}
