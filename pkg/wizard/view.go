package wizard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	styleSubtitle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	styleError    = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
	stylePrompt   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	styleCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	styleLabel    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	styleDesc     = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	styleOK       = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	styleFail     = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	styleDivider  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

const dividerWidth = 32

func (m Model) View() string {
	if m.result != nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render(m.title))
	b.WriteString("\n\n")

	if m.validationErr != "" {
		b.WriteString(styleError.Render("✖ " + m.validationErr))
		b.WriteString("\n\n")
	}

	for i, el := range m.elements {
		b.WriteString(m.renderElement(i, el))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(stylePrompt.Render("↑/↓ move · enter select · tab next · esc quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderElement(i int, el Element) string {
	mark := "  "
	if i == m.cursor {
		mark = styleCursor.Render("❯ ")
	}

	switch el := el.(type) {
	case Separator:
		if el.Label != "" {
			return "  " + el.Style.Inherit(styleSubtitle).Render(el.Label)
		}
		divider := el.Divider
		if divider == 0 {
			divider = '─'
		}
		return "  " + styleDivider.Render(strings.Repeat(string(divider), dividerWidth))

	case TextInput:
		in, ok := m.inputs[i]
		if !ok {
			return mark + el.Style.Inherit(styleLabel).Render(el.Label)
		}
		return mark + el.Style.Inherit(styleLabel).Render(padLabel(el.Label)) + in.View()

	case Checkbox:
		box := "[ ]"
		if m.form.Bool(el.ID) {
			box = "[x]"
		}
		return mark + el.Style.Inherit(styleLabel).Render(box+" "+el.Label)

	case Select:
		line := mark + el.Style.Inherit(styleLabel).Render(el.Label)
		switch m.tracker.Status(i) {
		case SpinnerRunning:
			line += " " + m.spin.View()
		case SpinnerSucceeded:
			line += " " + styleOK.Render("✔")
		case SpinnerFailed:
			line += " " + styleFail.Render("✖")
		}
		if el.Description != "" {
			line += "  " + styleDesc.Render(el.Description)
		}
		return line
	}
	return ""
}

func padLabel(label string) string {
	const width = 12
	if len(label) >= width {
		return label + " "
	}
	return label + strings.Repeat(" ", width-len(label))
}
