package preview

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/tilewm/internal/app"
	"github.com/Gaurav-Gosain/tilewm/internal/config"
	"github.com/Gaurav-Gosain/tilewm/internal/geom"
	"github.com/Gaurav-Gosain/tilewm/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

func (m *Model) border() lipgloss.Border {
	if m.ascii {
		return lipgloss.ASCIIBorder()
	}
	switch config.BorderStyle {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "ascii":
		return lipgloss.ASCIIBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// GetCanvas composes every visible window and the status line.
func (m *Model) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(m.width, m.height)
	pal := theme.Colors()
	border := m.border()
	focused := m.wm.Focused()

	var layers []*lipgloss.Layer
	z := 0
	for _, out := range m.wm.Outputs() {
		for _, w := range m.wm.Stacking(out.ID) {
			frame, ok := m.backend.Frame(w.ID)
			if !ok || !m.backend.Visible(w.ID) {
				continue
			}
			r := frame.Intersect(out.Rect)
			if r.W < 2 || r.H < 2 {
				continue
			}
			z++
			content := m.renderWindow(w, r, w.ID == focused, pal, border)
			layers = append(layers, lipgloss.NewLayer(content).X(r.X).Y(r.Y).Z(z).ID(string(w.ID)))
		}
	}

	if m.height > 0 {
		layers = append(layers, lipgloss.NewLayer(m.renderStatus(pal)).
			X(0).Y(m.height-statusHeight).Z(z+1).ID("status"))
	}

	for _, layer := range layers {
		canvas.Compose(layer)
	}
	return canvas
}

func windowColor(w app.Window, isFocused bool, pal theme.Palette) color.Color {
	switch {
	case isFocused:
		return pal.Focused
	case w.Mode == app.Floating:
		return pal.Floating
	case w.Mode == app.Fullscreen:
		return pal.Fullscreen
	}
	return pal.Unfocused
}

func windowLabel(w app.Window) string {
	if w.AppHint == "" {
		return string(w.ID)
	}
	return w.AppHint + " · " + string(w.ID)
}

// renderWindow draws a box exactly r.W by r.H cells with the label set into
// the top border.
func (m *Model) renderWindow(w app.Window, r geom.Rect, isFocused bool, pal theme.Palette, border lipgloss.Border) string {
	fg := windowColor(w, isFocused, pal)
	inner := r.W - 2

	title := ""
	if inner > 2 {
		title = " " + ansi.Truncate(windowLabel(w), inner-2, "…") + " "
	}
	fill := max(inner-lipgloss.Width(title), 0)
	top := lipgloss.NewStyle().Foreground(fg).Render(border.TopLeft) +
		lipgloss.NewStyle().Foreground(pal.Title).Bold(isFocused).Render(title) +
		lipgloss.NewStyle().Foreground(fg).Render(strings.Repeat(border.Top, fill)+border.TopRight)

	lines := []string{
		w.Mode.String(),
		fmt.Sprintf("workspace %d", w.Workspace),
		fmt.Sprintf("%dx%d", r.W, r.H),
	}
	if typed := m.backend.Typed(w.ID); typed != "" {
		lines = append(lines, "", "> "+typed)
	}
	if rows := r.H - 2; len(lines) > rows {
		lines = lines[:max(rows, 0)]
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, inner, "…")
	}

	box := lipgloss.NewStyle().
		Align(lipgloss.Left).
		AlignVertical(lipgloss.Top).
		Border(border).
		BorderTop(false).
		BorderForeground(fg).
		Width(r.W).
		Height(r.H - 1)

	return top + "\n" + box.Render(strings.Join(lines, "\n"))
}

// renderStatus draws the workspace list of the focused output, the focused
// window and the last key.
func (m *Model) renderStatus(pal theme.Palette) string {
	base := lipgloss.NewStyle().Foreground(pal.StatusFg).Background(pal.StatusBg)
	current := m.wm.Current().ID

	var b strings.Builder
	for _, ws := range m.wm.Workspaces() {
		label := fmt.Sprintf(" %d ", ws.ID)
		if ws.Name != "" {
			label = fmt.Sprintf(" %d:%s ", ws.ID, ws.Name)
		}
		style := base.Foreground(pal.WorkspaceEmpty)
		switch {
		case ws.ID == current:
			style = base.Foreground(pal.StatusBg).Background(pal.WorkspaceActive).Bold(true)
		case ws.Visible():
			style = base.Foreground(pal.WorkspaceActive)
		case !ws.Empty():
			style = base.Foreground(pal.WorkspaceOccupied)
		}
		b.WriteString(style.Render(label))
	}

	left := b.String()
	if w, ok := m.wm.Window(m.wm.Focused()); ok {
		left += base.Render(" " + windowLabel(w) + " [" + w.Mode.String() + "]")
	}
	right := m.notice
	if right == "" && m.lastKey != "" {
		right = "key " + m.lastKey
	}
	right = base.Render(right + " ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	line := left + base.Render(strings.Repeat(" ", max(gap, 0))) + right
	return ansi.Truncate(line, m.width, "")
}

// Render returns the composed frame as a string.
func (m *Model) Render() string {
	return lipgloss.Sprint(m.GetCanvas().Render())
}

func (m *Model) View() tea.View {
	var view tea.View
	view.SetContent(m.Render())
	view.AltScreen = true
	return view
}
