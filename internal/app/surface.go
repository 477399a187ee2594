package app

// MapSurface starts managing a new surface on the current workspace. The
// rule table picks its initial mode.
func (m *WM) MapSurface(id WindowID, appHint string) error {
	if id == "" {
		return protocolErr("surface_mapped", "empty surface id")
	}
	if _, ok := m.windows[id]; ok {
		return protocolErr("surface_mapped", "surface %q: %w", id, ErrDuplicateWindow)
	}

	ws := m.Current()
	w := &Window{ID: id, AppHint: appHint, Workspace: ws.ID}
	m.windows[id] = w
	ws.join(id)

	switch m.ruleMode(appHint) {
	case Floating:
		m.pushFloating(w, ws)
	case Fullscreen:
		m.tile(ws, id)
		m.enterFullscreen(w, ws)
	default:
		m.tile(ws, id)
	}
	m.log.Debug("window mapped", "window", id, "app", appHint, "workspace", ws.ID, "mode", w.Mode)

	if !ws.Visible() {
		m.backend.UnmapWindow(id)
		ws.touch(id)
		return nil
	}
	m.arrange(ws, false)
	m.backend.MapWindow(id)

	// A window opening under a fullscreen one does not take focus from it.
	covered := ws.Fullscreen != "" && ws.Fullscreen != id
	if m.settings.focusOnCreation && !covered && ws.Output == m.focusedOutput {
		ws.touch(id)
		m.focusWindow(w, ws)
	} else {
		ws.remember(id)
	}
	return nil
}

// UnmapSurface stops managing a surface. Siblings are re-laid out and focus
// falls back to the workspace's most recent window.
func (m *WM) UnmapSurface(id WindowID) error {
	w, ok := m.windows[id]
	if !ok {
		return protocolErr("surface_unmapped", "surface %q: %w", id, ErrUnknownWindow)
	}
	ws := m.workspaces[w.Workspace]

	m.detach(w, ws, "unmap")
	ws.forget(id)
	delete(m.windows, id)
	m.log.Debug("window unmapped", "window", id, "workspace", ws.ID)

	if ws.Visible() {
		m.arrange(ws, false)
	}
	if m.focused == id {
		m.focusWorkspace(ws)
	}
	return nil
}
