package tui

// renderFooter renders the key binding help at full terminal width. The
// short form is shown until ? toggles the full list.
func renderFooter(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}
	return StyleDim.Width(width).Render(app.help.View(keys))
}
