package window

// Option is a functional option for configuring a previewWindow.
// Use the With* functions to create options.
type Option func(w *previewWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - Option: option function to apply
func WithTitle(title string) Option {
	return func(w *previewWindow) {
		w.title = title
	}
}

// WithSize sets the initial window dimensions.
//
// Parameters:
//   - width: initial width in pixels
//   - height: initial height in pixels
//
// Returns:
//   - Option: option function to apply
func WithSize(width, height int) Option {
	return func(w *previewWindow) {
		if width > 0 {
			w.width = width
		}
		if height > 0 {
			w.height = height
		}
	}
}
