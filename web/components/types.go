package components

// Labels are the localized strings shown by the popup page.
type Labels struct {
	Title       string
	Shortcut    string
	Close       string
	InputLabel  string
	Placeholder string
	PreviewAlt  string
	Tips        string
	Copy        string
	Copied      string
	Download    string
}

// PopupProps is the initial state the popup page is rendered with. Later
// updates arrive from the JSON API.
type PopupProps struct {
	Lang   string
	Labels Labels

	Input       string
	MaxLength   int
	DisplaySize int

	// Error replaces the preview; LengthError shows under the input.
	Error       string
	LengthError string

	HasData  bool
	Disabled bool
	Revision uint64
}
