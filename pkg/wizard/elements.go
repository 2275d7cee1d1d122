package wizard

import "github.com/charmbracelet/lipgloss"

// Element is one renderable row of a wizard step. The variant set is closed:
// TextInput, Checkbox, Select, and Separator. Only TextInput and Checkbox
// carry an identifier and write into form state; Select and Separator never
// do.
type Element interface {
	// Interactive reports whether the cursor may rest on this element.
	Interactive() bool

	element()
}

// ActionResult is what a Select action reports back to the controller when
// its asynchronous work settles.
type ActionResult struct {
	// Submit asks the controller to submit the whole step.
	Submit bool
	Err    error
}

// SelectAction is the asynchronous work attached to a Select element. It runs
// off the update loop and receives a snapshot of the form accumulated so far;
// its result is delivered back to the controller as a completion message.
type SelectAction func(form FormState) ActionResult

// TextInput is a single-line text field. Mask hides typed characters
// (passwords).
type TextInput struct {
	ID          string
	Label       string
	Placeholder string
	Mask        bool
	Style       lipgloss.Style
}

func (TextInput) Interactive() bool { return true }
func (TextInput) element()          {}

// Checkbox is a boolean toggle.
type Checkbox struct {
	ID    string
	Label string
	Style lipgloss.Style
}

func (Checkbox) Interactive() bool { return true }
func (Checkbox) element()          {}

// Select is an actionable row. With an OnSelect action, invoking it starts a
// spinner and runs the action asynchronously; without one, invoking it
// submits the step with Value.
type Select struct {
	Label       string
	Value       string
	Description string
	OnSelect    SelectAction
	Style       lipgloss.Style
}

func (Select) Interactive() bool { return true }
func (Select) element()          {}

// Separator is an inert divider or section label. The cursor never rests on
// it.
type Separator struct {
	Label   string
	Divider rune
	Style   lipgloss.Style
}

func (Separator) Interactive() bool { return false }
func (Separator) element()          {}
