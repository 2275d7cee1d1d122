package wizard

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Weakky/introspection-cli/pkg/credentials"
)

// Step identifies one screen of the wizard.
type Step int

const (
	StepChooseFamily Step = iota
	StepConnect
)

// ErrCancelled is returned by Run when the operator quits without completing
// the wizard.
var ErrCancelled = errors.New("wizard cancelled")

// Options configures a wizard run.
type Options struct {
	// Initial pre-seeds the form, e.g. from partially supplied flags.
	Initial FormState

	// TestConnection backs the "Test connection" action of the Connect
	// step. Nil disables the action's real work (it still succeeds).
	TestConnection TestFunc
}

// actionDoneMsg delivers a settled Select action back to the update loop.
type actionDoneMsg struct {
	index  int
	result ActionResult
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Submit key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up")),
		Down:   key.NewBinding(key.WithKeys("down")),
		Next:   key.NewBinding(key.WithKeys("tab")),
		Submit: key.NewBinding(key.WithKeys("enter")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc")),
	}
}

// Model is the wizard state machine: (step, form, cursor, spinners) advanced
// by one Update per keypress or action-completion message. The rendering in
// View only observes the latest snapshot.
type Model struct {
	opts Options

	step     Step
	family   credentials.Family
	title    string
	elements []Element
	withBack bool

	// backIndex is the position of the synthesized back element, -1 when
	// the step has none. It always occupies the final cursor position.
	backIndex int

	cursor  int
	form    FormState
	tracker *SpinnerTracker
	inputs  map[int]textinput.Model

	spin spinner.Model
	keys keyMap

	validationErr string
	cancelled     bool
	err           error
	result        credentials.Descriptor

	width  int
	height int
}

// Run drives the interactive wizard to completion and returns the resolved
// descriptor. It returns ErrCancelled when the operator bails out.
func Run(opts Options) (credentials.Descriptor, error) {
	prog := tea.NewProgram(NewModel(opts))
	result, err := prog.Run()
	if err != nil {
		return nil, err
	}
	final, ok := result.(Model)
	if !ok {
		return nil, fmt.Errorf("wizard failed to return results")
	}
	if final.err != nil {
		return nil, final.err
	}
	if final.cancelled || final.result == nil {
		return nil, ErrCancelled
	}
	return final.result, nil
}

// NewModel builds a wizard positioned on the family-selection step.
func NewModel(opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	form := FormState{}
	for k, v := range opts.Initial {
		form[k] = v
	}

	m := Model{
		opts: opts,
		spin: s,
		keys: defaultKeyMap(),
	}
	return m.enterStep(StepChooseFamily, "", form)
}

func (m Model) Init() tea.Cmd {
	return nil
}

// enterStep swaps in a step's element list and resets cursor and spinner
// state. Form state is the one thing carried across: the caller passes in
// whatever has accumulated so far.
func (m Model) enterStep(step Step, family credentials.Family, form FormState) Model {
	m.step = step
	m.family = family
	m.form = form
	m.validationErr = ""
	m.tracker = NewSpinnerTracker()

	switch step {
	case StepChooseFamily:
		m.title, m.elements = chooseFamilyStep()
		m.withBack = false
	case StepConnect:
		m.title, m.elements = connectStep(family, m.opts.TestConnection)
		m.withBack = true
	}

	m.backIndex = -1
	if m.withBack {
		m.elements = append(m.elements, Select{Label: "Back", Description: "Choose a different database"})
		m.backIndex = len(m.elements) - 1
	}

	m.inputs = make(map[int]textinput.Model)
	for i, el := range m.elements {
		text, ok := el.(TextInput)
		if !ok {
			continue
		}
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = text.Placeholder
		if text.Mask {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		in.SetValue(m.form.String(text.ID))
		m.inputs[i] = in

		// Seed the form so re-entering the step keeps showing the value.
		if _, present := m.form[text.ID]; !present {
			m.form[text.ID] = ""
		}
	}
	for _, el := range m.elements {
		if box, ok := el.(Checkbox); ok {
			if _, present := m.form[box.ID]; !present {
				m.form[box.ID] = false
			}
		}
	}

	m.cursor = firstInteractive(m.elements)
	return m.focusCursor()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.tracker.AnyRunning() {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case actionDoneMsg:
		m.tracker.Finish(msg.index, msg.result.Err == nil)
		if msg.result.Err != nil {
			m.validationErr = msg.result.Err.Error()
			return m, nil
		}
		if msg.result.Submit {
			return m.submitStep()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey is the single dispatch point for one key event.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelled = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		return m.moveTo(MoveUp(m.cursor, m.elements)), nil

	case key.Matches(msg, m.keys.Down):
		return m.moveTo(MoveDown(m.cursor, m.elements)), nil

	case key.Matches(msg, m.keys.Next):
		// Tab auto-advances everywhere except inside a text field.
		if _, ok := m.elements[m.cursor].(TextInput); !ok {
			return m.moveTo(MoveDown(m.cursor, m.elements)), nil
		}
		return m.updateInput(msg)

	case key.Matches(msg, m.keys.Submit):
		return m.handleSubmitKey()
	}

	return m.updateInput(msg)
}

func (m Model) handleSubmitKey() (tea.Model, tea.Cmd) {
	switch el := m.elements[m.cursor].(type) {
	case TextInput:
		// A non-empty field counts as accepted: advance instead of
		// re-submitting. An empty one keeps waiting for characters.
		if m.form.String(el.ID) != "" {
			return m.moveTo(MoveDown(m.cursor, m.elements)), nil
		}
		return m, nil

	case Checkbox:
		m.form[el.ID] = !m.form.Bool(el.ID)
		return m, nil

	case Select:
		return m.invokeSelect(m.cursor, el)

	default:
		// Inert row: behave like Down.
		return m.moveTo(MoveDown(m.cursor, m.elements)), nil
	}
}

// invokeSelect runs a Select element. An in-flight spinner suppresses
// re-invocation; an action-less Select submits the step immediately.
func (m Model) invokeSelect(index int, el Select) (tea.Model, tea.Cmd) {
	if index == m.backIndex {
		return m.goBack()
	}

	if el.OnSelect == nil {
		return m.selectValue(el.Value)
	}

	if m.tracker.Status(index) == SpinnerRunning {
		return m, nil
	}

	m.tracker.Start(index)
	m.validationErr = ""
	action := el.OnSelect
	form := m.form.Clone()
	run := func() tea.Msg {
		return actionDoneMsg{index: index, result: action(form)}
	}
	return m, tea.Batch(m.spin.Tick, run)
}

// selectValue handles an action-less Select: on the family step it picks the
// family and moves on; on the connect step it submits.
func (m Model) selectValue(value string) (tea.Model, tea.Cmd) {
	if m.step == StepChooseFamily {
		m.form["type"] = value
		return m.enterStep(StepConnect, credentials.Family(value), m.form), nil
	}
	return m.submitStep()
}

// goBack re-enters the family step carrying the accumulated form state, so
// typed-in field values survive re-choosing a family.
func (m Model) goBack() (tea.Model, tea.Cmd) {
	return m.enterStep(StepChooseFamily, "", m.form), nil
}

// submitStep finalizes the connect step's form into a descriptor. Validation
// failures surface inline and keep the step open.
func (m Model) submitStep() (tea.Model, tea.Cmd) {
	desc, err := descriptorFromForm(m.family, m.form)
	if errors.Is(err, credentials.ErrNoFlags) {
		m.validationErr = "fill in the connection details first"
		return m, nil
	}
	if err != nil {
		m.validationErr = err.Error()
		return m, nil
	}
	m.result = desc
	return m, tea.Quit
}

// moveTo repositions the cursor, shifting text-input focus along with it.
func (m Model) moveTo(cursor int) Model {
	if cursor == m.cursor {
		return m
	}
	if in, ok := m.inputs[m.cursor]; ok {
		in.Blur()
		m.inputs[m.cursor] = in
	}
	m.cursor = cursor
	return m.focusCursor()
}

func (m Model) focusCursor() Model {
	if in, ok := m.inputs[m.cursor]; ok {
		in.Focus()
		m.inputs[m.cursor] = in
	}
	return m
}

// updateInput forwards a key to the focused text field and mirrors its value
// into the form.
func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	in, ok := m.inputs[m.cursor]
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	in, cmd = in.Update(msg)
	m.inputs[m.cursor] = in
	if el, ok := m.elements[m.cursor].(TextInput); ok {
		m.form[el.ID] = in.Value()
	}
	return m, cmd
}
