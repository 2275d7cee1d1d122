package wizard

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Weakky/introspection-cli/pkg/credentials"
)

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func pressKey(t *testing.T, m Model, keyType tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: keyType})
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

// execCmd runs a command tree and collects the messages it produces.
func execCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, execCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// enterConnectStep drives a fresh wizard onto the Connect step for the given
// family.
func enterConnectStep(t *testing.T, opts Options, family credentials.Family) Model {
	t.Helper()
	m := NewModel(opts)
	require.Equal(t, StepChooseFamily, m.step)

	for {
		sel, ok := m.elements[m.cursor].(Select)
		require.True(t, ok)
		if sel.Value == string(family) {
			break
		}
		m, _ = pressKey(t, m, tea.KeyDown)
	}
	m, _ = pressKey(t, m, tea.KeyEnter)
	require.Equal(t, StepConnect, m.step)
	return m
}

func fillPostgresForm(m Model) Model {
	m.form["host"] = "localhost"
	m.form["user"] = "postgres"
	m.form["password"] = "secret"
	m.form["database"] = "mydb"
	return m
}

func TestChooseFamilySeedsFormType(t *testing.T) {
	m := enterConnectStep(t, Options{}, credentials.FamilyPostgres)

	assert.Equal(t, "postgres", m.form.String("type"))
	assert.Equal(t, credentials.FamilyPostgres, m.family)
	assert.Equal(t, len(m.elements)-1, m.backIndex, "back element occupies the final position")
}

func TestTypingFillsFormState(t *testing.T) {
	m := enterConnectStep(t, Options{}, credentials.FamilyPostgres)

	require.IsType(t, TextInput{}, m.elements[m.cursor])
	m = typeText(t, m, "localhost")

	assert.Equal(t, "localhost", m.form.String("host"))
}

func TestEnterOnNonEmptyTextInputAdvances(t *testing.T) {
	m := enterConnectStep(t, Options{}, credentials.FamilyPostgres)
	m = typeText(t, m, "localhost")

	before := m.cursor
	m, _ = pressKey(t, m, tea.KeyEnter)
	assert.Equal(t, MoveDown(before, m.elements), m.cursor)
}

func TestEnterOnEmptyTextInputStaysPut(t *testing.T) {
	m := enterConnectStep(t, Options{}, credentials.FamilyPostgres)

	before := m.cursor
	m, cmd := pressKey(t, m, tea.KeyEnter)
	assert.Equal(t, before, m.cursor)
	assert.Nil(t, cmd)
}

func TestTabOnNonTextInputActsLikeDown(t *testing.T) {
	m := enterConnectStep(t, Options{}, credentials.FamilyPostgres)

	// Move onto the SSL checkbox, which sits right before a separator.
	for {
		if _, ok := m.elements[m.cursor].(Checkbox); ok {
			break
		}
		m, _ = pressKey(t, m, tea.KeyDown)
	}

	before := m.cursor
	m, _ = pressKey(t, m, tea.KeyTab)
	assert.Equal(t, MoveDown(before, m.elements), m.cursor)
	assert.True(t, m.elements[m.cursor].Interactive(), "tab must skip the separator")
}

func TestEnterTogglesCheckbox(t *testing.T) {
	m := enterConnectStep(t, Options{}, credentials.FamilyPostgres)
	for {
		if _, ok := m.elements[m.cursor].(Checkbox); ok {
			break
		}
		m, _ = pressKey(t, m, tea.KeyDown)
	}

	require.False(t, m.form.Bool("ssl"))
	m, _ = pressKey(t, m, tea.KeyEnter)
	assert.True(t, m.form.Bool("ssl"))
	m, _ = pressKey(t, m, tea.KeyEnter)
	assert.False(t, m.form.Bool("ssl"))
}

func TestBackCarriesFormState(t *testing.T) {
	m := enterConnectStep(t, Options{}, credentials.FamilyPostgres)
	m = typeText(t, m, "localhost")

	m = m.moveTo(m.backIndex)
	m, _ = pressKey(t, m, tea.KeyEnter)

	require.Equal(t, StepChooseFamily, m.step)
	assert.Equal(t, "localhost", m.form.String("host"))

	// Re-entering the connect step shows the preserved value.
	m, _ = pressKey(t, m, tea.KeyEnter)
	require.Equal(t, StepConnect, m.step)
	assert.Equal(t, "localhost", m.inputs[m.cursor].Value())
}

func TestSubmitFinalizesDescriptor(t *testing.T) {
	m := enterConnectStep(t, Options{}, credentials.FamilyPostgres)
	m = fillPostgresForm(m)

	m = m.moveTo(m.backIndex - 1) // the "Connect" select
	m, cmd := pressKey(t, m, tea.KeyEnter)

	require.NotNil(t, m.result)
	pg, ok := m.result.(credentials.Postgres)
	require.True(t, ok)
	assert.Equal(t, "localhost", pg.Host)
	assert.Nil(t, pg.Port, "empty port field must stay unset")

	msgs := execCmd(cmd)
	require.Len(t, msgs, 1)
	assert.IsType(t, tea.QuitMsg{}, msgs[0])
}

func TestSubmitWithIncompleteFormStaysOpen(t *testing.T) {
	m := enterConnectStep(t, Options{}, credentials.FamilyPostgres)
	m.form["host"] = "localhost"

	m = m.moveTo(m.backIndex - 1)
	m, _ = pressKey(t, m, tea.KeyEnter)

	assert.Nil(t, m.result)
	assert.NotEmpty(t, m.validationErr)
	assert.Equal(t, StepConnect, m.step)
}

func TestRunningSpinnerSuppressesReinvocation(t *testing.T) {
	calls := 0
	opts := Options{TestConnection: func(ctx context.Context, desc credentials.Descriptor) error {
		calls++
		return nil
	}}

	m := enterConnectStep(t, opts, credentials.FamilyPostgres)
	m = fillPostgresForm(m)
	m = m.moveTo(m.backIndex - 2) // the "Test connection" select
	testIndex := m.cursor

	m, cmd := pressKey(t, m, tea.KeyEnter)
	require.NotNil(t, cmd)
	require.Equal(t, SpinnerRunning, m.tracker.Status(testIndex))

	// Second invocation while running is dropped: no command scheduled.
	m, cmd2 := pressKey(t, m, tea.KeyEnter)
	assert.Nil(t, cmd2)

	// Settle the first action.
	var done *actionDoneMsg
	for _, msg := range execCmd(cmd) {
		if d, ok := msg.(actionDoneMsg); ok {
			done = &d
		}
	}
	require.NotNil(t, done)
	assert.Equal(t, 1, calls)

	m, _ = update(t, m, *done)
	assert.Equal(t, SpinnerSucceeded, m.tracker.Status(testIndex))

	// Once settled, the action may run again.
	_, cmd3 := pressKey(t, m, tea.KeyEnter)
	assert.NotNil(t, cmd3)
}

func TestFailedActionSurfacesValidationError(t *testing.T) {
	opts := Options{TestConnection: func(ctx context.Context, desc credentials.Descriptor) error {
		return errors.New("connection refused")
	}}

	m := enterConnectStep(t, opts, credentials.FamilyPostgres)
	m = fillPostgresForm(m)
	m = m.moveTo(m.backIndex - 2)
	testIndex := m.cursor

	m, cmd := pressKey(t, m, tea.KeyEnter)
	for _, msg := range execCmd(cmd) {
		if done, ok := msg.(actionDoneMsg); ok {
			m, _ = update(t, m, done)
		}
	}

	assert.Equal(t, SpinnerFailed, m.tracker.Status(testIndex))
	assert.Contains(t, m.validationErr, "connection refused")
}

func TestActionCanSubmitStep(t *testing.T) {
	m := enterConnectStep(t, Options{}, credentials.FamilyPostgres)
	m = fillPostgresForm(m)

	m, _ = update(t, m, actionDoneMsg{index: 0, result: ActionResult{Submit: true}})
	require.NotNil(t, m.result)
	assert.Equal(t, credentials.FamilyPostgres, m.result.Family())
}

func TestInitialFormPreseedsInputs(t *testing.T) {
	opts := Options{Initial: FormState{"host": "db.internal"}}
	m := enterConnectStep(t, opts, credentials.FamilyPostgres)

	assert.Equal(t, "db.internal", m.inputs[m.cursor].Value())
}

func TestQuitCancels(t *testing.T) {
	m := NewModel(Options{})
	m, cmd := pressKey(t, m, tea.KeyCtrlC)

	assert.True(t, m.cancelled)
	msgs := execCmd(cmd)
	require.Len(t, msgs, 1)
	assert.IsType(t, tea.QuitMsg{}, msgs[0])
}

func TestMongoConnectStepFinalizes(t *testing.T) {
	m := enterConnectStep(t, Options{}, credentials.FamilyMongo)
	m.form["uri"] = "mongodb://localhost:27017"
	m.form["database"] = "shop"

	m = m.moveTo(m.backIndex - 1)
	m, _ = pressKey(t, m, tea.KeyEnter)

	require.NotNil(t, m.result)
	mongo, ok := m.result.(credentials.Mongo)
	require.True(t, ok)
	assert.Equal(t, "mongodb://localhost:27017/admin", mongo.URI)
	assert.Equal(t, "shop", mongo.Database)
}
