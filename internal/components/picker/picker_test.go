package picker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/durwheel/durwheel/internal/messages"
	"github.com/durwheel/durwheel/internal/timespan"
)

func keyDown() tea.Msg  { return tea.KeyMsg{Type: tea.KeyDown} }
func keyUp() tea.Msg    { return tea.KeyMsg{Type: tea.KeyUp} }
func keyTab() tea.Msg   { return tea.KeyMsg{Type: tea.KeyTab} }
func keyEnter() tea.Msg { return tea.KeyMsg{Type: tea.KeyEnter} }

func keyDigit(d rune) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{d}}
}

func intPtr(v int) *int { return &v }

func TestNew_StartsAtQuantizedZero(t *testing.T) {
	m := New(timespan.Options{Mode: timespan.ModeHourMinuteSecond})
	assert.Equal(t, timespan.Components{}, m.Value())
}

func TestNew_StartsAtMinimumBound(t *testing.T) {
	m := New(timespan.Options{
		Mode:    timespan.ModeHourMinuteSecond,
		Minimum: intPtr(3600),
	})
	assert.Equal(t, timespan.Components{Hour: 1}, m.Value())
}

func TestUpdate_StepDownAdvancesFocusedWheel(t *testing.T) {
	m := New(timespan.Options{Mode: timespan.ModeHourMinuteSecond})

	m, cmd := m.Update(keyDown())
	require.NotNil(t, cmd)

	assert.Equal(t, timespan.Components{Hour: 1}, m.Value())

	msg := cmd()
	changed, ok := msg.(messages.SelectionChangedMsg)
	require.True(t, ok)
	assert.Equal(t, timespan.Components{Hour: 1}, changed.Components)
}

func TestUpdate_TabMovesFocusToNextUnit(t *testing.T) {
	m := New(timespan.Options{Mode: timespan.ModeHourMinuteSecond})

	m, _ = m.Update(keyTab())
	m, _ = m.Update(keyDown())

	assert.Equal(t, timespan.Components{Minute: 1}, m.Value())
}

func TestUpdate_DigitJumpsFocusedWheel(t *testing.T) {
	m := New(timespan.Options{Mode: timespan.ModeHourMinuteSecond})

	m, cmd := m.Update(keyDigit('5'))
	require.NotNil(t, cmd)

	assert.Equal(t, timespan.Components{Hour: 5}, m.Value())

	msg := cmd()
	changed, ok := msg.(messages.SelectionChangedMsg)
	require.True(t, ok)
	assert.Equal(t, timespan.Components{Hour: 5}, changed.Components)
}

func TestUpdate_DigitSnapsToNearestGridValue(t *testing.T) {
	m := New(timespan.Options{Mode: timespan.ModeHourMinute, MinuteInterval: 15})

	m, _ = m.Update(keyTab()) // focus the minute wheel
	m, _ = m.Update(keyDigit('8'))

	assert.Equal(t, timespan.Components{Minute: 15}, m.Value(), "8 is closer to 15 than to 0")
}

func TestUpdate_ConsecutiveDigitsCombine(t *testing.T) {
	m := New(timespan.Options{Mode: timespan.ModeHourMinuteSecond})

	m, _ = m.Update(keyTab()) // focus the minute wheel
	m, _ = m.Update(keyDigit('4'))
	m, _ = m.Update(keyDigit('2'))

	assert.Equal(t, timespan.Components{Minute: 42}, m.Value())
}

func TestUpdate_MovementResetsDigitBuffer(t *testing.T) {
	m := New(timespan.Options{Mode: timespan.ModeHourMinuteSecond})

	m, _ = m.Update(keyTab()) // focus the minute wheel
	m, _ = m.Update(keyDigit('1'))
	m, _ = m.Update(keyDown())
	m, _ = m.Update(keyDigit('5'))

	assert.Equal(t, timespan.Components{Minute: 5}, m.Value(), "the 1 typed before moving does not linger")
}

func TestUpdate_WheelWrapsAround(t *testing.T) {
	m := New(timespan.Options{Mode: timespan.ModeHour, HourInterval: 6})

	// 0 -> 6 -> 12 -> 18 -> 0
	for i := 0; i < 3; i++ {
		m, _ = m.Update(keyDown())
	}
	assert.Equal(t, 18, m.Value().Hour)

	m, _ = m.Update(keyDown())
	assert.Equal(t, 0, m.Value().Hour)

	m, _ = m.Update(keyUp())
	assert.Equal(t, 18, m.Value().Hour)
}

func TestUpdate_IntervalWheelsLandOnGrid(t *testing.T) {
	m := New(timespan.Options{Mode: timespan.ModeMinute, MinuteInterval: 15})

	m, _ = m.Update(keyDown())
	assert.Equal(t, 15, m.Value().Minute)

	m, _ = m.Update(keyDown())
	assert.Equal(t, 30, m.Value().Minute)
}

func TestUpdate_ConfirmEmitsSelection(t *testing.T) {
	m := New(timespan.Options{Mode: timespan.ModeHourMinute})
	m, _ = m.Update(keyDown())

	_, cmd := m.Update(keyEnter())
	require.NotNil(t, cmd)

	msg := cmd()
	confirmed, ok := msg.(messages.SelectionConfirmedMsg)
	require.True(t, ok)
	assert.Equal(t, timespan.Components{Hour: 1}, confirmed.Components)
}

func TestUpdate_MaximumBoundClampsSteps(t *testing.T) {
	m := New(timespan.Options{
		Mode:    timespan.ModeHourMinuteSecond,
		Maximum: intPtr(3600),
	})

	m, _ = m.Update(keyDown())
	assert.Equal(t, timespan.Components{Hour: 1}, m.Value())

	// The next hour step lands past the maximum and gets clamped back.
	m, _ = m.Update(keyDown())
	assert.Equal(t, timespan.Components{Hour: 1}, m.Value())
}

func TestSetValue_Quantizes(t *testing.T) {
	m := New(timespan.Options{Mode: timespan.ModeHourMinute, MinuteInterval: 15})
	m.SetValue(2*3600 + 40*60)
	assert.Equal(t, timespan.Components{Hour: 2, Minute: 30}, m.Value())
}

func TestSetOptions_RebuildsWheelsAndKeepsValue(t *testing.T) {
	m := New(timespan.Options{Mode: timespan.ModeHourMinuteSecond})
	m.SetValue(2*3600 + 20*60)

	m.SetOptions(timespan.Options{Mode: timespan.ModeHourMinute, MinuteInterval: 15})

	assert.Equal(t, timespan.Components{Hour: 2, Minute: 15}, m.Value())
}

func TestView_RendersAllActiveUnits(t *testing.T) {
	m := New(timespan.Options{Mode: timespan.ModeMinuteSecond})
	out := m.View()

	assert.Contains(t, out, "minute")
	assert.Contains(t, out, "second")
	assert.NotContains(t, out, "hour")
}
