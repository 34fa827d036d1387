package gpio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeLine struct {
	values []int
	closed bool
}

func (l *fakeLine) SetValue(value int) error {
	l.values = append(l.values, value)
	return nil
}

func (l *fakeLine) Close() error {
	l.closed = true
	return nil
}

func TestChipDigitalWrite(t *testing.T) {
	lines := make(map[int]*fakeLine)
	c := NewChip("")
	require.Equal(t, DefaultChip, c.Name)
	c.Request = func(chip string, offset, value int) (OutputLine, error) {
		require.Equal(t, DefaultChip, chip)
		line := &fakeLine{values: []int{value}}
		lines[offset] = line
		return line, nil
	}

	require.NoError(t, c.DigitalWrite(5, true))
	require.NoError(t, c.DigitalWrite(5, false))
	require.NoError(t, c.DigitalWrite(2, false))
	require.Len(t, lines, 2)
	require.Equal(t, []int{1, 0}, lines[5].values)
	require.Equal(t, []int{0}, lines[2].values)

	require.NoError(t, c.Close())
	require.True(t, lines[5].closed)
	require.True(t, lines[2].closed)

	// lines are requested again after Close.
	require.NoError(t, c.DigitalWrite(5, true))
	require.Equal(t, []int{1}, lines[5].values)
}

func TestChipReleasesOnlyRequestedLines(t *testing.T) {
	var requested []*fakeLine
	failure := errors.New("line busy")
	c := NewChip("gpiochip1")
	c.Request = func(chip string, offset, value int) (OutputLine, error) {
		if offset == 3 {
			return nil, failure
		}
		line := &fakeLine{values: []int{value}}
		requested = append(requested, line)
		return line, nil
	}
	err := c.DigitalWrite(3, true)
	require.True(t, errors.Is(err, failure))
	require.NoError(t, c.DigitalWrite(4, true))
	require.NoError(t, c.Close())
	require.Len(t, requested, 1)
	require.True(t, requested[0].closed)
}

func TestChipMissingDevice(t *testing.T) {
	c := NewChip("/nonexistent/gpiochip99")
	require.Error(t, c.DigitalWrite(1, true))
	require.NoError(t, c.Close())
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.DigitalWrite(5, true))
	require.NoError(t, m.DigitalWrite(2, false))
	require.True(t, m.Level(5))
	require.False(t, m.Level(2))
	require.False(t, m.Level(9))
	require.Equal(t, []Write{{5, true}, {2, false}}, m.Writes())
}

func TestWriterFunc(t *testing.T) {
	var got Write
	var w Writer = WriterFunc(func(pin int, level bool) error {
		got = Write{Pin: pin, Level: level}
		return nil
	})
	require.NoError(t, w.DigitalWrite(7, true))
	require.Equal(t, Write{7, true}, got)
}
