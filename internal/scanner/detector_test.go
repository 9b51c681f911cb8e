package scanner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDetectorLatchesOnFastDigits(t *testing.T) {
	t.Parallel()
	d := New(50 * time.Millisecond)
	base := time.Now()

	require.False(t, d.Observe(base, "7"), "first keystroke has no cadence yet")
	require.True(t, d.Observe(base.Add(10*time.Millisecond), "75"))
	require.True(t, d.Active())
}

func TestDetectorStaysLatchedUntilReset(t *testing.T) {
	t.Parallel()
	d := New(50 * time.Millisecond)
	base := time.Now()

	d.Observe(base, "7")
	require.True(t, d.Observe(base.Add(5*time.Millisecond), "75"))

	// A later slow keystroke does not unlatch
	require.True(t, d.Observe(base.Add(2*time.Second), "750"))

	d.Reset()
	require.False(t, d.Active())
	require.False(t, d.Observe(base.Add(3*time.Second), "7501"), "cadence history cleared")
}

func TestDetectorIgnoresSlowTyping(t *testing.T) {
	t.Parallel()
	d := New(50 * time.Millisecond)
	base := time.Now()

	d.Observe(base, "7")
	require.False(t, d.Observe(base.Add(200*time.Millisecond), "75"))
	require.False(t, d.Active())
}

func TestDetectorIgnoresFastNonDigits(t *testing.T) {
	t.Parallel()
	d := New(50 * time.Millisecond)
	base := time.Now()

	d.Observe(base, "a")
	require.False(t, d.Observe(base.Add(5*time.Millisecond), "as"), "letters are human input")

	// Mixed value never latches either
	require.False(t, d.Observe(base.Add(10*time.Millisecond), "as7"))
}

func TestDetectorEmptyValue(t *testing.T) {
	t.Parallel()
	d := New(0) // falls back to the default threshold
	base := time.Now()

	d.Observe(base, "")
	require.False(t, d.Observe(base.Add(time.Millisecond), ""))
}
