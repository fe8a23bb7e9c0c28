package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(delay time.Duration) (*Debouncer, chan string) {
	out := make(chan string, 10)
	return New(delay, func(v string) { out <- v }), out
}

func TestBurstFiresOnceWithLatestValue(t *testing.T) {
	d, out := collect(30 * time.Millisecond)

	d.Push("n")
	d.Push("no")
	d.Push("not")

	select {
	case v := <-out:
		assert.Equal(t, "not", v)
	case <-time.After(time.Second):
		t.Fatal("debounced value never delivered")
	}

	select {
	case v := <-out:
		t.Fatalf("unexpected second delivery %q", v)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSeparateQuietPeriodsFireSeparately(t *testing.T) {
	d, out := collect(10 * time.Millisecond)

	d.Push("a")
	require.Equal(t, "a", <-out)
	d.Push("b")
	require.Equal(t, "b", <-out)
}

func TestFlushDeliversNow(t *testing.T) {
	d, out := collect(time.Hour)

	d.Push("x")
	d.Flush()
	require.Len(t, out, 1)
	assert.Equal(t, "x", <-out)

	d.Flush()
	assert.Len(t, out, 0)
}

func TestStopDropsPending(t *testing.T) {
	d, out := collect(10 * time.Millisecond)

	d.Push("x")
	d.Stop()

	select {
	case v := <-out:
		t.Fatalf("stopped debouncer delivered %q", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLateTimerDoesNotDeliverNewerValue(t *testing.T) {
	d, out := collect(50 * time.Millisecond)

	// Keep the first timer's callback parked past its deadline
	d.deliver.Lock()
	d.Push("a")
	time.Sleep(100 * time.Millisecond)
	d.Push("b")
	d.deliver.Unlock()

	time.Sleep(10 * time.Millisecond)
	d.Push("c")

	select {
	case v := <-out:
		assert.Equal(t, "c", v)
	case <-time.After(time.Second):
		t.Fatal("debounced value never delivered")
	}

	select {
	case v := <-out:
		t.Fatalf("unexpected second delivery %q", v)
	case <-time.After(150 * time.Millisecond):
	}
}
