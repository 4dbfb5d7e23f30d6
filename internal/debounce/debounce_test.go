package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const delay = 40 * time.Millisecond

type recorder struct {
	mu    sync.Mutex
	calls []string
	at    []time.Time
	fired chan struct{}
}

func newRecorder() *recorder {
	return &recorder{fired: make(chan struct{}, 16)}
}

func (r *recorder) record(s string) {
	r.mu.Lock()
	r.calls = append(r.calls, s)
	r.at = append(r.at, time.Now())
	r.mu.Unlock()
	r.fired <- struct{}{}
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) waitFire(t *testing.T) {
	t.Helper()
	select {
	case <-r.fired:
	case <-time.After(time.Second):
		t.Fatal("callback did not fire")
	}
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBurstCollapsesToLastCall(t *testing.T) {
	rec := newRecorder()
	d := New(delay, rec.record)
	defer d.Stop()

	d.Invoke("j")
	time.Sleep(delay / 4)
	d.Invoke("jo")
	time.Sleep(delay / 4)
	last := time.Now()
	d.Invoke("joh")

	rec.waitFire(t)
	time.Sleep(2 * delay)

	assert.Equal(t, []string{"joh"}, rec.snapshot())
	rec.mu.Lock()
	firedAt := rec.at[0]
	rec.mu.Unlock()
	assert.GreaterOrEqual(t, firedAt.Sub(last), delay)
}

func TestSeparateQuietPeriodsFireSeparately(t *testing.T) {
	rec := newRecorder()
	d := New(delay, rec.record)
	defer d.Stop()

	d.Invoke("a")
	rec.waitFire(t)
	d.Invoke("b")
	rec.waitFire(t)

	assert.Equal(t, []string{"a", "b"}, rec.snapshot())
}

func TestStopCancelsPendingCall(t *testing.T) {
	rec := newRecorder()
	d := New(delay, rec.record)

	d.Invoke("john")
	require.True(t, d.Pending())
	d.Stop()
	assert.False(t, d.Pending())

	time.Sleep(3 * delay)
	assert.Empty(t, rec.snapshot())

	d.Invoke("ignored")
	assert.False(t, d.Pending())
	time.Sleep(3 * delay)
	assert.Empty(t, rec.snapshot())
}

func TestCancelKeepsInvokerUsable(t *testing.T) {
	rec := newRecorder()
	d := New(delay, rec.record)
	defer d.Stop()

	d.Invoke("dropped")
	d.Cancel()
	assert.False(t, d.Pending())

	d.Invoke("kept")
	rec.waitFire(t)
	assert.Equal(t, []string{"kept"}, rec.snapshot())
}

func TestCallbackResolvedAtFireTime(t *testing.T) {
	stale := newRecorder()
	fresh := newRecorder()
	d := New(delay, stale.record)
	defer d.Stop()

	d.Invoke("query")
	d.SetCallback(fresh.record)
	assert.True(t, d.Pending(), "swapping the callback must not reset the timer")

	fresh.waitFire(t)
	assert.Equal(t, []string{"query"}, fresh.snapshot())
	assert.Empty(t, stale.snapshot())
}

func TestAtMostOnePending(t *testing.T) {
	rec := newRecorder()
	d := New(delay, rec.record)
	defer d.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Invoke("x")
		}()
	}
	wg.Wait()

	rec.waitFire(t)
	time.Sleep(2 * delay)
	assert.Len(t, rec.snapshot(), 1)
}

func TestZeroAndNegativeDelay(t *testing.T) {
	rec := newRecorder()
	d := New(-time.Second, rec.record)
	defer d.Stop()

	assert.Equal(t, time.Duration(0), d.Delay())
	d.Invoke("now")
	rec.waitFire(t)
	assert.Equal(t, []string{"now"}, rec.snapshot())
}

func TestNilCallback(t *testing.T) {
	d := New[int](time.Millisecond, nil)
	defer d.Stop()

	assert.NotPanics(t, func() {
		d.Invoke(1)
		time.Sleep(10 * time.Millisecond)
	})
	assert.False(t, d.Pending())
}
