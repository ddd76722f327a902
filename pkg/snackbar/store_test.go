package snackbar_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imran-moonward/mynote/pkg/core"
	"github.com/imran-moonward/mynote/pkg/snackbar"
)

func TestStore_AddAssignsIncreasingIDs(t *testing.T) {
	s := snackbar.New(snackbar.WithTimeout(time.Hour))
	defer s.Close()

	a := s.Push("Saved", core.SeveritySuccess)
	b := s.Push("Saved", core.SeveritySuccess)

	assert.NotZero(t, a.ID)
	assert.Greater(t, b.ID, a.ID)
	assert.Equal(t, []core.Snack{a, b}, s.Snacks())
}

func TestStore_AddIgnoresCallerID(t *testing.T) {
	s := snackbar.New(snackbar.WithTimeout(time.Hour))
	defer s.Close()

	got := s.Add(core.Snack{ID: 42, Message: "x", Severity: core.SeverityInfo})
	assert.Equal(t, uint64(1), got.ID)
}

func TestStore_DefaultTimeout(t *testing.T) {
	s := snackbar.New()
	defer s.Close()
	assert.Equal(t, snackbar.DefaultTimeout, s.Timeout())
	assert.Equal(t, 2*time.Second, s.Timeout())

	s = snackbar.New(snackbar.WithTimeout(0))
	defer s.Close()
	assert.Equal(t, snackbar.DefaultTimeout, s.Timeout())
}

func TestStore_SnackExpires(t *testing.T) {
	s := snackbar.New(snackbar.WithTimeout(30 * time.Millisecond))
	defer s.Close()

	s.Push("Note Added Successfully!", core.SeveritySuccess)
	require.Equal(t, 1, s.Len())

	require.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestStore_EachSnackHasItsOwnTimer(t *testing.T) {
	s := snackbar.New(snackbar.WithTimeout(150 * time.Millisecond))
	defer s.Close()

	first := s.Push("first", core.SeverityInfo)
	time.Sleep(75 * time.Millisecond)
	second := s.Push("second", core.SeverityInfo)

	require.Eventually(t, func() bool {
		snacks := s.Snacks()
		return len(snacks) == 1 && snacks[0].ID == second.ID
	}, time.Second, 2*time.Millisecond, "first should expire before second")
	assert.NotEqual(t, first.ID, second.ID)

	require.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestStore_RemoveBeforeTimeout(t *testing.T) {
	s := snackbar.New(snackbar.WithTimeout(50 * time.Millisecond))
	defer s.Close()

	a := s.Push("a", core.SeverityWarning)
	b := s.Push("b", core.SeverityWarning)

	assert.True(t, s.RemoveSnack(a))
	assert.Equal(t, []core.Snack{b}, s.Snacks())

	// The expired timer for a must not touch b or fail.
	time.Sleep(20 * time.Millisecond)
	assert.False(t, s.Remove(a.ID))

	require.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestStore_RemoveIsIdempotent(t *testing.T) {
	s := snackbar.New(snackbar.WithTimeout(time.Hour))
	defer s.Close()

	a := s.Push("a", core.SeverityError)
	assert.True(t, s.Remove(a.ID))
	assert.False(t, s.Remove(a.ID))
	assert.False(t, s.Remove(999))
	assert.Zero(t, s.Len())
}

func TestStore_DuplicateMessagesAreDistinct(t *testing.T) {
	s := snackbar.New(snackbar.WithTimeout(time.Hour))
	defer s.Close()

	a := s.Push("Note Deleted!", core.SeverityInfo)
	b := s.Push("Note Deleted!", core.SeverityInfo)

	s.Remove(a.ID)
	assert.Equal(t, []core.Snack{b}, s.Snacks())
}

func TestStore_SnacksReturnsCopy(t *testing.T) {
	s := snackbar.New(snackbar.WithTimeout(time.Hour))
	defer s.Close()

	s.Push("a", core.SeverityInfo)
	got := s.Snacks()
	got[0].Message = "mutated"
	assert.Equal(t, "a", s.Snacks()[0].Message)
}

func TestStore_Close(t *testing.T) {
	s := snackbar.New(snackbar.WithTimeout(time.Hour))
	ch := s.Watch(context.Background())

	s.Push("a", core.SeverityInfo)
	s.Close()

	assert.Zero(t, s.Len())
	s.Push("late", core.SeverityInfo)
	assert.Zero(t, s.Len())

	var got []core.Event
	for e := range ch {
		got = append(got, e)
	}
	require.Len(t, got, 1)
	assert.Equal(t, core.EventAdd, got[0].Type)
}

func TestStore_Watch(t *testing.T) {
	s := snackbar.New(snackbar.WithTimeout(20 * time.Millisecond))
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ch := s.Watch(ctx)

	a := s.Push("a", core.SeverityInfo)

	for _, want := range []core.EventType{core.EventAdd, core.EventRemove} {
		select {
		case e := <-ch:
			assert.Equal(t, want, e.Type)
			assert.Equal(t, a.ID, e.ID)
		case <-ctx.Done():
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func TestStore_ConcurrentAdds(t *testing.T) {
	s := snackbar.New(snackbar.WithTimeout(time.Hour))
	defer s.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Push("x", core.SeverityInfo)
		}()
	}
	wg.Wait()

	seen := make(map[uint64]bool)
	for _, sn := range s.Snacks() {
		assert.False(t, seen[sn.ID], "duplicate id %d", sn.ID)
		seen[sn.ID] = true
	}
	assert.Len(t, seen, 50)
}

func TestStore_State(t *testing.T) {
	s := snackbar.New(snackbar.WithTimeout(time.Hour))
	s.Push("a", core.SeverityInfo)

	st, ok := s.State().(snackbar.SnackbarState)
	require.True(t, ok)
	assert.Equal(t, 1, st.Queued)
	assert.Equal(t, 1, st.Timers)
	assert.Equal(t, uint64(1), st.LastID)
	assert.Equal(t, int64(time.Hour/time.Millisecond), st.TimeoutMS)
	assert.Equal(t, "snackbar", s.ComponentType())

	s.Close()
	st = s.State().(snackbar.SnackbarState)
	assert.True(t, st.Closed)
	assert.Zero(t, st.Timers)
}
