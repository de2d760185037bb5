package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daas/portwatch/internal/maneuver"
)

var (
	alpha = maneuver.Maneuver{Name: "MV Example", Type: "Entrada", Berth: "101"}
	bravo = maneuver.Maneuver{Name: "BRAVO", Type: "Saída", Berth: "102"}
)

func TestNew_PreFirstCheck(t *testing.T) {
	s := New()

	assert.False(t, s.Checked())
	assert.Empty(t, s.Previous())

	st := s.Status(0)
	assert.False(t, st.Checked)
	assert.Zero(t, st.TotalVessels)
	assert.NotNil(t, st.Maneuvers)
}

func TestApply_ReplacesSnapshot(t *testing.T) {
	s := New()
	first := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	second := first.Add(10 * time.Minute)

	s.Apply([]maneuver.Maneuver{alpha, bravo}, first)
	require.True(t, s.Checked())
	assert.Equal(t, []maneuver.Maneuver{alpha, bravo}, s.Previous())
	assert.Equal(t, first, s.Current().CheckedAt)

	s.Apply([]maneuver.Maneuver{bravo}, second)
	assert.Equal(t, []maneuver.Maneuver{bravo}, s.Previous())
	assert.Equal(t, second, s.Current().CheckedAt)
}

func TestApply_IndexIsMonotonic(t *testing.T) {
	s := New()

	s.Apply([]maneuver.Maneuver{alpha}, time.Now())
	s.Apply([]maneuver.Maneuver{bravo}, time.Now())

	got, ok := s.Lookup("MV Example")
	require.True(t, ok, "vessel that left the listing must stay queryable")
	assert.Equal(t, alpha, got)

	assert.Equal(t, 2, s.Status(0).TotalVessels)
}

func TestApply_IndexOverwritesWithLatest(t *testing.T) {
	s := New()
	moved := alpha
	moved.Berth = "205"

	s.Apply([]maneuver.Maneuver{alpha}, time.Now())
	s.Apply([]maneuver.Maneuver{moved}, time.Now())

	got, ok := s.Lookup("mv example")
	require.True(t, ok)
	assert.Equal(t, "205", got.Berth)
	assert.Equal(t, 1, s.Status(0).TotalVessels)
}

func TestApply_DoesNotAliasInput(t *testing.T) {
	s := New()
	input := []maneuver.Maneuver{alpha}

	s.Apply(input, time.Now())
	input[0] = bravo

	assert.Equal(t, alpha, s.Previous()[0])
}

func TestApply_OldStateUnchanged(t *testing.T) {
	s := New()
	s.Apply([]maneuver.Maneuver{alpha}, time.Now())
	old := s.Current()

	s.Apply([]maneuver.Maneuver{bravo}, time.Now())

	assert.Len(t, old.Snapshot, 1)
	assert.Len(t, old.Index, 1)
	assert.Equal(t, alpha, old.Snapshot[0])
}

func TestLookup_CaseInsensitive(t *testing.T) {
	s := New()
	s.Apply([]maneuver.Maneuver{alpha}, time.Now())

	for _, name := range []string{"MV Example", "mv example", "MV EXAMPLE", "mV eXaMpLe"} {
		got, ok := s.Lookup(name)
		assert.True(t, ok, name)
		assert.Equal(t, alpha, got, name)
	}

	_, ok := s.Lookup("mv  example")
	assert.False(t, ok, "lookup is exact apart from case")

	_, ok = s.Lookup("unknown")
	assert.False(t, ok)
}

func TestStatus_Limit(t *testing.T) {
	s := New()
	listing := make([]maneuver.Maneuver, 0, 40)
	for i := 0; i < 40; i++ {
		listing = append(listing, maneuver.Maneuver{Name: fmt.Sprintf("VESSEL %02d", i)})
	}
	at := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	s.Apply(listing, at)

	st := s.Status(5)
	assert.True(t, st.Checked)
	assert.Equal(t, at, st.CheckedAt)
	assert.Equal(t, 40, st.Current)
	assert.Equal(t, 40, st.TotalVessels)
	require.Len(t, st.Maneuvers, 5)
	assert.Equal(t, "VESSEL 00", st.Maneuvers[0].Name)
	assert.True(t, st.Truncated())

	st = s.Status(0)
	assert.Len(t, st.Maneuvers, DefaultStatusLimit)

	st = s.Status(100)
	assert.Len(t, st.Maneuvers, 40)
	assert.False(t, st.Truncated())
}

func TestStore_ConcurrentReaders(t *testing.T) {
	s := New()
	done := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				st := s.Current()
				// a published state always has its snapshot fully indexed
				for _, m := range st.Snapshot {
					if _, ok := st.Index[m.Key()]; !ok {
						t.Errorf("snapshot entry %q missing from index", m.Name)
						return
					}
				}
			}
		}()
	}

	for i := 0; i < 200; i++ {
		s.Apply([]maneuver.Maneuver{{Name: fmt.Sprintf("V%d", i)}, alpha}, time.Now())
	}
	close(done)
	wg.Wait()
}
