package session

import (
	"sync"
	"testing"

	"github.com/pg56714/line-dine-mapper/internal/restaurant"
)

func TestManagerLazyCreation(t *testing.T) {
	m := NewManager()
	s := m.Snapshot("U1")
	if s.Stage != StageIdle {
		t.Fatalf("new session stage = %s, want %s", s.Stage, StageIdle)
	}
	if s.Flow != FlowNone {
		t.Fatalf("new session flow = %s, want %s", s.Flow, FlowNone)
	}
}

func TestManagerMutationsPersistPerUser(t *testing.T) {
	m := NewManager()
	err := m.Do("U1", func(s *Session) error {
		s.Stage = StageAwaitingLocation
		s.Flow = FlowSearch
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	if got := m.Snapshot("U1").Stage; got != StageAwaitingLocation {
		t.Fatalf("stage = %s, want %s", got, StageAwaitingLocation)
	}
	// Another user is untouched.
	if got := m.Snapshot("U2").Stage; got != StageIdle {
		t.Fatalf("other user stage = %s, want %s", got, StageIdle)
	}
}

func TestManagerSerializesPerUser(t *testing.T) {
	m := NewManager()
	const iterations = 500

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				_ = m.Do("U1", func(s *Session) error {
					s.Cursor++
					return nil
				})
			}
		}()
	}
	wg.Wait()

	if got := m.Snapshot("U1").Cursor; got != 4*iterations {
		t.Fatalf("cursor = %d, want %d (lost updates)", got, 4*iterations)
	}
}

func TestResetClearsEverything(t *testing.T) {
	s := Session{
		Stage:        StageBrowsingResults,
		Flow:         FlowSearch,
		Location:     &restaurant.Coordinates{Lat: 25.05, Lng: 121.54},
		TopCount:     10,
		Radius:       1000,
		Candidates:   []restaurant.Restaurant{{Name: "a"}},
		Cursor:       4,
		LastSelected: &restaurant.Restaurant{Name: "a"},
	}
	s.Reset()

	if s.Stage != StageIdle || s.Flow != FlowNone {
		t.Fatalf("reset left stage=%s flow=%s", s.Stage, s.Flow)
	}
	if s.Location != nil || s.TopCount != 0 || s.Radius != 0 {
		t.Fatal("reset left search parameters")
	}
	if s.Candidates != nil || s.Cursor != 0 {
		t.Fatal("reset left candidates")
	}
	if s.LastSelected != nil {
		t.Fatal("reset left a selection")
	}
}
