package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type prefs struct {
	Sort  string
	Pages int
}

func TestStore_GetSet(t *testing.T) {
	s := New(prefs{Sort: "relevance"})

	assert.Equal(t, "relevance", s.Get().Sort)

	s.Set(prefs{Sort: "date"})
	assert.Equal(t, "date", s.Get().Sort)
}

func TestStore_SubscribeReceivesChanges(t *testing.T) {
	s := New(prefs{})
	var got []string

	unsubscribe := s.Subscribe(func(p prefs) {
		got = append(got, p.Sort)
	})
	defer unsubscribe()

	s.Set(prefs{Sort: "trust"})
	s.Update(func(p prefs) prefs {
		p.Sort = "name"
		return p
	})

	assert.Equal(t, []string{"trust", "name"}, got)
}

func TestStore_ListenersRunInOrder(t *testing.T) {
	s := New(0)
	var order []string

	s.Subscribe(func(int) { order = append(order, "first") })
	s.Subscribe(func(int) { order = append(order, "second") })

	s.Set(1)

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestStore_Unsubscribe(t *testing.T) {
	s := New(0)
	calls := 0

	unsubscribe := s.Subscribe(func(int) { calls++ })
	require.Equal(t, 1, s.Len())

	s.Set(1)
	unsubscribe()
	unsubscribe()
	s.Set(2)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.Len())
}

func TestStore_UnsubscribeKeepsOthers(t *testing.T) {
	s := New(0)
	var a, b, c int

	s.Subscribe(func(v int) { a = v })
	unsubscribeB := s.Subscribe(func(v int) { b = v })
	s.Subscribe(func(v int) { c = v })

	unsubscribeB()
	s.Set(9)

	assert.Equal(t, 9, a)
	assert.Equal(t, 0, b)
	assert.Equal(t, 9, c)
}

func TestStore_ListenerMayReadState(t *testing.T) {
	s := New(prefs{})
	var seen prefs

	s.Subscribe(func(prefs) {
		seen = s.Get()
	})
	s.Set(prefs{Sort: "date", Pages: 2})

	assert.Equal(t, prefs{Sort: "date", Pages: 2}, seen)
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	s := New(prefs{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update(func(p prefs) prefs {
				p.Pages++
				return p
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Get().Pages)
}

func TestStore_ConcurrentSetsNotifyInOrder(t *testing.T) {
	s := New(0)

	var (
		mu   sync.Mutex
		last int
	)
	s.Subscribe(func(v int) {
		mu.Lock()
		last = v
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 1; i <= 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Set(i)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, s.Get(), last, "last notification matches the stored state")
}
