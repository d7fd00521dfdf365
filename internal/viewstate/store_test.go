package viewstate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/clubportal/internal/domain"
)

type counter struct {
	N int
}

func TestStore(t *testing.T) {
	t.Run("mount and get", func(t *testing.T) {
		s := New[counter]()
		s.Mount(Key("v1", "byte"), counter{N: 1})

		got, ok := s.Get(Key("v1", "byte"))
		require.True(t, ok)
		assert.Equal(t, 1, got.N)

		_, ok = s.Get(Key("v1", "events"))
		assert.False(t, ok)
	})

	t.Run("remount tears down the previous view", func(t *testing.T) {
		var torn []string
		s := New[counter](func(key string) { torn = append(torn, key) })

		s.Mount("k", counter{N: 1})
		assert.Empty(t, torn)
		s.Mount("k", counter{N: 2})
		assert.Equal(t, []string{"k"}, torn)

		got, _ := s.Get("k")
		assert.Equal(t, 2, got.N)
	})

	t.Run("update missing view", func(t *testing.T) {
		s := New[counter]()
		_, err := s.Update("missing", func(c *counter) { c.N++ })
		assert.ErrorIs(t, err, domain.ErrViewNotFound)
	})

	t.Run("get returns a copy", func(t *testing.T) {
		s := New[counter]()
		s.Mount("k", counter{N: 1})
		got, _ := s.Get("k")
		got.N = 99
		again, _ := s.Get("k")
		assert.Equal(t, 1, again.N)
	})

	t.Run("drop view only drops that browser", func(t *testing.T) {
		var mu sync.Mutex
		var torn []string
		s := New[counter](func(key string) {
			mu.Lock()
			torn = append(torn, key)
			mu.Unlock()
		})
		s.Mount(Key("v1", "byte"), counter{})
		s.Mount(Key("v1", "events"), counter{})
		s.Mount(Key("v10", "events"), counter{})

		s.DropView("v1")
		assert.Equal(t, 1, s.Len())
		assert.ElementsMatch(t, []string{"v1:byte", "v1:events"}, torn)
	})

	t.Run("delete", func(t *testing.T) {
		calls := 0
		s := New[counter](func(string) { calls++ })
		s.Mount("k", counter{})
		s.Delete("k")
		s.Delete("k")
		assert.Equal(t, 1, calls)
		assert.Equal(t, 0, s.Len())
	})
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	s := New[counter]()
	s.Mount("k", counter{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Update("k", func(c *counter) { c.N++ })
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, _ := s.Get("k")
	assert.Equal(t, 50, got.N)
}
