package viewstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_DropView(t *testing.T) {
	reg := NewRegistry()
	store := New[counter]()
	store.Mount(Key("v1", "byte"), counter{})
	store.Mount(Key("v2", "byte"), counter{})

	var dropped []string
	reg.Register(store)
	reg.Register(DropperFunc(func(viewID string) { dropped = append(dropped, viewID) }))

	reg.DropView("v1")
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, []string{"v1"}, dropped)

	reg.DropView("")
	assert.Equal(t, []string{"v1"}, dropped)
}
