package tracker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"liyu1981.xyz/consumable-wear-service/pkg/wear"
)

func TestSessionStores(t *testing.T) {
	s := NewSessionStores()
	key := wear.PartKey{Company: "Acme", Code: "RF-1", Part: "Blade"}

	a := s.Get("a")
	assert.Same(t, a, s.Get("a"))
	assert.NotSame(t, a, s.Get("b"))
	assert.Same(t, s.Get(""), s.Get("  default "))

	assert.True(t, wear.NewDeduplicator(a).ShouldNotify(key, wear.ImminentFailure))
	assert.True(t, s.Get("a").Active(key))
	assert.False(t, s.Get("b").Active(key))

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Drop("a"))
	assert.False(t, s.Drop("a"))
	assert.False(t, s.Get("a").Active(key))
}

func TestSessionStores_Concurrency(t *testing.T) {
	s := NewSessionStores()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Get("shared")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, s.Len())
}
