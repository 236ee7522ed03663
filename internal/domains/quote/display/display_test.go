package display_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"asteria/internal/domains/quote/display"
	"asteria/internal/domains/quote/model"
)

func TestStore(t *testing.T) {
	t.Run("empty store reports nothing", func(t *testing.T) {
		store := display.NewStore()

		_, ok := store.Latest()

		assert.False(t, ok)
	})

	t.Run("latest returns the last published quote", func(t *testing.T) {
		store := display.NewStore()

		store.Publish(model.Quote{ID: "first"})
		store.Publish(model.Quote{ID: "second"})

		latest, ok := store.Latest()

		assert.True(t, ok)
		assert.Equal(t, "second", latest.ID)
	})

	t.Run("concurrent publishes leave one winner", func(t *testing.T) {
		store := display.NewStore()

		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)

			go func(id int) {
				defer wg.Done()
				store.Publish(model.Quote{ID: string(rune('a' + id%26))})
			}(i)
		}

		wg.Wait()

		latest, ok := store.Latest()

		assert.True(t, ok)
		assert.NotEmpty(t, latest.ID)
	})
}
