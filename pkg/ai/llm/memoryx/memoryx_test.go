package memoryx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrim(t *testing.T) {
	w := DefaultWindow()

	t.Run("under the limit is untouched", func(t *testing.T) {
		items := seq(20)
		assert.Equal(t, items, Trim(w, items))
	})

	t.Run("over the limit keeps head and tail", func(t *testing.T) {
		items := seq(21)
		got := Trim(w, items)
		assert.Len(t, got, 19)
		assert.Equal(t, 0, got[0])
		assert.Equal(t, 3, got[1])
		assert.Equal(t, 20, got[18])
	})

	t.Run("input is not modified", func(t *testing.T) {
		items := seq(30)
		_ = Trim(w, items)
		assert.Equal(t, seq(30), items)
	})

	t.Run("first entry survives repeated trimming", func(t *testing.T) {
		items := []int{-1}
		for i := range 100 {
			items = Trim(w, append(items, i))
			assert.Equal(t, -1, items[0])
			assert.LessOrEqual(t, len(items), 20)
		}
	})
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
