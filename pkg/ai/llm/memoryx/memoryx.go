// Package memoryx holds the short-term history policy of a conversation.
package memoryx

// Window bounds a history while pinning its first entry, the system prompt.
// Once the history grows past Max entries it is cut to the first entry plus
// the Keep most recent ones.
type Window struct {
	Max  int
	Keep int
}

func DefaultWindow() Window {
	return Window{Max: 20, Keep: 18}
}

func (w Window) Exceeded(n int) bool {
	return n > w.Max
}

// Trim applies the window to items. The input slice is not modified.
func Trim[T any](w Window, items []T) []T {
	if !w.Exceeded(len(items)) || len(items) == 0 {
		return items
	}
	keep := min(w.Keep, len(items)-1)
	out := make([]T, 0, keep+1)
	out = append(out, items[0])
	out = append(out, items[len(items)-keep:]...)
	return out
}
