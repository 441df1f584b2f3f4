package queue

// history is an insertion-ordered set of texts that evicts the oldest
// entry once it holds more than capacity members.
type history struct {
	capacity int
	order    []string
	members  map[string]struct{}
}

func newHistory(capacity int) *history {
	return &history{
		capacity: capacity,
		members:  make(map[string]struct{}, capacity+1),
	}
}

// add records text. Re-adding a member leaves its position unchanged.
func (h *history) add(text string) {
	if _, ok := h.members[text]; ok {
		return
	}
	h.members[text] = struct{}{}
	h.order = append(h.order, text)
	for len(h.order) > h.capacity {
		delete(h.members, h.order[0])
		h.order = h.order[1:]
	}
}

func (h *history) has(text string) bool {
	_, ok := h.members[text]
	return ok
}

func (h *history) list() []string {
	out := make([]string, len(h.order))
	copy(out, h.order)
	return out
}
