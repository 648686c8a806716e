package trading

// history is a bounded price window for one pair. Oldest samples are
// evicted once the window is full.
type history struct {
	prices []float64
	start  int // index of oldest sample
	count  int
}

func newHistory(size int) *history {
	return &history{prices: make([]float64, size)}
}

// push appends a price, evicting the oldest sample when full.
func (h *history) push(price float64) {
	idx := (h.start + h.count) % len(h.prices)
	h.prices[idx] = price
	if h.count < len(h.prices) {
		h.count++
		return
	}
	h.start = (h.start + 1) % len(h.prices)
}

// last returns the most recent price. ok is false when empty.
func (h *history) last() (float64, bool) {
	if h.count == 0 {
		return 0, false
	}
	idx := (h.start + h.count - 1) % len(h.prices)
	return h.prices[idx], true
}

// len returns the number of retained samples.
func (h *history) len() int {
	return h.count
}
