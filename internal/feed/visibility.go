package feed

// Extent is a card's vertical span in the scroll coordinate space.
type Extent struct {
	Top    int
	Height int
}

// MostVisible returns the index of the card with the largest overlap
// with the viewport, -1 when nothing overlaps. Earlier cards win ties,
// so the answer is stable while two cards split the viewport evenly
// during a scroll. Pure function of the inputs; callers decide when to
// query it (the scroll loop) and what to do with the answer (autoplay,
// prefetch).
func MostVisible(viewportTop, viewportHeight int, cards []Extent) int {
	best := -1
	bestOverlap := 0
	viewportBottom := viewportTop + viewportHeight

	for i, card := range cards {
		top := card.Top
		bottom := card.Top + card.Height
		if top < viewportTop {
			top = viewportTop
		}
		if bottom > viewportBottom {
			bottom = viewportBottom
		}
		overlap := bottom - top
		if overlap > bestOverlap {
			bestOverlap = overlap
			best = i
		}
	}
	return best
}
