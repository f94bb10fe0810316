package raycast

// SortSprites orders dist descending, farthest first, permuting order alongside it.
// Comb sort, shrinking the gap by 1.3 and jumping 9 and 10 to 11.
func SortSprites(order []int, dist []float64) {
	amount := min(len(order), len(dist))
	gap := amount
	swapped := false
	for gap > 1 || swapped {
		gap = (gap * 10) / 13
		if gap == 9 || gap == 10 {
			gap = 11
		}
		if gap < 1 {
			gap = 1
		}
		swapped = false
		for i := 0; i < amount-gap; i++ {
			j := i + gap
			if dist[i] < dist[j] {
				dist[i], dist[j] = dist[j], dist[i]
				order[i], order[j] = order[j], order[i]
				swapped = true
			}
		}
	}
}
