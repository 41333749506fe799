package rooms

import "sort"

type span struct {
	start float64
	end   float64
}

// coveredLength сливает пересекающиеся интервалы и возвращает суммарную
// длину покрытия без повторов.
func coveredLength(spans []span) float64 {
	if len(spans) == 0 {
		return 0
	}

	sorted := make([]span, 0, len(spans))
	for _, s := range spans {
		if s.end < s.start {
			s.start, s.end = s.end, s.start
		}
		sorted = append(sorted, s)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

	total := 0.0
	cur := sorted[0]
	for _, s := range sorted[1:] {
		if s.start <= cur.end {
			if s.end > cur.end {
				cur.end = s.end
			}
			continue
		}
		total += cur.end - cur.start
		cur = s
	}
	total += cur.end - cur.start

	return total
}
