package scene

import "github.com/ivlev/scenereel/internal/timeline"

// StatusLabel is a step function over an ordered range table. Later ranges win
// where ranges overlap.
type StatusLabel struct {
	table timeline.StatusTable
}

func NewStatusLabel(table timeline.StatusTable) StatusLabel {
	ranges := make([]timeline.StatusRange, len(table.Ranges))
	copy(ranges, table.Ranges)
	table.Ranges = ranges
	return StatusLabel{table: table}
}

// At returns the label shown at frame.
func (s StatusLabel) At(frame int) string {
	label := s.table.Default
	for _, r := range s.table.Ranges {
		if frame < r.From {
			continue
		}
		if r.To > r.From && frame >= r.To {
			continue
		}
		label = r.Label
	}
	return label
}
