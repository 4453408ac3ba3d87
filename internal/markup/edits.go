package markup

import (
	"errors"
	"fmt"
	"sort"
)

// Edit is a byte-range replacement of src[Start:End]. A zero-width edit is an insertion.
type Edit struct {
	Start       int
	End         int
	Replacement string
}

// ApplyEdits applies non-overlapping edits that refer to offsets in the original source.
// Edits are applied from the end of the text toward the beginning so offsets stay valid.
func ApplyEdits(source string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return source, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start == sorted[j].Start {
			return sorted[i].End > sorted[j].End
		}
		return sorted[i].Start > sorted[j].Start
	})

	for i, e := range sorted {
		if e.Start < 0 || e.End < e.Start || e.End > len(source) {
			return "", fmt.Errorf("invalid edit[%d]: range %d..%d out of bounds", i, e.Start, e.End)
		}
		if i > 0 && e.End > sorted[i-1].Start {
			return "", errors.New("invalid edits: overlapping ranges")
		}
	}

	out := source
	for _, e := range sorted {
		out = out[:e.Start] + e.Replacement + out[e.End:]
	}
	return out, nil
}
