// Package progress derives the display label for a problem relative to a
// user from their progress-mark memberships.
package progress

import "jobprep/internal/models"

const (
	LabelConfident = "Confident"
	LabelSolved    = "Solved"
	LabelTried     = "Tried"
	LabelUntried   = "Untried"
)

// Project collapses the three membership flags into a single label.
// Precedence is fixed at Confident > Solved > Tried so that an overlap,
// should storage ever produce one, still yields a deterministic answer.
func Project(confident, solved, tried bool) string {
	switch {
	case confident:
		return LabelConfident
	case solved:
		return LabelSolved
	case tried:
		return LabelTried
	default:
		return LabelUntried
	}
}

// Display maps a stored progress label to its display form, Untried when
// no mark exists.
func Display(label models.ProgressLabel) string {
	switch label {
	case models.ProgressConfident:
		return LabelConfident
	case models.ProgressSolved:
		return LabelSolved
	case models.ProgressTried:
		return LabelTried
	default:
		return LabelUntried
	}
}
