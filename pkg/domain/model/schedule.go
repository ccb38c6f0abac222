package model

import "time"

// NextReviewDate derives the next review date from the identification date
// and the current score. Higher bands review sooner. The offset is anchored
// to identifiedAt, not the time of computation, so recomputing with
// unchanged inputs always yields the same date.
func NextReviewDate(identifiedAt time.Time, score int) time.Time {
	var months int
	switch {
	case score > 20:
		months = 3
	case score > 12:
		months = 6
	case score > 6:
		months = 9
	default:
		months = 12
	}
	return identifiedAt.AddDate(0, months, 0)
}
