// Package models contains the domain types persisted by the record store.
package models

import "time"

// StoolColor is one of the fixed color categories a user can pick. Free-text
// values outside the fixed set are accepted and stored verbatim ("other").
type StoolColor string

const (
	ColorNormalBrown  StoolColor = "normal_brown"
	ColorGreenish     StoolColor = "greenish"
	ColorYellowOrange StoolColor = "yellow_orange"
	ColorGreasyGray   StoolColor = "greasy_gray"
	ColorBlackTarry   StoolColor = "black_tarry"
	ColorRedStreaks   StoolColor = "red_streaks"
)

// KnownColors lists the fixed categories in display order.
var KnownColors = []StoolColor{
	ColorNormalBrown,
	ColorGreenish,
	ColorYellowOrange,
	ColorGreasyGray,
	ColorBlackTarry,
	ColorRedStreaks,
}

// Known reports whether the color is one of the fixed categories.
func (c StoolColor) Known() bool {
	for _, k := range KnownColors {
		if c == k {
			return true
		}
	}
	return false
}

// ConsistencyLabels maps the 1-5 consistency score to its user-facing label.
var ConsistencyLabels = map[int]string{
	1: "Very Loose",
	2: "Loose",
	3: "Normal",
	4: "Firm",
	5: "Hard",
}

// PooLog is one logging event. ID, PhotoURI and CreatedAt are immutable after
// creation; only the manual-observation fields may change via edit.
type PooLog struct {
	ID               string
	ConsistencyScore int
	Color            StoolColor
	MucusPresent     bool
	BloodVisible     bool
	WormsVisible     bool
	Notes            string
	PhotoURI         string
	CreatedAt        time.Time

	// Analysis is attached on reads when one exists. Not a stored column.
	Analysis *AIAnalysis
}

// LogDraft holds the manual-observation fields of a log before it is
// committed. The save orchestrator carries a draft through upload, analysis
// and the retake diversion without writing anything.
type LogDraft struct {
	ConsistencyScore int
	Color            StoolColor
	MucusPresent     bool
	BloodVisible     bool
	WormsVisible     bool
	Notes            string
	PhotoURI         string
}
