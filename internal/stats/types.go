package stats

import "github.com/abhisek/gramiz/internal/catalog"

// SectionStat is the derived accuracy summary for one section. It is
// recomputed from the attempt log on demand and never stored.
type SectionStat struct {
	Section  catalog.Section
	Accuracy float64 // Correct / Total, 0 when Total is 0
	Correct  int
	Total    int
}

// TrendStatus classifies the direction of a section trend.
type TrendStatus string

const (
	TrendImproving        TrendStatus = "improving"
	TrendDeclining        TrendStatus = "declining"
	TrendStable           TrendStatus = "stable"
	TrendInsufficientData TrendStatus = "insufficient_data"
)

// TrendResult compares the two most recent equal-size windows of
// attempts for a section. Accuracies are integer percentages.
type TrendResult struct {
	Section          catalog.Section
	CurrentAccuracy  int
	PreviousAccuracy int
	Improvement      int // signed, CurrentAccuracy - PreviousAccuracy
	Status           TrendStatus
}

// DailyStat aggregates one UTC calendar day of activity. Days with no
// attempts are absent from the series.
type DailyStat struct {
	Date    string // "2006-01-02"
	Total   int
	Correct int
}
