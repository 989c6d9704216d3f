package ports

import (
	"context"

	"sheetboard/domain/briefing"
	"sheetboard/domain/sheet"
)

// BriefingRequest is the input shared by every briefing producer
type BriefingRequest struct {
	Structure   sheet.ExcelStructure
	Table       *sheet.Table // full normalized table, used for column profiles
	Description string
}

// BriefingProducer infers a Briefing from a sheet.
// Implementations: heuristic rules and an external classifier.
type BriefingProducer interface {
	ProduceBriefing(ctx context.Context, req BriefingRequest) (*briefing.Briefing, error)
	Source() briefing.Source
	// SampleSize is how many sample rows the producer wants in the structure
	SampleSize() int
}
