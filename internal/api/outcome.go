package api

import "paintpick/internal/domain"

// SearchOutcome is the decoded result of a search: SearchFound, SearchEmpty or SearchFailed
type SearchOutcome interface {
	searchOutcome()
}

// SearchFound carries the images to display, in display order
type SearchFound struct {
	Images []domain.ImageResult
}

// SearchEmpty means the backend found nothing new
type SearchEmpty struct{}

// SearchFailed carries an application error reported by the backend
type SearchFailed struct {
	Message string
}

func (SearchFound) searchOutcome()  {}
func (SearchEmpty) searchOutcome()  {}
func (SearchFailed) searchOutcome() {}

// ExtractOutcome is the decoded result of a color extraction: ExtractSucceeded or ExtractFailed
type ExtractOutcome interface {
	extractOutcome()
}

// ExtractSucceeded carries the extracted color
type ExtractSucceeded struct {
	Color domain.ExtractedColor
}

// ExtractFailed carries the backend's error text
type ExtractFailed struct {
	Message string
}

func (ExtractSucceeded) extractOutcome() {}
func (ExtractFailed) extractOutcome()    {}
