package widget

import (
	"paintpick/internal/api"
	"paintpick/internal/domain"
)

// AutoSearchMsg fires once the open delay has elapsed
type AutoSearchMsg struct{}

// SearchResultMsg carries the outcome of a search request
type SearchResultMsg struct {
	Query   domain.SearchQuery
	Outcome api.SearchOutcome
	Err     error
}

// ExtractResultMsg carries the outcome of an extraction request. Seq identifies the
// selection the request was issued for.
type ExtractResultMsg struct {
	Seq     uint64
	URL     string
	Outcome api.ExtractOutcome
	Err     error
}

// ApplyResultMsg reports whether the opener received the color
type ApplyResultMsg struct {
	Message   domain.ColorMessage
	Delivered bool
	Err       error
}

// CloseMsg asks the program to close after a successful apply
type CloseMsg struct{}
