package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventWidgetOpened    EventType = "WidgetOpened"
	EventSearchStarted   EventType = "SearchStarted"
	EventSearchCompleted EventType = "SearchCompleted"
	EventImageSelected   EventType = "ImageSelected"
	EventColorExtracted  EventType = "ColorExtracted"
	EventColorApplied    EventType = "ColorApplied"
	EventError           EventType = "Error"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// WidgetOpenedEvent is emitted when the picker is opened with host values
type WidgetOpenedEvent struct {
	Brand      string
	ColorCode  string
	AutoSearch bool
}

func (e WidgetOpenedEvent) Type() EventType { return EventWidgetOpened }

// SearchStartedEvent is emitted when a search request goes out
type SearchStartedEvent struct {
	Query SearchQuery
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchCompletedEvent is emitted when a search returns images, or none
type SearchCompletedEvent struct {
	Brand     string
	ColorCode string
	Found     int
	Excluded  int // size of the excluded set after this search
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// ImageSelectedEvent is emitted when the user picks a result
type ImageSelectedEvent struct {
	URL string
}

func (e ImageSelectedEvent) Type() EventType { return EventImageSelected }

// ColorExtractedEvent is emitted when the backend returned a color for the current selection
type ColorExtractedEvent struct {
	ImageURL string
	Color    ExtractedColor
}

func (e ColorExtractedEvent) Type() EventType { return EventColorExtracted }

// ColorAppliedEvent is emitted once the color has been relayed to the opener
type ColorAppliedEvent struct {
	Message ColorMessage
}

func (e ColorAppliedEvent) Type() EventType { return EventColorApplied }

// ErrorEvent is emitted when an operation fails
type ErrorEvent struct {
	Op      string
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
