package domain

import "fmt"

// PlaceholderHex is shown in the hex field before any color has been extracted
const PlaceholderHex = "-"

// MessageTypeColorExtracted is the type tag of the message relayed to the opener
const MessageTypeColorExtracted = "colorExtraido"

// StatusLevel is the severity of a status message
type StatusLevel string

const (
	LevelInfo    StatusLevel = "info"
	LevelSuccess StatusLevel = "success"
	LevelWarning StatusLevel = "warning"
	LevelDanger  StatusLevel = "danger"
)

// Status is the single-slot status message shown to the user
type Status struct {
	Text  string
	Level StatusLevel
}

// SearchQuery is what the widget sends to the image search endpoint
type SearchQuery struct {
	Brand        string
	ColorCode    string
	ExcludedURLs []string // every URL already shown this session
}

// ImageResult is one image returned by a search
type ImageResult struct {
	URL string `json:"url"`
}

// ExtractedColor is the dominant color of an image
type ExtractedColor struct {
	Hex string
	RGB [3]int
}

// RGBText renders the color as RGB(r, g, b)
func (c ExtractedColor) RGBText() string {
	return fmt.Sprintf("RGB(%d, %d, %d)", c.RGB[0], c.RGB[1], c.RGB[2])
}

// ColorMessage is the payload relayed to the opener once the user applies a color
type ColorMessage struct {
	Type     string `json:"type"`
	HexColor string `json:"hexColor"`
	ImageURL string `json:"imageUrl"`
}

// NewColorMessage builds an opener message for the given color and image
func NewColorMessage(hex, imageURL string) ColorMessage {
	return ColorMessage{
		Type:     MessageTypeColorExtracted,
		HexColor: hex,
		ImageURL: imageURL,
	}
}
