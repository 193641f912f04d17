// Package carousel holds the slide rotation and geometry rules of the quotes
// carousel. The browser script embedded by the components package applies
// the same rules on a timer.
package carousel

import (
	"time"

	"github.com/goliatone/go-cmsfront/pkg/content"
	"github.com/goliatone/go-cmsfront/pkg/richtext"
)

// DefaultInterval is the auto-advance period.
const DefaultInterval = 5 * time.Second

// ScreenSize names a responsive breakpoint.
type ScreenSize string

const (
	SizeSmall  ScreenSize = "sm"
	SizeMedium ScreenSize = "md"
	SizeLarge  ScreenSize = "lg"
)

// Sizes lists the breakpoints from narrowest to widest.
var Sizes = []ScreenSize{SizeSmall, SizeMedium, SizeLarge}

// Geometry is the slide box for one breakpoint, in pixels.
type Geometry struct {
	Width       int `json:"width"`
	MarginRight int `json:"marginRight"`
}

var geometry = map[ScreenSize]Geometry{
	SizeSmall:  {Width: 310, MarginRight: 10},
	SizeMedium: {Width: 530, MarginRight: 24},
	SizeLarge:  {Width: 530, MarginRight: 24},
}

// GeometryFor returns the slide geometry; unknown sizes use the small one.
func GeometryFor(size ScreenSize) Geometry {
	if g, ok := geometry[size]; ok {
		return g
	}
	return geometry[SizeSmall]
}

// Next returns the slide shown after current. It wraps to 0 after the last
// slide and returns 0 when there are no slides.
func Next(current, count int) int {
	if count <= 0 {
		return 0
	}
	next := (current + 1) % count
	if next < 0 {
		next += count
	}
	return next
}

// Offset is how far the slide track is shifted left to show slide index.
func Offset(size ScreenSize, index int) int {
	if index <= 0 {
		return 0
	}
	g := GeometryFor(size)
	return index * (g.Width + g.MarginRight)
}

// Slide is one quote.
type Slide struct {
	Index           int                `json:"index"`
	RichText        *richtext.Document `json:"richText,omitempty"`
	Author          string             `json:"author"`
	BackgroundColor string             `json:"backgroundColor,omitempty"`
	Picture         *content.Picture   `json:"picture,omitempty"`
	Offsets         map[ScreenSize]int `json:"offsets"`
}

// Model is the view of a quotes carousel container.
type Model struct {
	Title           string                  `json:"title"`
	BackgroundColor string                  `json:"backgroundColor,omitempty"`
	Slides          []Slide                 `json:"slides"`
	IntervalMS      int64                   `json:"intervalMs"`
	Geometry        map[ScreenSize]Geometry `json:"geometry"`
}

// FromContainer builds the carousel model. Every block becomes a slide,
// whatever its type, so a misconfigured container still rotates.
func FromContainer(c content.Container) Model {
	model := Model{
		Title:           c.Title,
		BackgroundColor: c.BackgroundColor,
		Slides:          make([]Slide, 0, len(c.Blocks)),
		IntervalMS:      DefaultInterval.Milliseconds(),
		Geometry:        make(map[ScreenSize]Geometry, len(Sizes)),
	}
	for _, size := range Sizes {
		model.Geometry[size] = GeometryFor(size)
	}
	for i, block := range c.Blocks {
		slide := Slide{
			Index:           i,
			RichText:        block.RichText,
			Author:          block.Title,
			BackgroundColor: block.BackgroundColor,
			Picture:         block.Picture,
			Offsets:         make(map[ScreenSize]int, len(Sizes)),
		}
		for _, size := range Sizes {
			slide.Offsets[size] = Offset(size, i)
		}
		model.Slides = append(model.Slides, slide)
	}
	return model
}
