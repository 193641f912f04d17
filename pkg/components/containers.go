package components

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/goliatone/go-cmsfront/pkg/carousel"
	"github.com/goliatone/go-cmsfront/pkg/content"
	"github.com/goliatone/go-cmsfront/pkg/richtext"
)

type sectionView struct {
	Kind       string   `json:"kind"`
	Background string   `json:"background,omitempty"`
	Title      string   `json:"title"`
	Blocks     []string `json:"blocks"`
}

// sectionRenderer lays out a titled container whose blocks run through the
// block dispatcher. Only the wrapper class and heading level differ between
// the default, FAQ, and petitions containers.
func sectionRenderer(kind, heading string) Renderer {
	return func(buf *bytes.Buffer, view any, data ComponentData) error {
		container, ok := view.(content.Container)
		if !ok {
			return fmt.Errorf("components: %s container expects content.Container, got %T", kind, view)
		}

		title, err := data.RenderComponent(NameTitle, Title{Type: heading, Text: container.Title})
		if err != nil {
			return err
		}
		blocks := make([]string, 0, len(container.Blocks))
		for _, block := range container.Blocks {
			html, err := data.RenderBlock(block)
			if err != nil {
				return err
			}
			if html != "" {
				blocks = append(blocks, html)
			}
		}

		return renderTemplate(buf, "components.section", templatePrefix+"containers/section.tpl", sectionView{
			Kind:       kind,
			Background: cssToken(container.BackgroundColor),
			Title:      title,
			Blocks:     blocks,
		}, data)
	}
}

type slideView struct {
	Background string           `json:"background,omitempty"`
	Body       string           `json:"body"`
	Author     string           `json:"author,omitempty"`
	Picture    *content.Picture `json:"picture,omitempty"`
}

type carouselView struct {
	Kind       string      `json:"kind"`
	Background string      `json:"background,omitempty"`
	Title      string      `json:"title"`
	Interval   string      `json:"interval"`
	Offsets    string      `json:"offsets"`
	Slides     []slideView `json:"slides"`
}

// quotesCarouselRenderer renders every block as a quote slide: rich text
// body, author picture, and the author line as a small paragraph.
func quotesCarouselRenderer(buf *bytes.Buffer, view any, data ComponentData) error {
	container, ok := view.(content.Container)
	if !ok {
		return fmt.Errorf("components: quotes carousel expects content.Container, got %T", view)
	}
	model := carousel.FromContainer(container)

	title, err := data.RenderComponent(NameTitle, Title{Type: "h3", Text: model.Title})
	if err != nil {
		return err
	}
	slides := make([]slideView, 0, len(model.Slides))
	offsets := make([]map[carousel.ScreenSize]int, 0, len(model.Slides))
	for _, slide := range model.Slides {
		author := ""
		if slide.Author != "" {
			if author, err = data.RenderComponent(NameParagraph, Paragraph{Type: "small", Text: slide.Author}); err != nil {
				return err
			}
		}
		slides = append(slides, slideView{
			Background: cssToken(slide.BackgroundColor),
			Body:       richtext.HTML(slide.RichText),
			Author:     author,
			Picture:    slide.Picture,
		})
		offsets = append(offsets, slide.Offsets)
	}

	return renderCarousel(buf, "quotes", model, title, slides, offsets, data)
}

// carouselRenderer rotates arbitrary blocks, each rendered through the block
// dispatcher, with the same timing as the quotes carousel.
func carouselRenderer(buf *bytes.Buffer, view any, data ComponentData) error {
	container, ok := view.(content.Container)
	if !ok {
		return fmt.Errorf("components: carousel expects content.Container, got %T", view)
	}
	model := carousel.FromContainer(container)

	title, err := data.RenderComponent(NameTitle, Title{Type: "h3", Text: model.Title})
	if err != nil {
		return err
	}
	slides := make([]slideView, 0, len(container.Blocks))
	offsets := make([]map[carousel.ScreenSize]int, 0, len(container.Blocks))
	for i, block := range container.Blocks {
		html, err := data.RenderBlock(block)
		if err != nil {
			return err
		}
		slides = append(slides, slideView{
			Background: cssToken(block.BackgroundColor),
			Body:       html,
			Picture:    block.Picture,
		})
		offsets = append(offsets, model.Slides[i].Offsets)
	}

	return renderCarousel(buf, "blocks", model, title, slides, offsets, data)
}

func renderCarousel(buf *bytes.Buffer, kind string, model carousel.Model, title string, slides []slideView, offsets []map[carousel.ScreenSize]int, data ComponentData) error {
	rawOffsets, err := json.Marshal(offsets)
	if err != nil {
		return fmt.Errorf("components: encode carousel offsets: %w", err)
	}
	// numbers are passed as strings; view data is JSON decoded into float64
	// before it reaches the template
	return renderTemplate(buf, "components.carousel", templatePrefix+"containers/carousel.tpl", carouselView{
		Kind:       kind,
		Background: cssToken(model.BackgroundColor),
		Title:      title,
		Interval:   strconv.FormatInt(model.IntervalMS, 10),
		Offsets:    string(rawOffsets),
		Slides:     slides,
	}, data)
}
