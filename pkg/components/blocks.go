package components

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-cmsfront/pkg/content"
	"github.com/goliatone/go-cmsfront/pkg/richtext"
)

// blockBody renders the rich text of a block, falling back to its markdown.
func blockBody(block content.Block) (string, error) {
	if block.RichText != nil {
		return richtext.HTML(block.RichText), nil
	}
	if strings.TrimSpace(block.Markdown) == "" {
		return "", nil
	}
	html, err := richtext.Markdown(block.Markdown)
	if err != nil {
		return "", fmt.Errorf("components: render markdown: %w", err)
	}
	return html, nil
}

func asBlock(name string, view any) (content.Block, error) {
	block, ok := view.(content.Block)
	if !ok {
		return content.Block{}, fmt.Errorf("components: %s expects content.Block, got %T", name, view)
	}
	return block, nil
}

type textBlockView struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	Background string `json:"background,omitempty"`
}

func textBlockRenderer(buf *bytes.Buffer, view any, data ComponentData) error {
	block, err := asBlock(NameTextBlock, view)
	if err != nil {
		return err
	}
	body, err := blockBody(block)
	if err != nil {
		return err
	}
	title, err := data.RenderComponent(NameTitle, Title{Type: "h3", Text: block.Title})
	if err != nil {
		return err
	}
	return renderTemplate(buf, "components.textBlock", templatePrefix+"blocks/text.tpl", textBlockView{
		Title:      title,
		Body:       body,
		Background: cssToken(block.BackgroundColor),
	}, data)
}

type faqItemView struct {
	Question string `json:"question"`
	Body     string `json:"body"`
}

func faqItemRenderer(buf *bytes.Buffer, view any, data ComponentData) error {
	block, err := asBlock(NameFAQItem, view)
	if err != nil {
		return err
	}
	body, err := blockBody(block)
	if err != nil {
		return err
	}
	return renderTemplate(buf, "components.faqItem", templatePrefix+"blocks/faq_item.tpl", faqItemView{
		Question: block.Title,
		Body:     body,
	}, data)
}

type petitionView struct {
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	Link      string           `json:"link,omitempty"`
	LinkLabel string           `json:"linkLabel"`
	Picture   *content.Picture `json:"picture,omitempty"`
}

func petitionRenderer(buf *bytes.Buffer, view any, data ComponentData) error {
	block, err := asBlock(NamePetition, view)
	if err != nil {
		return err
	}
	body, err := blockBody(block)
	if err != nil {
		return err
	}
	title, err := data.RenderComponent(NameTitle, Title{Type: "h3", Text: block.Title})
	if err != nil {
		return err
	}
	return renderTemplate(buf, "components.petition", templatePrefix+"blocks/petition.tpl", petitionView{
		Title:     title,
		Body:      body,
		Link:      strings.TrimSpace(block.Link),
		LinkLabel: data.Options.T("petition.sign"),
		Picture:   block.Picture,
	}, data)
}

type quoteView struct {
	Body    string           `json:"body"`
	Author  string           `json:"author,omitempty"`
	Picture *content.Picture `json:"picture,omitempty"`
}

func quoteRenderer(buf *bytes.Buffer, view any, data ComponentData) error {
	block, err := asBlock(NameQuote, view)
	if err != nil {
		return err
	}
	body, err := blockBody(block)
	if err != nil {
		return err
	}
	return renderTemplate(buf, "components.quote", templatePrefix+"blocks/quote.tpl", quoteView{
		Body:    body,
		Author:  block.Title,
		Picture: block.Picture,
	}, data)
}

type newsPostView struct {
	Title   string `json:"title"`
	Href    string `json:"href"`
	Date    string `json:"date"`
	Summary string `json:"summary,omitempty"`
}

type newsListView struct {
	Kind     string         `json:"kind"`
	ReadMore string         `json:"readMore"`
	Empty    string         `json:"empty"`
	Posts    []newsPostView `json:"posts"`
}

// newsListRenderer lists news posts newest first. limit <= 0 lists every post.
func newsListRenderer(kind string, limit int) Renderer {
	return func(buf *bytes.Buffer, view any, data ComponentData) error {
		if data.News == nil {
			return nil
		}
		locale := data.Options.Locale
		posts := data.News.News(locale, limit)
		items := make([]newsPostView, 0, len(posts))
		for _, post := range posts {
			date := ""
			if !post.Date.IsZero() {
				date = post.Date.UTC().Format(time.RFC3339)
			}
			items = append(items, newsPostView{
				Title:   post.Title,
				Href:    content.NewsPath(locale, post.Slug),
				Date:    date,
				Summary: post.Summary,
			})
		}
		return renderTemplate(buf, "components.newsList", templatePrefix+"blocks/news_list.tpl", newsListView{
			Kind:     kind,
			ReadMore: data.Options.T("news.readMore"),
			Empty:    data.Options.T("news.empty"),
			Posts:    items,
		}, data)
	}
}
