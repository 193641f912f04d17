package richtext

import (
	"html"
	"strings"
)

// HTML renders the document and sanitizes the result. A nil document renders
// as an empty string.
func HTML(doc *Document) string {
	if doc == nil {
		return ""
	}
	var b strings.Builder
	for _, node := range doc.Content {
		writeNode(&b, node)
	}
	return Sanitize(b.String())
}

func writeNode(b *strings.Builder, n Node) {
	switch n.NodeType {
	case NodeText:
		writeText(b, n)
	case NodeParagraph:
		wrap(b, "p", n)
	case NodeHeading1, NodeHeading2, NodeHeading3, NodeHeading4, NodeHeading5, NodeHeading6:
		wrap(b, "h"+strings.TrimPrefix(n.NodeType, "heading-"), n)
	case NodeUnorderedList:
		wrap(b, "ul", n)
	case NodeOrderedList:
		wrap(b, "ol", n)
	case NodeListItem:
		wrap(b, "li", n)
	case NodeBlockquote:
		wrap(b, "blockquote", n)
	case NodeHR:
		b.WriteString("<hr/>")
	case NodeHyperlink:
		b.WriteString(`<a href="`)
		b.WriteString(html.EscapeString(n.dataString("uri")))
		b.WriteString(`">`)
		writeChildren(b, n)
		b.WriteString("</a>")
	case NodeEmbeddedAsset:
		url := n.dataString("url")
		if url == "" {
			return
		}
		b.WriteString(`<img src="`)
		b.WriteString(html.EscapeString(url))
		b.WriteString(`" alt="`)
		b.WriteString(html.EscapeString(n.dataString("title")))
		b.WriteString(`" loading="lazy"/>`)
	default:
		// unknown node types still contribute their children
		writeChildren(b, n)
	}
}

func wrap(b *strings.Builder, tag string, n Node) {
	b.WriteString("<")
	b.WriteString(tag)
	b.WriteString(">")
	writeChildren(b, n)
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">")
}

func writeChildren(b *strings.Builder, n Node) {
	for _, child := range n.Content {
		writeNode(b, child)
	}
}

func writeText(b *strings.Builder, n Node) {
	var closers []string
	for _, mark := range n.Marks {
		tag := markTag(mark.Type)
		if tag == "" {
			continue
		}
		b.WriteString("<" + tag + ">")
		closers = append(closers, "</"+tag+">")
	}
	b.WriteString(strings.ReplaceAll(html.EscapeString(n.Value), "\n", "<br/>"))
	for i := len(closers) - 1; i >= 0; i-- {
		b.WriteString(closers[i])
	}
}

func markTag(mark string) string {
	switch mark {
	case MarkBold:
		return "strong"
	case MarkItalic:
		return "em"
	case MarkUnderline:
		return "u"
	case MarkCode:
		return "code"
	default:
		return ""
	}
}
