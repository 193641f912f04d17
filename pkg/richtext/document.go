package richtext

// Node types understood by the HTML renderer.
const (
	NodeDocument      = "document"
	NodeParagraph     = "paragraph"
	NodeHeading1      = "heading-1"
	NodeHeading2      = "heading-2"
	NodeHeading3      = "heading-3"
	NodeHeading4      = "heading-4"
	NodeHeading5      = "heading-5"
	NodeHeading6      = "heading-6"
	NodeUnorderedList = "unordered-list"
	NodeOrderedList   = "ordered-list"
	NodeListItem      = "list-item"
	NodeBlockquote    = "blockquote"
	NodeHR            = "hr"
	NodeHyperlink     = "hyperlink"
	NodeEmbeddedAsset = "embedded-asset-block"
	NodeText          = "text"
)

// Mark types applied to text nodes.
const (
	MarkBold      = "bold"
	MarkItalic    = "italic"
	MarkUnderline = "underline"
	MarkCode      = "code"
)

// Document is the root of a rich-text tree.
type Document struct {
	NodeType string `json:"nodeType" yaml:"nodeType"`
	Content  []Node `json:"content,omitempty" yaml:"content,omitempty"`
}

// Node is a block, inline, or text node.
type Node struct {
	NodeType string         `json:"nodeType" yaml:"nodeType"`
	Value    string         `json:"value,omitempty" yaml:"value,omitempty"`
	Marks    []Mark         `json:"marks,omitempty" yaml:"marks,omitempty"`
	Data     map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
	Content  []Node         `json:"content,omitempty" yaml:"content,omitempty"`
}

// Mark decorates a text node.
type Mark struct {
	Type string `json:"type" yaml:"type"`
}

// PlainText flattens the document into its text values, separating blocks
// with a single space. Used for SEO fallbacks and terminal output.
func (d *Document) PlainText() string {
	if d == nil {
		return ""
	}
	var out []byte
	for _, node := range d.Content {
		text := node.plainText()
		if text == "" {
			continue
		}
		if len(out) > 0 {
			out = append(out, ' ')
		}
		out = append(out, text...)
	}
	return string(out)
}

func (n Node) plainText() string {
	if n.NodeType == NodeText {
		return n.Value
	}
	var out string
	for _, child := range n.Content {
		out += child.plainText()
	}
	return out
}

func (n Node) dataString(key string) string {
	if n.Data == nil {
		return ""
	}
	if value, ok := n.Data[key].(string); ok {
		return value
	}
	return ""
}
