package fitzdoc

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/figura/model"
)

// defaultFontSize stands in when a paragraph carries no font-size
// style, matching the size MuPDF assumes for unstyled text.
const defaultFontSize = 12.0

// parseBlocks walks MuPDF's structured-text HTML and produces one text
// block per paragraph and one image block per img element. The HTML
// positions content absolutely in points, so left and top come straight
// from the style; paragraph width and height are estimated from the
// text length and font size because the rendition records no right or
// bottom edge.
func parseBlocks(markup string) (texts, images []model.Block, err error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing html: %w", err)
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "p":
				if b, ok := textBlock(n, len(texts)); ok {
					texts = append(texts, b)
				}
			case "img":
				if b, ok := imageBlock(n, len(images)); ok {
					images = append(images, b)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return texts, images, nil
}

// textBlock builds a text block from a paragraph node. Paragraphs with
// no position or no visible text are skipped.
func textBlock(n *html.Node, index int) (model.Block, bool) {
	style := parseStyle(attr(n, "style"))
	left, okL := ptValue(style["left"])
	top, okT := ptValue(style["top"])
	if !okL || !okT {
		return model.Block{}, false
	}

	text := norm.NFC.String(collectText(n))
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return model.Block{}, false
	}

	size := maxFontSize(n)
	if size <= 0 {
		size = defaultFontSize
	}
	height, ok := ptValue(style["line-height"])
	if !ok || height <= 0 {
		height = size * 1.2
	}
	width := float64(utf8.RuneCountInString(text)) * size * 0.5

	return model.Block{
		ID:   fmt.Sprintf("T%d", index),
		Type: model.BlockText,
		Rect: model.NewRect(left, top, left+width, top+height),
		Text: text,
	}, true
}

// imageBlock builds an image block from an img node. Position comes
// from the style, extent from the width and height attributes.
func imageBlock(n *html.Node, index int) (model.Block, bool) {
	style := parseStyle(attr(n, "style"))
	left, okL := ptValue(style["left"])
	top, okT := ptValue(style["top"])
	if !okL || !okT {
		return model.Block{}, false
	}

	width, okW := ptValue(attr(n, "width"))
	height, okH := ptValue(attr(n, "height"))
	if !okW || !okH || width <= 0 || height <= 0 {
		return model.Block{}, false
	}

	return model.Block{
		ID:   fmt.Sprintf("I%d", index),
		Type: model.BlockImage,
		Rect: model.NewRect(left, top, left+width, top+height),
	}, true
}

// collectText concatenates every text node under n.
func collectText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// maxFontSize returns the largest font-size styled on n or any
// descendant, or 0 when none is present.
func maxFontSize(n *html.Node) float64 {
	var max float64
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if size, ok := ptValue(parseStyle(attr(n, "style"))["font-size"]); ok && size > max {
				max = size
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return max
}

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// parseStyle splits an inline CSS declaration list into a
// property-value map.
func parseStyle(style string) map[string]string {
	props := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		key, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		props[strings.TrimSpace(key)] = strings.TrimSpace(val)
	}
	return props
}

// ptValue parses a CSS length, accepting a bare number or a pt-suffixed
// one.
func ptValue(v string) (float64, bool) {
	v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "pt"))
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
