package htmlutil

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// the walk functions below are capped so a degenerate document
// can't turn a label lookup into a full-page scan
const defaultWalkLimit = 512

// next node in document order: first child, otherwise the next
// sibling of the closest ancestor that has one
func nextInDocument(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for n != nil {
		if n.NextSibling != nil {
			return n.NextSibling
		}
		n = n.Parent
	}
	return nil
}

// FindFollowing returns the first element node after start in document
// order for which pred returns true, or nil if none is found within the
// walk limit.
func FindFollowing(start *html.Node, pred func(*html.Node) bool) *html.Node {
	if start == nil {
		return nil
	}
	n := nextInDocument(start)
	for i := 0; n != nil && i < defaultWalkLimit; i++ {
		if n.Type == html.ElementNode && pred(n) {
			return n
		}
		n = nextInDocument(n)
	}
	return nil
}

// FindFollowingText returns the trimmed text of the nearest element
// following start that has any extractable text, or "".
func FindFollowingText(start *html.Node) string {
	var found string
	FindFollowing(start, func(n *html.Node) bool {
		text := strings.TrimSpace(GetText(n))
		if text == "" {
			return false
		}
		found = text
		return true
	})
	return found
}

// FindFollowingElement returns the first following element with the
// given tag name (lowercase), e.g. "table".
func FindFollowingElement(start *html.Node, name string) *html.Node {
	return FindFollowing(start, func(n *html.Node) bool {
		return n.Data == name
	})
}
