package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseFragment(t *testing.T, fragment string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader(fragment))
	require.NoError(t, err)
	return root
}

func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}

func TestGetText(t *testing.T) {
	root := parseFragment(t, `<div>hello <b>world</b></div>`)
	div := findElement(root, "div")
	require.Equal(t, "hello world", GetText(div))
}

func TestFindFollowingText(t *testing.T) {
	root := parseFragment(t, `<h3>キャンパス</h3><p></p><p>駿河台</p>`)
	h3 := findElement(root, "h3")
	require.Equal(t, "駿河台", FindFollowingText(h3))
}

func TestFindFollowingTextInsideTable(t *testing.T) {
	root := parseFragment(t, `<table><tr><th>教室</th><td>101号室</td></tr></table>`)
	th := findElement(root, "th")
	require.Equal(t, "101号室", FindFollowingText(th))
}

func TestFindFollowingTextNone(t *testing.T) {
	root := parseFragment(t, `<h3>使用言語</h3>`)
	h3 := findElement(root, "h3")
	require.Equal(t, "", FindFollowingText(h3))
}

func TestFindFollowingElement(t *testing.T) {
	root := parseFragment(t, `<h3>教科書</h3><div><table><tr><td>x</td></tr></table></div>`)
	h3 := findElement(root, "h3")
	table := FindFollowingElement(h3, "table")
	require.NotNil(t, table)
	require.Equal(t, "table", table.Data)

	require.Nil(t, FindFollowingElement(h3, "video"))
}
