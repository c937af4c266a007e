package xmlio

import (
	"testing"

	"github.com/oxvg/oxvg-go/internal/atom"
	"github.com/oxvg/oxvg-go/internal/dom"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleElement(t *testing.T) {
	a, doc, err := Parse(`<svg width="10" height="10"><rect x="1" y="2"/></svg>`, Options{})
	require.NoError(t, err)

	children := a.Children(doc)
	require.Len(t, children, 1)

	svg := children[0]
	require.Equal(t, dom.KindElement, a.Kind(svg))
	require.Equal(t, "svg", a.Name(svg).Local.String())

	rects := a.Children(svg)
	require.Len(t, rects, 1)
	require.Equal(t, "rect", a.Name(rects[0]).Local.String())

	xAttr, ok := a.Attr(rects[0], atom.NewQName("", "", "x"))
	require.True(t, ok)
	require.Equal(t, "1", xAttr.Value)
}

func TestParseEntitiesAndComments(t *testing.T) {
	a, doc, err := Parse(`<svg><!-- hi --><text>a &amp; b</text></svg>`, Options{})
	require.NoError(t, err)

	svg := a.Children(doc)[0]
	kids := a.Children(svg)
	require.Len(t, kids, 2)
	require.Equal(t, dom.KindComment, a.Kind(kids[0]))
	require.Equal(t, " hi ", a.Data(kids[0]))

	text := a.Children(kids[1])[0]
	require.Equal(t, "a & b", a.Data(text))
}

func TestParseNestingLimit(t *testing.T) {
	src := ""
	for i := 0; i < MaxNesting+1; i++ {
		src += "<g>"
	}
	_, _, err := Parse(src, Options{})
	require.Error(t, err)
	require.IsType(t, NodesLimitReached{}, err)
}

func TestParseMismatchedTag(t *testing.T) {
	_, _, err := Parse(`<svg><rect></svg></svg>`, Options{})
	require.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	src := `<svg width="10"><rect x="1"/></svg>`
	a, doc, err := Parse(src, Options{})
	require.NoError(t, err)
	out := Write(a, doc, WriteOptions{})
	require.Equal(t, src, out)
}
