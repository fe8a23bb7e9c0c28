package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTitleAndParagraphs(t *testing.T) {
	page := `<html><head><title> Weekly   Plan </title><style>p{}</style></head>
<body><nav>Home | About</nav><h1>Plan</h1><p>Ship the  release.</p>
<ul><li>Write notes</li><li>Review</li></ul><script>var x = 1;</script>
<footer>(c) me</footer></body></html>`

	doc, err := Extract(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, "Weekly Plan", doc.Title)
	assert.Equal(t, "Plan\nShip the release.\nWrite notes\nReview", doc.Content)
}

func TestExtractFallsBackToH1(t *testing.T) {
	doc, err := Extract(strings.NewReader(`<body><h1>Heading</h1><div>text</div></body>`))
	require.NoError(t, err)
	assert.Equal(t, "Heading", doc.Title)
}

func TestExtractNoTitle(t *testing.T) {
	doc, err := Extract(strings.NewReader(`<p>just text</p>`))
	require.NoError(t, err)
	assert.Equal(t, "", doc.Title)
	assert.Equal(t, "just text", doc.Content)
}

func TestExtractEmptyDocument(t *testing.T) {
	_, err := Extract(strings.NewReader(`<html><head><title>Empty</title></head><body><script>x()</script></body></html>`))
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestExtractCapsContent(t *testing.T) {
	long := strings.Repeat("é", MaxContent)
	doc, err := Extract(strings.NewReader("<p>" + long + "</p>"))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(doc.Content), MaxContent+3)
	assert.True(t, strings.HasSuffix(doc.Content, "..."))
	assert.True(t, strings.HasPrefix(doc.Content, "éé"))
}

func TestExtractBreaksLinesAtBlocks(t *testing.T) {
	page := `<title>a<b> bold </b>title</title><p>one<br>two</p><div>three <em>four</em></div>`
	doc, err := Extract(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, "a bold title", doc.Title)
	assert.Equal(t, "one\ntwo\nthree four", doc.Content)
}
