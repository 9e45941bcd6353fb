package fitzdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/figura/model"
)

const samplePageHTML = `<!DOCTYPE html>
<html><head><style></style></head><body>
<div id="page0" style="position:relative;width:612pt;height:792pt">
<p style="top:72pt;left:108pt;line-height:14pt"><span style="font-family:Times;font-size:12pt">Hello world</span></p>
<p style="top:100pt;left:108pt;line-height:24pt"><b style="font-size:20pt">Heading</b></p>
<p style="top:130pt;left:108pt"><span style="font-size:10pt">   </span></p>
<img style="position:absolute;top:200pt;left:50pt" width="300" height="150" src="data:image/png;base64,AAAA"/>
</div>
</body></html>`

func TestParseBlocks_Text(t *testing.T) {
	texts, images, err := parseBlocks(samplePageHTML)
	require.NoError(t, err)

	require.Len(t, texts, 2, "whitespace-only paragraph must be skipped")
	require.Len(t, images, 1)

	first := texts[0]
	assert.Equal(t, "T0", first.ID)
	assert.Equal(t, model.BlockText, first.Type)
	assert.Equal(t, "Hello world", first.Text)
	assert.Equal(t, 108.0, first.Rect.X0)
	assert.Equal(t, 72.0, first.Rect.Y0)
	assert.Equal(t, 86.0, first.Rect.Y1, "height follows line-height")
	assert.Greater(t, first.Rect.Width(), 0.0)

	second := texts[1]
	assert.Equal(t, "T1", second.ID)
	assert.Equal(t, "Heading", second.Text)
	assert.Equal(t, 124.0, second.Rect.Y1, "height follows line-height over font size")
}

func TestParseBlocks_WidthScalesWithText(t *testing.T) {
	short := `<p style="top:0pt;left:0pt"><span style="font-size:10pt">ab</span></p>`
	long := `<p style="top:0pt;left:0pt"><span style="font-size:10pt">abcdefgh</span></p>`

	texts, _, err := parseBlocks(short)
	require.NoError(t, err)
	require.Len(t, texts, 1)
	shortW := texts[0].Rect.Width()

	texts, _, err = parseBlocks(long)
	require.NoError(t, err)
	require.Len(t, texts, 1)

	assert.Greater(t, texts[0].Rect.Width(), shortW)
}

func TestParseBlocks_Image(t *testing.T) {
	_, images, err := parseBlocks(samplePageHTML)
	require.NoError(t, err)
	require.Len(t, images, 1)

	img := images[0]
	assert.Equal(t, "I0", img.ID)
	assert.Equal(t, model.BlockImage, img.Type)
	assert.Equal(t, model.Rect{X0: 50, Y0: 200, X1: 350, Y1: 350}, img.Rect)
	assert.Empty(t, img.Text)
}

func TestParseBlocks_MissingPosition(t *testing.T) {
	markup := `<p>floating text</p><img width="10" height="10"/>`

	texts, images, err := parseBlocks(markup)
	require.NoError(t, err)
	assert.Empty(t, texts)
	assert.Empty(t, images)
}

func TestParseBlocks_DefaultFontSize(t *testing.T) {
	markup := `<p style="top:10pt;left:10pt">plain</p>`

	texts, _, err := parseBlocks(markup)
	require.NoError(t, err)
	require.Len(t, texts, 1)

	// No font-size anywhere: the default size drives the estimate.
	assert.InDelta(t, defaultFontSize*1.2, texts[0].Rect.Height(), 1e-9)
}

func TestParseBlocks_NormalizesText(t *testing.T) {
	// e followed by a combining acute accent must compose to one rune.
	markup := "<p style=\"top:0pt;left:0pt\"><span style=\"font-size:10pt\">cafe\u0301</span></p>"

	texts, _, err := parseBlocks(markup)
	require.NoError(t, err)
	require.Len(t, texts, 1)
	assert.Equal(t, "caf\u00e9", texts[0].Text)
}

func TestParseBlocks_Empty(t *testing.T) {
	texts, images, err := parseBlocks("")
	require.NoError(t, err)
	assert.Empty(t, texts)
	assert.Empty(t, images)
}
