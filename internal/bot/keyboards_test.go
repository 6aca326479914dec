package bot

import (
	"testing"

	"github.com/m3rciful/bazarbot/internal/listing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainMenuMarkup(t *testing.T) {
	markup := renderKeyboard(listing.MainMenu{})
	require.NotNil(t, markup)
	require.Len(t, markup.ReplyKeyboard, 1)
	require.Len(t, markup.ReplyKeyboard[0], 2)
	assert.Equal(t, listing.BtnNewListing, markup.ReplyKeyboard[0][0].Text)
	assert.Equal(t, listing.BtnPublish, markup.ReplyKeyboard[0][1].Text)
	assert.True(t, markup.ResizeKeyboard)
}

func TestPurposeMarkupTwoPerRow(t *testing.T) {
	markup := renderKeyboard(listing.PurposeSelect{})
	require.NotNil(t, markup)
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Len(t, markup.InlineKeyboard[0], 2)
	assert.Len(t, markup.InlineKeyboard[1], 2)

	first := markup.InlineKeyboard[0][0]
	assert.Equal(t, "purpose", first.Unique)
	assert.Equal(t, string(listing.Purposes[0]), first.Data)
	assert.Equal(t, listing.Purposes[0].Label(), first.Text)
}

func TestTagMarkupRowsAndMarks(t *testing.T) {
	markup := renderKeyboard(listing.TagSelect{Options: []listing.TagOption{
		{Tag: "Дом"},
		{Tag: "Мебель", Selected: true},
		{Tag: "Техника"},
		{Tag: "Авто"},
	}})
	require.NotNil(t, markup)
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Len(t, markup.InlineKeyboard[0], 3)
	assert.Len(t, markup.InlineKeyboard[1], 1)

	assert.Equal(t, "☑️ Дом", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "✅ Мебель", markup.InlineKeyboard[0][1].Text)
	assert.Equal(t, "tag", markup.InlineKeyboard[0][1].Unique)
	assert.Equal(t, "Мебель", markup.InlineKeyboard[0][1].Data)
}

func TestRetractMarkupCarriesToken(t *testing.T) {
	markup := retractMarkup("1a")
	require.Len(t, markup.InlineKeyboard, 1)
	require.Len(t, markup.InlineKeyboard[0], 1)
	btn := markup.InlineKeyboard[0][0]
	assert.Equal(t, listing.BtnRetract, btn.Text)
	assert.Equal(t, "retract", btn.Unique)
	assert.Equal(t, "1a", btn.Data)
}

func TestRenderKeyboardUnknownIsNil(t *testing.T) {
	assert.Nil(t, renderKeyboard(nil))
}
