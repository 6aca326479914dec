package bot

import (
	"github.com/m3rciful/bazarbot/core/telegram/keyboard"
	"github.com/m3rciful/bazarbot/internal/listing"

	tele "gopkg.in/telebot.v4"
)

const (
	tagMarkSelected   = "✅"
	tagMarkUnselected = "☑️"

	tagsPerRow = 3
)

func renderKeyboard(kb listing.Keyboard) *tele.ReplyMarkup {
	switch kb := kb.(type) {
	case listing.MainMenu:
		return mainMenuMarkup()
	case listing.PurposeSelect:
		return purposeMarkup()
	case listing.TagSelect:
		return tagMarkup(kb)
	}
	return nil
}

func mainMenuMarkup() *tele.ReplyMarkup {
	return keyboard.ReplyButtons([]string{listing.BtnNewListing, listing.BtnPublish})
}

func purposeMarkup() *tele.ReplyMarkup {
	buttons := make([]keyboard.InlineBtn, 0, len(listing.Purposes))
	for _, p := range listing.Purposes {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   p.Label(),
			Unique: "purpose",
			Data:   string(p),
		})
	}
	return keyboard.InlineButtonsNPerRow(buttons, 2)
}

func tagMarkup(kb listing.TagSelect) *tele.ReplyMarkup {
	buttons := make([]keyboard.InlineBtn, 0, len(kb.Options))
	for _, opt := range kb.Options {
		mark := tagMarkUnselected
		if opt.Selected {
			mark = tagMarkSelected
		}
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   mark + " " + opt.Tag,
			Unique: "tag",
			Data:   opt.Tag,
		})
	}
	return keyboard.InlineButtonsNPerRow(buttons, tagsPerRow)
}

func retractMarkup(token string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	btn := markup.Data(listing.BtnRetract, "retract", token)
	markup.InlineKeyboard = [][]tele.InlineButton{{*btn.Inline()}}
	return markup
}
