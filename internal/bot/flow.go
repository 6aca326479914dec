package bot

import (
	"fmt"

	"github.com/m3rciful/bazarbot/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/bazarbot/core/telegram/helpers"
	"github.com/m3rciful/bazarbot/internal/listing"

	tele "gopkg.in/telebot.v4"
)

// Flow binds the workflow engine to telebot: it translates updates into
// engine events and executes the returned intents.
type Flow struct {
	engine   *listing.Engine
	retracts *retractRegistry
}

// NewFlow wires the adapter around an engine.
func NewFlow(engine *listing.Engine) *Flow {
	return &Flow{engine: engine, retracts: newRetractRegistry()}
}

// Start greets the user and shows the persistent menu.
func (f *Flow) Start(c tele.Context) error {
	return tghelpers.SendText(c, listing.MsgGreeting, &tele.SendOptions{ReplyMarkup: mainMenuMarkup()})
}

// Create discards the draft and restarts the workflow.
func (f *Flow) Create(c tele.Context) error {
	return f.dispatch(c, listing.NewListingRequested{})
}

// Publish runs the publish gates and, when they pass, posts the listing.
func (f *Flow) Publish(c tele.Context) error {
	return f.dispatch(c, listing.PublishRequested{Author: identityOf(c.Sender())})
}

// HandleMessage feeds a plain text or photo update into the workflow.
func (f *Flow) HandleMessage(c tele.Context) error {
	msg := c.Message()
	if msg == nil {
		return nil
	}
	if msg.Photo != nil {
		return f.dispatch(c, listing.PhotoReceived{
			FileRef: msg.Photo.FileID,
			Caption: msg.Caption,
		})
	}
	return f.dispatch(c, listing.TextReceived{Text: msg.Text})
}

// PurposeCallback handles a category button press.
func (f *Flow) PurposeCallback(c tele.Context) error {
	return f.dispatch(c, listing.PurposeChosen{Key: callbacks.CallbackPayload(c)})
}

// TagCallback handles a tag toggle press.
func (f *Flow) TagCallback(c tele.Context) error {
	return f.dispatch(c, listing.TagToggled{Tag: callbacks.CallbackPayload(c)})
}

// RetractCallback deletes every message bound to the pressed control.
// Retraction is best-effort and always reports success to the invoker.
func (f *Flow) RetractCallback(c tele.Context) error {
	refs := f.retracts.take(callbacks.CallbackPayload(c))
	f.engine.Retract(tghelpers.BuildContext(c), refs)
	return c.Edit(listing.MsgRetracted)
}

func (f *Flow) dispatch(c tele.Context, ev listing.Event) error {
	ctx := tghelpers.BuildContext(c)
	intents, err := f.engine.Handle(ctx, conversationID(c), ev)
	if err != nil {
		return err
	}
	return f.execute(c, intents)
}

func (f *Flow) execute(c tele.Context, intents []listing.Intent) error {
	for _, intent := range intents {
		var err error
		switch intent := intent.(type) {
		case listing.Prompt:
			opts := &tele.SendOptions{ReplyMarkup: renderKeyboard(intent.Keyboard)}
			if intent.Quote {
				err = tghelpers.ReplyText(c, intent.Text, opts)
			} else {
				err = tghelpers.SendText(c, intent.Text, opts)
			}
		case listing.ValidationError:
			err = tghelpers.ReplyText(c, intent.Text)
		case listing.KeyboardUpdate:
			err = c.Edit(renderKeyboard(intent.Keyboard))
		case listing.Published:
			token := f.retracts.put(intent.Messages)
			text := intent.Text
			opts := &tele.SendOptions{ReplyMarkup: retractMarkup(token)}
			if intent.Link != "" {
				text = fmt.Sprintf("[%s](%s)", intent.Text, intent.Link)
				opts.ParseMode = tele.ModeMarkdown
			}
			err = tghelpers.SendText(c, text, opts)
		default:
			err = fmt.Errorf("bot: unknown intent %T", intent)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// conversationID keys drafts by chat so private conversations map one
// to one onto sessions.
func conversationID(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	if sender := c.Sender(); sender != nil {
		return sender.ID
	}
	return 0
}

func identityOf(user *tele.User) listing.Identity {
	if user == nil {
		return listing.Identity{}
	}
	return listing.Identity{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}
