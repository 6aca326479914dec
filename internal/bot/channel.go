package bot

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"

	"github.com/m3rciful/bazarbot/internal/listing"

	tele "gopkg.in/telebot.v4"
)

// ErrNotBound is returned when a channel call happens before the bot
// runtime handed over its client.
var ErrNotBound = errors.New("bot: channel transport not bound")

// Channel posts listings to the destination channel and answers
// membership lookups there. It implements both listing.Publisher and
// listing.Membership. The telebot client becomes available only once
// the runtime starts, hence the late Bind.
type Channel struct {
	chatID int64
	bot    atomic.Pointer[tele.Bot]
}

// NewChannel creates an unbound channel adapter for the given chat.
func NewChannel(chatID int64) *Channel {
	return &Channel{chatID: chatID}
}

// Bind hands the started telebot client to the adapter.
func (ch *Channel) Bind(b *tele.Bot) {
	ch.bot.Store(b)
}

func (ch *Channel) client() (*tele.Bot, error) {
	b := ch.bot.Load()
	if b == nil {
		return nil, ErrNotBound
	}
	return b, nil
}

// PublishText posts the listing as a single Markdown message.
func (ch *Channel) PublishText(_ context.Context, text string) ([]listing.MessageRef, error) {
	b, err := ch.client()
	if err != nil {
		return nil, err
	}
	msg, err := b.Send(tele.ChatID(ch.chatID), text, tele.ModeMarkdown)
	if err != nil {
		return nil, err
	}
	return []listing.MessageRef{{ChatID: ch.chatID, MessageID: msg.ID}}, nil
}

// PublishAlbum posts the listing as a media group with the composed
// text as the caption of the first photo.
func (ch *Channel) PublishAlbum(_ context.Context, images []string, caption string) ([]listing.MessageRef, error) {
	b, err := ch.client()
	if err != nil {
		return nil, err
	}
	album := make(tele.Album, 0, len(images))
	for i, ref := range images {
		photo := &tele.Photo{File: tele.File{FileID: ref}}
		if i == 0 {
			photo.Caption = caption
		}
		album = append(album, photo)
	}
	msgs, err := b.SendAlbum(tele.ChatID(ch.chatID), album, tele.ModeMarkdown)
	if err != nil {
		return nil, err
	}
	refs := make([]listing.MessageRef, 0, len(msgs))
	for _, msg := range msgs {
		refs = append(refs, listing.MessageRef{ChatID: ch.chatID, MessageID: msg.ID})
	}
	return refs, nil
}

// Delete removes every referenced message, continuing past individual
// failures and reporting them joined.
func (ch *Channel) Delete(_ context.Context, refs []listing.MessageRef) error {
	b, err := ch.client()
	if err != nil {
		return err
	}
	var errs []error
	for _, ref := range refs {
		stored := tele.StoredMessage{
			MessageID: strconv.Itoa(ref.MessageID),
			ChatID:    ref.ChatID,
		}
		if err := b.Delete(stored); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Status reports the user's membership in the destination channel.
func (ch *Channel) Status(_ context.Context, userID int64) (listing.MemberStatus, error) {
	b, err := ch.client()
	if err != nil {
		return "", err
	}
	member, err := b.ChatMemberOf(tele.ChatID(ch.chatID), &tele.User{ID: userID})
	if err != nil {
		return "", err
	}
	return listing.MemberStatus(member.Role), nil
}
