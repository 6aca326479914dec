package listing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"log/slog"
)

// Options tune engine behaviour beyond its collaborators.
type Options struct {
	// Hour returns the local wall-clock hour; defaults to time.Now.
	Hour func() int
	// OpenHour is the first hour of the publishing window (default 9).
	// The window closes at end of day.
	OpenHour int
	Logger   *slog.Logger
}

const defaultOpenHour = 9

// Engine is the workflow state machine. Given an inbound event it
// mutates the conversation's draft and returns the intents the
// transport should execute. The publish call is the only collaborator
// the engine awaits; everything else it merely describes.
type Engine struct {
	store      *Store
	catalog    *Catalog
	publisher  Publisher
	membership Membership
	hour       func() int
	openHour   int
	log        *slog.Logger
}

// NewEngine wires the state machine with its collaborators.
func NewEngine(store *Store, catalog *Catalog, publisher Publisher, membership Membership, opts Options) *Engine {
	hour := opts.Hour
	if hour == nil {
		hour = func() int { return time.Now().Hour() }
	}
	openHour := opts.OpenHour
	if openHour <= 0 {
		openHour = defaultOpenHour
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default().With("component", "flow")
	}
	return &Engine{
		store:      store,
		catalog:    catalog,
		publisher:  publisher,
		membership: membership,
		hour:       hour,
		openHour:   openHour,
		log:        log,
	}
}

// Handle processes one inbound event for a conversation. The store's
// per-conversation lock is held for the whole call, so events of one
// conversation apply strictly in acceptance order.
func (e *Engine) Handle(ctx context.Context, conv int64, ev Event) ([]Intent, error) {
	var intents []Intent
	err := e.store.Mutate(conv, func(d *Draft) error {
		var err error
		intents, err = e.handle(ctx, conv, d, ev)
		return err
	})
	if err != nil {
		return nil, err
	}
	return intents, nil
}

func (e *Engine) handle(ctx context.Context, conv int64, d *Draft, ev Event) ([]Intent, error) {
	switch ev := ev.(type) {
	case NewListingRequested:
		*d = Draft{}
		return e.stagePrompt(d), nil
	case PurposeChosen:
		return e.handlePurpose(conv, d, ev)
	case TagToggled:
		return e.handleTag(conv, d, ev)
	case TextReceived:
		return e.handleMessage(conv, d, ev.Text, "")
	case PhotoReceived:
		return e.handleMessage(conv, d, ev.Caption, ev.FileRef)
	case PublishRequested:
		return e.handlePublish(ctx, conv, d, ev.Author)
	}
	return nil, fmt.Errorf("listing: unknown event %T", ev)
}

func (e *Engine) handlePurpose(conv int64, d *Draft, ev PurposeChosen) ([]Intent, error) {
	purpose, ok := ParsePurpose(ev.Key)
	if !ok {
		e.log.Warn("unknown purpose key",
			slog.String("event", "flow.purpose.unknown"),
			slog.Int64("chat_id", conv),
			slog.String("key", ev.Key),
		)
		return nil, nil
	}
	d.SetPurpose(purpose)
	e.log.Debug("purpose selected",
		slog.String("event", "flow.purpose"),
		slog.Int64("chat_id", conv),
		slog.String("purpose", string(purpose)),
		slog.Bool("free", purpose.Free()),
	)
	return e.stagePrompt(d), nil
}

// handleTag flips tag membership the moment a purpose is set; it does
// not re-check the stage. Unknown tags never mutate the draft.
func (e *Engine) handleTag(conv int64, d *Draft, ev TagToggled) ([]Intent, error) {
	if d.Purpose == "" {
		return nil, nil
	}
	if !e.catalog.Contains(ev.Tag) {
		e.log.Warn("tag not in catalog",
			slog.String("event", "flow.tag.unknown"),
			slog.Int64("chat_id", conv),
			slog.String("tag", ev.Tag),
		)
		return nil, nil
	}
	selected := d.ToggleTag(ev.Tag)
	e.log.Debug("tag toggled",
		slog.String("event", "flow.tag"),
		slog.Int64("chat_id", conv),
		slog.String("tag", ev.Tag),
		slog.Bool("selected", selected),
	)
	return []Intent{KeyboardUpdate{Keyboard: e.tagKeyboard(d)}}, nil
}

func (e *Engine) handleMessage(conv int64, d *Draft, text, fileRef string) ([]Intent, error) {
	switch d.Stage() {
	case StageChoosingPurpose:
		return e.stagePrompt(d), nil
	case StageEnteringPrice:
		// Only a text message can carry the price; photo captions do not.
		if fileRef != "" {
			return []Intent{ValidationError{Text: msgBadPrice}}, nil
		}
		price, err := ParsePrice(text)
		if err != nil {
			return []Intent{ValidationError{Text: msgBadPrice}}, nil
		}
		d.Price = price
		e.log.Debug("price accepted",
			slog.String("event", "flow.price"),
			slog.Int64("chat_id", conv),
		)
		return e.stagePrompt(d), nil
	default:
		if text != "" {
			d.Name = text
		}
		if fileRef != "" {
			if err := d.AddImage(fileRef); err != nil {
				return []Intent{ValidationError{Text: msgImageLimit}}, nil
			}
		}
		return []Intent{Prompt{Text: msgDraftUpdated, Keyboard: MainMenu{}, Quote: true}}, nil
	}
}

func (e *Engine) handlePublish(ctx context.Context, conv int64, d *Draft, author Identity) ([]Intent, error) {
	if e.membership != nil {
		status, err := e.membership.Status(ctx, author.ID)
		if err != nil {
			return nil, fmt.Errorf("membership lookup: %w", err)
		}
		if !status.CanPublish() {
			e.log.Info("publish rejected",
				slog.String("event", "flow.publish.reject"),
				slog.Int64("chat_id", conv),
				slog.String("reason", "membership"),
				slog.String("member_status", string(status)),
			)
			return []Intent{ValidationError{Text: msgMustSubscribe}}, nil
		}
	}
	if hour := e.hour(); hour < e.openHour {
		e.log.Info("publish rejected",
			slog.String("event", "flow.publish.reject"),
			slog.Int64("chat_id", conv),
			slog.String("reason", "window"),
			slog.Int("hour", hour),
		)
		return []Intent{ValidationError{Text: msgWindowClosed(e.openHour)}}, nil
	}
	if !d.Complete() {
		return e.stagePrompt(d), nil
	}

	text := Compose(d, author)
	var (
		refs []MessageRef
		err  error
	)
	if images := d.Images(); len(images) > 0 {
		refs, err = e.publisher.PublishAlbum(ctx, images, text)
	} else {
		refs, err = e.publisher.PublishText(ctx, text)
	}
	if err != nil {
		// Draft stays intact so the user can retry.
		return nil, fmt.Errorf("publish: %w", err)
	}

	e.log.Info("listing published",
		slog.String("event", "flow.publish"),
		slog.Int64("chat_id", conv),
		slog.String("purpose", string(d.Purpose)),
		slog.Int("tags", len(d.Tags())),
		slog.Int("images", d.ImageCount()),
		slog.Int("messages", len(refs)),
	)

	*d = Draft{}
	var link string
	if len(refs) > 0 {
		link = messageLink(refs[0])
	}
	return []Intent{Published{Text: msgPublished, Link: link, Messages: refs}}, nil
}

// messageLink builds the t.me address of a channel post. Private
// channels and supergroups use the internal chat id form; other chats
// have no stable link.
func messageLink(ref MessageRef) string {
	const channelBase = int64(-1_000_000_000_000)
	if ref.ChatID >= channelBase {
		return ""
	}
	return fmt.Sprintf("https://t.me/c/%d/%d", -ref.ChatID+channelBase, ref.MessageID)
}

// Retract deletes every message bound to a retraction control as one
// batch. Deletion is best-effort: failures are logged and swallowed so
// the invoker always sees success.
func (e *Engine) Retract(ctx context.Context, refs []MessageRef) {
	if len(refs) == 0 || e.publisher == nil {
		return
	}
	if err := e.publisher.Delete(ctx, refs); err != nil && !errors.Is(err, context.Canceled) {
		e.log.Warn("retraction incomplete",
			slog.String("event", "flow.retract.partial"),
			slog.Int("messages", len(refs)),
			slog.String("err", err.Error()),
		)
	}
}

// stagePrompt re-emits the prompt for the draft's current stage.
func (e *Engine) stagePrompt(d *Draft) []Intent {
	switch d.Stage() {
	case StageChoosingPurpose:
		return []Intent{Prompt{Text: msgChoosePurpose, Keyboard: PurposeSelect{}}}
	case StageEnteringPrice:
		return []Intent{Prompt{Text: msgAskPrice}}
	default:
		return []Intent{Prompt{Text: msgAskContent, Keyboard: e.tagKeyboard(d)}}
	}
}

func (e *Engine) tagKeyboard(d *Draft) TagSelect {
	tags := e.catalog.Tags()
	options := make([]TagOption, len(tags))
	for i, tag := range tags {
		options[i] = TagOption{Tag: tag, Selected: d.HasTag(tag)}
	}
	return TagSelect{Options: options}
}
