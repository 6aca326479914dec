package listing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	texts    []string
	albums   [][]string
	captions []string
	deletes  [][]MessageRef

	nextID     int
	publishErr error
	deleteErr  error
}

func (p *fakePublisher) PublishText(_ context.Context, text string) ([]MessageRef, error) {
	if p.publishErr != nil {
		return nil, p.publishErr
	}
	p.texts = append(p.texts, text)
	return p.refs(1), nil
}

func (p *fakePublisher) PublishAlbum(_ context.Context, images []string, caption string) ([]MessageRef, error) {
	if p.publishErr != nil {
		return nil, p.publishErr
	}
	p.albums = append(p.albums, images)
	p.captions = append(p.captions, caption)
	return p.refs(len(images)), nil
}

func (p *fakePublisher) Delete(_ context.Context, refs []MessageRef) error {
	p.deletes = append(p.deletes, refs)
	return p.deleteErr
}

const fixtureChannel = int64(-1001234567890)

func (p *fakePublisher) refs(n int) []MessageRef {
	out := make([]MessageRef, 0, n)
	for i := 0; i < n; i++ {
		p.nextID++
		out = append(out, MessageRef{ChatID: fixtureChannel, MessageID: p.nextID})
	}
	return out
}

type fakeMembership struct {
	status MemberStatus
	err    error
	calls  int
}

func (m *fakeMembership) Status(context.Context, int64) (MemberStatus, error) {
	m.calls++
	return m.status, m.err
}

type engineFixture struct {
	engine     *Engine
	store      *Store
	publisher  *fakePublisher
	membership *fakeMembership
	hour       int
}

func newFixture(t *testing.T) *engineFixture {
	t.Helper()
	f := &engineFixture{
		store:      NewStore(),
		publisher:  &fakePublisher{},
		membership: &fakeMembership{status: MemberMember},
		hour:       12,
	}
	f.engine = NewEngine(f.store, NewCatalog([]string{"Д", "Мебель", "Техника"}), f.publisher, f.membership, Options{
		Hour:   func() int { return f.hour },
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return f
}

func (f *engineFixture) handle(t *testing.T, conv int64, ev Event) []Intent {
	t.Helper()
	intents, err := f.engine.Handle(context.Background(), conv, ev)
	require.NoError(t, err)
	return intents
}

const conv = int64(777)

var author = Identity{ID: 42, FirstName: "Ivan", LastName: "Petrov"}

func TestFreePurposeSkipsPriceStage(t *testing.T) {
	for _, purpose := range []Purpose{PurposeGiveAway, PurposeJustAsk} {
		t.Run(string(purpose), func(t *testing.T) {
			f := newFixture(t)
			intents := f.handle(t, conv, PurposeChosen{Key: string(purpose)})

			require.Len(t, intents, 1)
			prompt, ok := intents[0].(Prompt)
			require.True(t, ok)
			assert.Equal(t, msgAskContent, prompt.Text)
			assert.IsType(t, TagSelect{}, prompt.Keyboard)

			draft := f.store.Get(conv)
			assert.True(t, draft.Price.Free())
			assert.Equal(t, StageCollecting, draft.Stage())
		})
	}
}

func TestPricedPurposeAwaitsPrice(t *testing.T) {
	for _, purpose := range []Purpose{PurposeBuySell, PurposeRent} {
		t.Run(string(purpose), func(t *testing.T) {
			f := newFixture(t)
			intents := f.handle(t, conv, PurposeChosen{Key: string(purpose)})

			require.Len(t, intents, 1)
			prompt, ok := intents[0].(Prompt)
			require.True(t, ok)
			assert.Equal(t, msgAskPrice, prompt.Text)

			// Text is not accepted as content until a price arrives.
			f.handle(t, conv, TextReceived{Text: "ladder, barely used"})
			assert.Empty(t, f.store.Get(conv).Name)
		})
	}
}

func TestPriceValidation(t *testing.T) {
	cases := []struct {
		name  string
		input string
		ok    bool
	}{
		{"letters", "abc", false},
		{"zero", "0", false},
		{"negative", "-5", false},
		{"float", "12.50", false},
		{"valid", "500", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.handle(t, conv, PurposeChosen{Key: string(PurposeBuySell)})
			intents := f.handle(t, conv, TextReceived{Text: tc.input})

			require.Len(t, intents, 1)
			draft := f.store.Get(conv)
			if tc.ok {
				assert.IsType(t, Prompt{}, intents[0])
				amount, set := draft.Price.Amount()
				require.True(t, set)
				assert.Equal(t, 500, amount)
				assert.Equal(t, StageCollecting, draft.Stage())
			} else {
				ve, isVE := intents[0].(ValidationError)
				require.True(t, isVE)
				assert.Equal(t, msgBadPrice, ve.Text)
				assert.True(t, draft.Price.Awaiting())
			}
		})
	}
}

func TestInvalidPriceThenValidAdvances(t *testing.T) {
	f := newFixture(t)
	f.handle(t, conv, PurposeChosen{Key: string(PurposeBuySell)})

	intents := f.handle(t, conv, TextReceived{Text: "abc"})
	require.IsType(t, ValidationError{}, intents[0])
	assert.True(t, f.store.Get(conv).Price.Awaiting())

	intents = f.handle(t, conv, TextReceived{Text: "500"})
	prompt, ok := intents[0].(Prompt)
	require.True(t, ok)
	assert.Equal(t, msgAskContent, prompt.Text)
}

func TestPhotoDuringPriceStageRejected(t *testing.T) {
	f := newFixture(t)
	f.handle(t, conv, PurposeChosen{Key: string(PurposeBuySell)})

	// A numeric caption is not price input either.
	for _, caption := range []string{"", "500"} {
		intents := f.handle(t, conv, PhotoReceived{FileRef: "file-1", Caption: caption})
		ve, ok := intents[0].(ValidationError)
		require.True(t, ok)
		assert.Equal(t, msgBadPrice, ve.Text)
	}

	draft := f.store.Get(conv)
	assert.True(t, draft.Price.Awaiting())
	assert.Zero(t, draft.ImageCount())
	assert.Empty(t, draft.Name)
}

func TestImageCap(t *testing.T) {
	f := newFixture(t)
	f.handle(t, conv, PurposeChosen{Key: string(PurposeGiveAway)})

	for i := 0; i < MaxImages; i++ {
		intents := f.handle(t, conv, PhotoReceived{FileRef: fmt.Sprintf("file-%d", i)})
		require.IsType(t, Prompt{}, intents[0])
	}
	assert.Equal(t, MaxImages, f.store.Get(conv).ImageCount())

	intents := f.handle(t, conv, PhotoReceived{FileRef: "file-overflow"})
	ve, ok := intents[0].(ValidationError)
	require.True(t, ok)
	assert.Equal(t, msgImageLimit, ve.Text)
	assert.Equal(t, MaxImages, f.store.Get(conv).ImageCount())
}

func TestCaptionOverwritesName(t *testing.T) {
	f := newFixture(t)
	f.handle(t, conv, PurposeChosen{Key: string(PurposeGiveAway)})

	f.handle(t, conv, TextReceived{Text: "first description"})
	f.handle(t, conv, PhotoReceived{FileRef: "file-1", Caption: "second description"})
	f.handle(t, conv, PhotoReceived{FileRef: "file-2"})

	draft := f.store.Get(conv)
	assert.Equal(t, "second description", draft.Name)
	assert.Equal(t, []string{"file-1", "file-2"}, draft.Images())
}

func TestTagToggleTwiceRestoresSet(t *testing.T) {
	f := newFixture(t)
	f.handle(t, conv, PurposeChosen{Key: string(PurposeGiveAway)})

	f.handle(t, conv, TagToggled{Tag: "Д"})
	f.handle(t, conv, TagToggled{Tag: "Мебель"})
	f.handle(t, conv, TagToggled{Tag: "Д"})

	assert.Equal(t, []string{"Мебель"}, f.store.Get(conv).Tags())

	intents := f.handle(t, conv, TagToggled{Tag: "Д"})
	update, ok := intents[0].(KeyboardUpdate)
	require.True(t, ok)
	kb, ok := update.Keyboard.(TagSelect)
	require.True(t, ok)
	assert.Equal(t, []string{"Мебель", "Д"}, f.store.Get(conv).Tags())
	require.Len(t, kb.Options, 3)
	assert.True(t, kb.Options[0].Selected) // Д
	assert.True(t, kb.Options[1].Selected) // Мебель
	assert.False(t, kb.Options[2].Selected)
}

func TestTagOutsideCatalogIgnored(t *testing.T) {
	f := newFixture(t)
	f.handle(t, conv, PurposeChosen{Key: string(PurposeGiveAway)})

	intents := f.handle(t, conv, TagToggled{Tag: "Криптовалюта"})
	assert.Empty(t, intents)
	assert.Empty(t, f.store.Get(conv).Tags())
}

func TestTagBeforePurposeIgnored(t *testing.T) {
	f := newFixture(t)
	intents := f.handle(t, conv, TagToggled{Tag: "Д"})
	assert.Empty(t, intents)
	assert.Empty(t, f.store.Get(conv).Tags())
}

func TestNewListingDiscardsDraft(t *testing.T) {
	f := newFixture(t)
	f.handle(t, conv, PurposeChosen{Key: string(PurposeGiveAway)})
	f.handle(t, conv, TextReceived{Text: "old ladder"})

	intents := f.handle(t, conv, NewListingRequested{})
	prompt, ok := intents[0].(Prompt)
	require.True(t, ok)
	assert.Equal(t, msgChoosePurpose, prompt.Text)
	assert.IsType(t, PurposeSelect{}, prompt.Keyboard)

	draft := f.store.Get(conv)
	assert.Empty(t, draft.Name)
	assert.Equal(t, StageChoosingPurpose, draft.Stage())
}

func TestPublishIncompleteRepromptsStage(t *testing.T) {
	f := newFixture(t)
	f.handle(t, conv, PurposeChosen{Key: string(PurposeBuySell)})

	intents := f.handle(t, conv, PublishRequested{Author: author})
	prompt, ok := intents[0].(Prompt)
	require.True(t, ok)
	assert.Equal(t, msgAskPrice, prompt.Text)
	assert.Empty(t, f.publisher.texts)
	assert.Empty(t, f.publisher.albums)
}

func TestPublishTextListing(t *testing.T) {
	f := newFixture(t)
	f.handle(t, conv, PurposeChosen{Key: string(PurposeJustAsk)})
	f.handle(t, conv, TextReceived{Text: "Looking for a ladder"})
	f.handle(t, conv, TagToggled{Tag: "Д"})

	intents := f.handle(t, conv, PublishRequested{Author: author})

	require.Len(t, f.publisher.texts, 1)
	assert.Equal(t,
		"Looking for a ladder\n\n#Д\n\n#ПростоCпросить\n\n[Ivan Petrov](tg://user?id=42)",
		f.publisher.texts[0],
	)

	require.Len(t, intents, 1)
	published, ok := intents[0].(Published)
	require.True(t, ok)
	assert.Equal(t, msgPublished, published.Text)
	assert.Len(t, published.Messages, 1)

	// The draft resets only after the publish call succeeded.
	draft := f.store.Get(conv)
	assert.Equal(t, StageChoosingPurpose, draft.Stage())
	assert.Empty(t, draft.Tags())
}

func TestPublishAlbumBindsAllMessages(t *testing.T) {
	f := newFixture(t)
	f.handle(t, conv, PurposeChosen{Key: string(PurposeBuySell)})
	f.handle(t, conv, TextReceived{Text: "1500"})
	f.handle(t, conv, TextReceived{Text: "Ski boots"})
	for i := 0; i < 3; i++ {
		f.handle(t, conv, PhotoReceived{FileRef: fmt.Sprintf("file-%d", i)})
	}

	intents := f.handle(t, conv, PublishRequested{Author: author})

	require.Len(t, f.publisher.albums, 1)
	assert.Equal(t, []string{"file-0", "file-1", "file-2"}, f.publisher.albums[0])
	published, ok := intents[0].(Published)
	require.True(t, ok)
	assert.Len(t, published.Messages, 3)
}

func TestPublishedCarriesChannelLink(t *testing.T) {
	f := newFixture(t)
	f.handle(t, conv, PurposeChosen{Key: string(PurposeJustAsk)})
	f.handle(t, conv, TextReceived{Text: "Looking for a ladder"})

	intents := f.handle(t, conv, PublishRequested{Author: author})

	published, ok := intents[0].(Published)
	require.True(t, ok)
	require.Len(t, published.Messages, 1)
	assert.Equal(t,
		fmt.Sprintf("https://t.me/c/1234567890/%d", published.Messages[0].MessageID),
		published.Link,
	)
}

func TestMessageLinkOnlyForChannelChats(t *testing.T) {
	assert.Equal(t, "https://t.me/c/1234567890/7",
		messageLink(MessageRef{ChatID: fixtureChannel, MessageID: 7}))
	assert.Empty(t, messageLink(MessageRef{ChatID: 12345, MessageID: 7}))
	assert.Empty(t, messageLink(MessageRef{ChatID: -100, MessageID: 7}))
}

func TestPublishRejectedWhenNotSubscribed(t *testing.T) {
	for _, status := range []MemberStatus{MemberLeft, MemberKicked, MemberRestricted} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(t)
			f.membership.status = status
			f.handle(t, conv, PurposeChosen{Key: string(PurposeJustAsk)})
			f.handle(t, conv, TextReceived{Text: "Looking for a ladder"})

			intents := f.handle(t, conv, PublishRequested{Author: author})

			ve, ok := intents[0].(ValidationError)
			require.True(t, ok)
			assert.Equal(t, msgMustSubscribe, ve.Text)
			assert.Empty(t, f.publisher.texts)
			assert.Equal(t, "Looking for a ladder", f.store.Get(conv).Name)
		})
	}
}

func TestPublishRejectedBeforeWindowOpens(t *testing.T) {
	f := newFixture(t)
	f.hour = 8
	f.handle(t, conv, PurposeChosen{Key: string(PurposeJustAsk)})
	f.handle(t, conv, TextReceived{Text: "Looking for a ladder"})

	intents := f.handle(t, conv, PublishRequested{Author: author})

	ve, ok := intents[0].(ValidationError)
	require.True(t, ok)
	assert.Equal(t, msgWindowClosed(defaultOpenHour), ve.Text)
	assert.Empty(t, f.publisher.texts)
}

func TestMembershipCheckedBeforeWindow(t *testing.T) {
	f := newFixture(t)
	f.hour = 8
	f.membership.status = MemberLeft
	f.handle(t, conv, PurposeChosen{Key: string(PurposeJustAsk)})
	f.handle(t, conv, TextReceived{Text: "Looking for a ladder"})

	intents := f.handle(t, conv, PublishRequested{Author: author})

	ve, ok := intents[0].(ValidationError)
	require.True(t, ok)
	assert.Equal(t, msgMustSubscribe, ve.Text)
}

func TestMembershipLookupFailurePropagates(t *testing.T) {
	f := newFixture(t)
	f.membership.err = errors.New("api down")
	f.handle(t, conv, PurposeChosen{Key: string(PurposeJustAsk)})
	f.handle(t, conv, TextReceived{Text: "Looking for a ladder"})

	_, err := f.engine.Handle(context.Background(), conv, PublishRequested{Author: author})
	require.Error(t, err)
	assert.Empty(t, f.publisher.texts)
	assert.Equal(t, "Looking for a ladder", f.store.Get(conv).Name)
}

func TestPublishFailureKeepsDraft(t *testing.T) {
	f := newFixture(t)
	f.publisher.publishErr = errors.New("flood wait")
	f.handle(t, conv, PurposeChosen{Key: string(PurposeJustAsk)})
	f.handle(t, conv, TextReceived{Text: "Looking for a ladder"})

	_, err := f.engine.Handle(context.Background(), conv, PublishRequested{Author: author})
	require.Error(t, err)

	// The user can retry: nothing was reset.
	draft := f.store.Get(conv)
	assert.Equal(t, "Looking for a ladder", draft.Name)
	assert.Equal(t, StageCollecting, draft.Stage())

	f.publisher.publishErr = nil
	intents := f.handle(t, conv, PublishRequested{Author: author})
	assert.IsType(t, Published{}, intents[0])
}

func TestPublishCompositionDeterministic(t *testing.T) {
	f := newFixture(t)
	f.handle(t, conv, PurposeChosen{Key: string(PurposeBuySell)})
	f.handle(t, conv, TextReceived{Text: "150000"})
	f.handle(t, conv, TextReceived{Text: "Grand piano"})
	f.handle(t, conv, TagToggled{Tag: "Мебель"})

	draft := f.store.Get(conv)
	first := Compose(&draft, author)
	second := Compose(&draft, author)
	assert.Equal(t, first, second)
}

func TestRetractSwallowsDeletionFailures(t *testing.T) {
	f := newFixture(t)
	f.publisher.deleteErr = errors.New("message to delete not found")

	refs := []MessageRef{{ChatID: -100, MessageID: 1}, {ChatID: -100, MessageID: 2}}
	f.engine.Retract(context.Background(), refs)

	require.Len(t, f.publisher.deletes, 1)
	assert.Equal(t, refs, f.publisher.deletes[0])
}

func TestRetractWithoutRefsIsNoop(t *testing.T) {
	f := newFixture(t)
	f.engine.Retract(context.Background(), nil)
	assert.Empty(t, f.publisher.deletes)
}
