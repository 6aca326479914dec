package listing

// Event is one inbound user action, already stripped of transport
// detail by the adapter.
type Event interface {
	event()
}

// TextReceived carries a plain text message.
type TextReceived struct {
	Text string
}

// PhotoReceived carries one photo reference with an optional caption.
type PhotoReceived struct {
	FileRef string
	Caption string
}

// PurposeChosen carries the payload of a category button press.
type PurposeChosen struct {
	Key string
}

// TagToggled carries the payload of a tag button press.
type TagToggled struct {
	Tag string
}

// NewListingRequested discards the current draft unconditionally.
type NewListingRequested struct{}

// PublishRequested asks to publish the draft on behalf of the author.
type PublishRequested struct {
	Author Identity
}

func (TextReceived) event() {}
func (PhotoReceived) event() {}
func (PurposeChosen) event() {}
func (TagToggled) event() {}
func (NewListingRequested) event() {}
func (PublishRequested) event() {}
