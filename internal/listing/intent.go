package listing

// Intent describes an outbound action for the transport boundary to
// execute. The engine never performs chat I/O itself; publishing to the
// channel is the one awaited collaborator call (see Publisher).
type Intent interface {
	intent()
}

// Prompt asks the user for the next required input. Quote marks the
// acknowledgement variant that replies to the triggering message.
type Prompt struct {
	Text     string
	Keyboard Keyboard
	Quote    bool
}

// ValidationError tells the user why the last input was rejected.
// The triggering message should be quoted in the reply.
type ValidationError struct {
	Text string
}

// KeyboardUpdate re-renders an inline keyboard in place.
type KeyboardUpdate struct {
	Keyboard Keyboard
}

// Published confirms a successful publish and carries the references
// needed to build the retraction control. Link points at the first
// published message when the destination chat supports t.me links.
type Published struct {
	Text     string
	Link     string
	Messages []MessageRef
}

func (Prompt) intent() {}
func (ValidationError) intent() {}
func (KeyboardUpdate) intent() {}
func (Published) intent() {}

// MessageRef identifies one published channel message.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// Keyboard is a transport-neutral description of a reply surface.
type Keyboard interface {
	keyboard()
}

// MainMenu is the persistent reply keyboard with the new-listing and
// publish buttons.
type MainMenu struct{}

// PurposeSelect is the four-option category keyboard.
type PurposeSelect struct{}

// TagSelect renders the catalog with the draft's current selection.
type TagSelect struct {
	Options []TagOption
}

// TagOption is one toggleable tag button.
type TagOption struct {
	Tag      string
	Selected bool
}

func (MainMenu) keyboard() {}
func (PurposeSelect) keyboard() {}
func (TagSelect) keyboard() {}
