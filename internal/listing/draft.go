package listing

// MaxImages caps the media group size accepted for a single listing.
const MaxImages = 10

// Purpose identifies the listing category. Its value doubles as the
// callback payload and the canonical hashtag in the published text.
type Purpose string

const (
	PurposeBuySell  Purpose = "КуплюПродам"
	PurposeGiveAway Purpose = "ОтдамБесплатно"
	PurposeRent     Purpose = "СдамСниму"
	// PurposeJustAsk historically carries a Latin "C"; the hashtag is
	// already established in the channel, so it stays.
	PurposeJustAsk Purpose = "ПростоCпросить"
)

// Purposes lists the selectable categories in keyboard order.
var Purposes = []Purpose{PurposeBuySell, PurposeGiveAway, PurposeRent, PurposeJustAsk}

var purposeLabels = map[Purpose]string{
	PurposeBuySell:  "Куплю / Продам",
	PurposeGiveAway: "Отдам бесплатно",
	PurposeRent:     "Сдам / Сниму",
	PurposeJustAsk:  "Просто спросить",
}

// ParsePurpose maps a callback payload back to a known Purpose.
func ParsePurpose(key string) (Purpose, bool) {
	p := Purpose(key)
	_, ok := purposeLabels[p]
	return p, ok
}

// Label returns the button caption for the purpose keyboard.
func (p Purpose) Label() string {
	return purposeLabels[p]
}

// Free reports whether the category publishes without a price.
func (p Purpose) Free() bool {
	return p == PurposeGiveAway || p == PurposeJustAsk
}

// Stage is the kind of input the workflow currently expects.
// It is derived from draft contents, never stored.
type Stage int

const (
	// StageChoosingPurpose awaits one of the four category buttons.
	StageChoosingPurpose Stage = iota
	// StageEnteringPrice awaits a positive integer price.
	StageEnteringPrice
	// StageCollecting accepts description text, photos, and tag toggles.
	StageCollecting
)

// Draft is the in-progress listing for one conversation. The zero value
// is an empty draft.
type Draft struct {
	Purpose Purpose
	Price   Price
	Name    string

	tags   []string
	images []string
}

// Stage derives the current workflow stage from field presence.
func (d Draft) Stage() Stage {
	switch {
	case d.Purpose == "":
		return StageChoosingPurpose
	case d.Price.Awaiting():
		return StageEnteringPrice
	default:
		return StageCollecting
	}
}

// Complete reports whether the draft is publishable.
func (d Draft) Complete() bool {
	return d.Purpose != "" && d.Price.Resolved() && d.Name != ""
}

// SetPurpose selects the category and resolves the matching price
// sentinel: free categories skip the price stage entirely.
func (d *Draft) SetPurpose(p Purpose) {
	d.Purpose = p
	if p.Free() {
		d.Price = FreePrice()
	} else {
		d.Price = AwaitingPrice()
	}
}

// ToggleTag flips tag membership, preserving insertion order of the
// remaining tags. It reports whether the tag is selected afterwards.
func (d *Draft) ToggleTag(tag string) bool {
	for i, t := range d.tags {
		if t == tag {
			d.tags = append(d.tags[:i], d.tags[i+1:]...)
			return false
		}
	}
	d.tags = append(d.tags, tag)
	return true
}

// HasTag reports current membership of a tag.
func (d Draft) HasTag(tag string) bool {
	for _, t := range d.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Tags returns the selected tags in insertion order.
func (d Draft) Tags() []string {
	out := make([]string, len(d.tags))
	copy(out, d.tags)
	return out
}

// AddImage appends a media reference. The cap is enforced without
// mutating the draft.
func (d *Draft) AddImage(ref string) error {
	if len(d.images) >= MaxImages {
		return ErrImageLimit
	}
	d.images = append(d.images, ref)
	return nil
}

// Images returns the attached media references in publish order.
func (d Draft) Images() []string {
	out := make([]string, len(d.images))
	copy(out, d.images)
	return out
}

// ImageCount returns the number of attached media references.
func (d Draft) ImageCount() int {
	return len(d.images)
}

func (d *Draft) clone() Draft {
	out := *d
	out.tags = d.Tags()
	out.images = d.Images()
	return out
}
