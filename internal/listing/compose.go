package listing

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// rubles formats whole-ruble amounts with Russian digit grouping,
// matching the channel's established listing style.
var rubles = message.NewPrinter(language.Russian)

// Identity is the submitting user as rendered in the attribution line.
type Identity struct {
	ID        int64
	FirstName string
	LastName  string
}

// Compose renders the outbound listing text. The output is fully
// determined by the draft and the author: body, optional tag line,
// purpose hashtag with optional price clause, attribution link.
func Compose(d *Draft, author Identity) string {
	var b strings.Builder
	b.WriteString(d.Name)

	if tags := d.Tags(); len(tags) > 0 {
		b.WriteString("\n\n")
		for i, tag := range tags {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte('#')
			b.WriteString(tag)
		}
	}

	b.WriteString("\n\n#")
	b.WriteString(string(d.Purpose))
	if amount, ok := d.Price.Amount(); ok {
		b.WriteString(rubles.Sprintf(" за *%d ₽*", amount))
	}

	b.WriteString("\n\n")
	b.WriteString(authorLine(author))
	return b.String()
}

// authorLine links the author's display name to their account. Empty
// name parts are omitted from the join rather than padded.
func authorLine(author Identity) string {
	parts := make([]string, 0, 2)
	if author.FirstName != "" {
		parts = append(parts, author.FirstName)
	}
	if author.LastName != "" {
		parts = append(parts, author.LastName)
	}
	return fmt.Sprintf("[%s](tg://user?id=%d)", strings.Join(parts, " "), author.ID)
}
