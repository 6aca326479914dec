package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeFreeListing(t *testing.T) {
	var d Draft
	d.SetPurpose(PurposeJustAsk)
	d.Name = "Looking for a ladder"
	d.ToggleTag("Д")

	got := Compose(&d, Identity{ID: 42, FirstName: "Ivan", LastName: "Petrov"})
	assert.Equal(t, "Looking for a ladder\n\n#Д\n\n#ПростоCпросить\n\n[Ivan Petrov](tg://user?id=42)", got)
}

func TestComposePriceClauseUsesRussianGrouping(t *testing.T) {
	var d Draft
	d.SetPurpose(PurposeBuySell)
	d.Price = PriceOf(150000)
	d.Name = "Grand piano"

	got := Compose(&d, Identity{ID: 7, FirstName: "Анна"})
	// The ru-RU group separator is a non-breaking space.
	assert.Equal(t, "Grand piano\n\n#КуплюПродам за *150\u00a0000 ₽*\n\n[Анна](tg://user?id=7)", got)
}

func TestComposeSmallPriceHasNoSeparator(t *testing.T) {
	var d Draft
	d.SetPurpose(PurposeRent)
	d.Price = PriceOf(500)
	d.Name = "Bike for the summer"

	got := Compose(&d, Identity{ID: 7, FirstName: "Анна"})
	assert.Contains(t, got, " за *500 ₽*")
}

func TestComposeTagsKeepInsertionOrder(t *testing.T) {
	var d Draft
	d.SetPurpose(PurposeGiveAway)
	d.Name = "Armchair"
	d.ToggleTag("Мебель")
	d.ToggleTag("Дом")
	d.ToggleTag("Мебель")
	d.ToggleTag("Мебель")

	got := Compose(&d, Identity{ID: 1, FirstName: "A"})
	assert.Contains(t, got, "\n\n#Дом #Мебель\n\n")
}

func TestAuthorLineOmitsEmptyParts(t *testing.T) {
	cases := []struct {
		name   string
		author Identity
		want   string
	}{
		{"both", Identity{ID: 1, FirstName: "Ivan", LastName: "Petrov"}, "[Ivan Petrov](tg://user?id=1)"},
		{"first only", Identity{ID: 2, FirstName: "Ivan"}, "[Ivan](tg://user?id=2)"},
		{"last only", Identity{ID: 3, LastName: "Petrov"}, "[Petrov](tg://user?id=3)"},
		{"none", Identity{ID: 4}, "[](tg://user?id=4)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, authorLine(tc.author))
		})
	}
}
