package bot

import (
	"testing"

	"github.com/m3rciful/bazarbot/internal/listing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetractRegistryRoundTrip(t *testing.T) {
	r := newRetractRegistry()
	refs := []listing.MessageRef{{ChatID: -100, MessageID: 5}, {ChatID: -100, MessageID: 6}}

	token := r.put(refs)
	require.NotEmpty(t, token)
	assert.Equal(t, refs, r.take(token))
}

func TestRetractRegistryTakeIsOneShot(t *testing.T) {
	r := newRetractRegistry()
	token := r.put([]listing.MessageRef{{ChatID: -100, MessageID: 5}})

	require.NotNil(t, r.take(token))
	assert.Nil(t, r.take(token))
}

func TestRetractRegistryUnknownToken(t *testing.T) {
	r := newRetractRegistry()
	assert.Nil(t, r.take("nope"))
}

func TestRetractRegistryTokensAreDistinct(t *testing.T) {
	r := newRetractRegistry()
	a := r.put([]listing.MessageRef{{ChatID: 1, MessageID: 1}})
	b := r.put([]listing.MessageRef{{ChatID: 2, MessageID: 2}})
	require.NotEqual(t, a, b)

	assert.Equal(t, []listing.MessageRef{{ChatID: 2, MessageID: 2}}, r.take(b))
	assert.Equal(t, []listing.MessageRef{{ChatID: 1, MessageID: 1}}, r.take(a))
}
