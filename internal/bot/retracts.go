package bot

import (
	"strconv"
	"sync"

	"github.com/m3rciful/bazarbot/internal/listing"
)

// retractRegistry holds published records just long enough for their
// retraction control to be invoked. Callback payloads are limited to a
// few dozen bytes, so the control carries a short token instead of the
// message identifiers themselves.
type retractRegistry struct {
	mu   sync.Mutex
	seq  uint64
	refs map[string][]listing.MessageRef
}

func newRetractRegistry() *retractRegistry {
	return &retractRegistry{refs: make(map[string][]listing.MessageRef)}
}

func (r *retractRegistry) put(refs []listing.MessageRef) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	token := strconv.FormatUint(r.seq, 36)
	r.refs[token] = refs
	return token
}

// take removes and returns the record for a token. Unknown tokens yield
// nil, which keeps repeated presses of the same control harmless.
func (r *retractRegistry) take(token string) []listing.MessageRef {
	r.mu.Lock()
	defer r.mu.Unlock()
	refs, ok := r.refs[token]
	if !ok {
		return nil
	}
	delete(r.refs, token)
	return refs
}
