package discord

import (
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/patrickmn/go-cache"
)

type trackedMessage struct {
	content    string
	responseID string
}

// editTracker remembers received messages for a fixed window so that edits can be processed again.
// A nil *editTracker tracks nothing.
type editTracker struct {
	mutex sync.Mutex
	cache *cache.Cache
}

func newEditTracker(window time.Duration) *editTracker {
	return &editTracker{
		cache: cache.New(window, window),
	}
}

// track starts the window for the given message. A message already tracked keeps its original window.
func (t *editTracker) track(m *discordgo.Message) {
	if t == nil {
		return
	}

	// Add fails for a live entry, which is exactly the case to leave alone.
	_ = t.cache.Add(m.ID, &trackedMessage{content: m.Content}, cache.DefaultExpiration)
}

// edited reports whether m is still tracked and its content differs from what was last seen.
// The new content is recorded so the same edit is not processed twice.
func (t *editTracker) edited(m *discordgo.Message) bool {
	tracked := t.lookup(m.ID)
	if tracked == nil {
		return false
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	if tracked.content == m.Content {
		return false
	}
	tracked.content = m.Content
	return true
}

// setResponse records the bot's reply to the given message.
func (t *editTracker) setResponse(messageID, responseID string) {
	tracked := t.lookup(messageID)
	if tracked == nil {
		return
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()
	tracked.responseID = responseID
}

// response returns the bot's earlier reply to the given message.
func (t *editTracker) response(messageID string) (string, bool) {
	tracked := t.lookup(messageID)
	if tracked == nil {
		return "", false
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()
	return tracked.responseID, tracked.responseID != ""
}

func (t *editTracker) lookup(messageID string) *trackedMessage {
	if t == nil {
		return nil
	}

	v, ok := t.cache.Get(messageID)
	if !ok {
		return nil
	}
	return v.(*trackedMessage)
}
