package viewer

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/telisar/stardrift/internal/sim"
)

// Target is the injection surface of a live session. *sim.Sim satisfies it;
// InjectAction must be safe to call from any goroutine.
type Target interface {
	InjectAction(sim.ViewerAction)
}

// ActionRecorder persists an audit record of an injected action. The
// storage package implements it; recording is best-effort and never blocks
// a submission.
type ActionRecorder interface {
	RecordViewerAction(actionID, actionType, detail string) error
}

// Hub routes viewer submissions to live sessions by feed code. Codes are
// short so they fit in a HUD and in a chat message.
type Hub struct {
	logger   *log.Logger
	recorder ActionRecorder // May be nil when running without storage

	mu    sync.RWMutex
	feeds map[string]Target
}

// NewHub creates a hub. recorder may be nil.
func NewHub(logger *log.Logger, recorder ActionRecorder) *Hub {
	return &Hub{
		logger:   logger,
		recorder: recorder,
		feeds:    make(map[string]Target),
	}
}

// Register assigns a fresh feed code to a session and returns it.
func (h *Hub) Register(target Target) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	for {
		code := newFeedCode()
		if _, exists := h.feeds[code]; exists {
			continue
		}
		h.feeds[code] = target
		return code
	}
}

// Unregister removes a feed code. Safe to call with a code that is already
// gone.
func (h *Hub) Unregister(code string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.feeds, code)
}

// Count returns the number of live feeds.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.feeds)
}

// Submit normalizes one wire submission and injects it into the session
// behind the code. Returns the injected action so callers can echo its id
// back to the viewer. Unknown codes and unknown action types are errors;
// audit-log failures are logged and swallowed.
func (h *Hub) Submit(code string, f Fields) (sim.ViewerAction, error) {
	h.mu.RLock()
	target, ok := h.feeds[code]
	h.mu.RUnlock()
	if !ok {
		return sim.ViewerAction{}, fmt.Errorf("viewer: no live session for code %q", code)
	}

	action, err := Normalize(f)
	if err != nil {
		h.logger.Warn("dropping viewer submission", "code", code, "type", f.Type, "err", err)
		return sim.ViewerAction{}, err
	}

	target.InjectAction(action)

	if h.recorder != nil {
		if err := h.recorder.RecordViewerAction(action.ID, action.Type.String(), f.Detail()); err != nil {
			h.logger.Warn("viewer action audit write failed", "id", action.ID, "err", err)
		}
	}
	return action, nil
}

// newFeedCode returns a 6-character uppercase base32 code.
func newFeedCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// Timestamp fallback keeps registration working without entropy.
		return fmt.Sprintf("%06X", time.Now().UnixNano()&0xFFFFFF)
	}
	return base32.StdEncoding.EncodeToString(b)[:6]
}

// newActionID returns a unique-enough id for actions submitted without one.
func newActionID() string {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("act-%d", time.Now().UnixNano())
	}
	return "act-" + base32.StdEncoding.EncodeToString(b)[:8]
}
