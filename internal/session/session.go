package session

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/checktree/internal/checktree"
	"github.com/dgallion1/checktree/internal/render"
	"github.com/dgallion1/checktree/internal/widget"
	"github.com/google/uuid"
)

// subscriberBuffer is the per-subscriber event backlog. Events beyond it
// are dropped for that subscriber.
const subscriberBuffer = 32

// Event is a change notification sent to subscribers.
type Event struct {
	Kind    widget.ChangeKind `json:"kind"`
	Path    string            `json:"path,omitempty"`
	Checked bool              `json:"checked,omitempty"`
	Query   string            `json:"query,omitempty"`

	// Collected holds the checked leaf values after the change.
	Collected []string  `json:"collected"`
	At        time.Time `json:"at"`
}

// Session is one live checkbox tree shared between requests.
type Session struct {
	mu sync.Mutex

	ID     string
	Title  string
	Pinned bool // Never evicted by Store.Cleanup

	CreatedAt time.Time
	UpdatedAt time.Time

	// ContentHash identifies the source data of the last load.
	ContentHash string

	w *widget.Widget

	subMu   sync.Mutex
	subs    map[int]chan Event
	nextSub int
	closed  bool
}

// NewID returns a random session ID.
func NewID() string { return uuid.NewString() }

// New creates a session with an empty tree. opts.OnChange, if set, is
// still called after the session has published the event.
func New(id, title string, opts widget.Options) *Session {
	now := time.Now()
	s := &Session{
		ID:        id,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
		subs:      make(map[int]chan Event),
	}
	next := opts.OnChange
	opts.OnChange = func(c widget.Change) {
		s.publish(s.event(c))
		if next != nil {
			next(c)
		}
	}
	s.w = widget.New(opts)
	return s
}

// Do runs fn with exclusive access to the session's widget.
func (s *Session) Do(fn func(w *widget.Widget) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := fn(s.w)
	s.UpdatedAt = time.Now()
	return err
}

// Source is parsed data ready to be loaded into a session.
type Source struct {
	Title   string
	Items   []checktree.Item
	Checked []string // Leaf values to preselect
	Hash    string   // ContentHashHex of the raw bytes, if known
}

// Load replaces the session's tree. On error the previous tree stays.
func (s *Session) Load(src Source) error {
	return s.Do(func(w *widget.Widget) error {
		if err := w.Load(src.Items); err != nil {
			return err
		}
		if len(src.Checked) > 0 {
			w.Select(src.Checked)
		}
		if src.Title != "" {
			s.Title = src.Title
		}
		s.ContentHash = src.Hash
		return nil
	})
}

// LastUpdate returns the time of the last operation.
func (s *Session) LastUpdate() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.UpdatedAt
}

// Hash returns the content hash of the last load.
func (s *Session) Hash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ContentHash
}

// event builds an Event for c. It runs inside Do, from the widget's
// OnChange callback.
func (s *Session) event(c widget.Change) Event {
	e := Event{
		Kind:      c.Kind,
		Query:     c.Query,
		Collected: s.w.Collect(),
		At:        time.Now(),
	}
	if c.Node != nil {
		e.Path = c.Node.Path()
		e.Checked = c.Node.Checked
	}
	return e
}

// Subscribe registers for change events. The returned function
// unsubscribes and closes the channel.
func (s *Session) Subscribe() (<-chan Event, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	ch := make(chan Event, subscriberBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

// Subscribers returns the number of active subscribers.
func (s *Session) Subscribers() int {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return len(s.subs)
}

func (s *Session) publish(e Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Close ends all subscriptions.
func (s *Session) Close() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// Snapshot is a read-only, JSON-safe copy of session state.
type Snapshot struct {
	ID        string            `json:"tree_id"`
	Title     string            `json:"title"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Query     string            `json:"query,omitempty"`
	Count     int               `json:"count"`
	Checked   []string          `json:"checked"`
	Nodes     []render.NodeView `json:"nodes"`
}

// Snapshot returns a JSON-safe copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:        s.ID,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Query:     s.w.Query(),
		Count:     s.w.Len(),
		Checked:   s.w.Collect(),
		Nodes:     render.Views(s.w.Roots()),
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
