package graph

import (
	"sync"
	"time"

	"entitygraph/internal/domain"
	"github.com/google/uuid"
)

// EventKind 表示变更事件类型。
type EventKind string

const (
	EventRelationshipAdded EventKind = "relationship_added"
	EventCleared           EventKind = "cleared"
)

// Event 在图被修改时同步发出。
type Event struct {
	ID           string               `json:"id"`
	Kind         EventKind            `json:"kind"`
	Relationship *domain.Relationship `json:"relationship,omitempty"`
	At           time.Time            `json:"at"`
}

func newEvent(kind EventKind, rel *domain.Relationship) Event {
	return Event{ID: uuid.NewString(), Kind: kind, Relationship: rel, At: time.Now().UTC()}
}

// Listener 接收图变更事件，实现方不应阻塞。
type Listener interface {
	OnGraphEvent(Event)
}

// ListenerFunc 让普通函数实现 Listener。
type ListenerFunc func(Event)

func (f ListenerFunc) OnGraphEvent(e Event) { f(e) }

type subscription struct {
	id       int
	listener Listener
}

type notifier struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
}

func newNotifier() *notifier {
	return &notifier{}
}

func (n *notifier) subscribe(l Listener) func() {
	if l == nil {
		return func() {}
	}
	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.subs = append(n.subs, subscription{id: id, listener: l})
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			for i, s := range n.subs {
				if s.id == id {
					n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// emit 在调用方 goroutine 中依次通知，不持有图的锁。
func (n *notifier) emit(e Event) {
	n.mu.Lock()
	subs := append([]subscription(nil), n.subs...)
	n.mu.Unlock()
	for _, s := range subs {
		s.listener.OnGraphEvent(e)
	}
}
