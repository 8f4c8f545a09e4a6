// bus.go
package bus

import (
	"context"
	"sync"
	"sync/atomic"
)

// -----------------------------------------------------------------------------
// Tokens + Topics
// -----------------------------------------------------------------------------

// Token is a single element in a topic path. Tokens must be comparable;
// in practice strings and small integers.
type Token any

// Topic is a sequence of tokens.
type Topic []Token

const (
	wildOne = "+" // exactly one level
	wildAll = "#" // zero or more trailing levels
)

// T builds a topic, panicking on tokens that cannot be used as map keys.
func T(tokens ...Token) Topic {
	for _, tok := range tokens {
		switch tok.(type) {
		case string, bool,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64:
		default:
			panic("bus: non-comparable topic token")
		}
	}
	return Topic(tokens)
}

func (t Topic) Len() int       { return len(t) }
func (t Topic) At(i int) Token { return t[i] }
func (t Topic) Append(tokens ...Token) Topic {
	out := make(Topic, 0, len(t)+len(tokens))
	out = append(out, t...)
	return append(out, T(tokens...)...)
}

// -----------------------------------------------------------------------------
// Message
// -----------------------------------------------------------------------------

type Message struct {
	Topic    Topic
	Payload  any
	Retained bool
	ReplyTo  Topic
}

// CanReply reports whether the sender asked for a reply.
func (m *Message) CanReply() bool { return m != nil && len(m.ReplyTo) > 0 }

// -----------------------------------------------------------------------------
// Subscription
// -----------------------------------------------------------------------------

type Subscription struct {
	topic  Topic
	ch     chan *Message
	conn   *Connection
	closed bool // guarded by conn.mu
}

func (s *Subscription) Topic() Topic             { return s.topic }
func (s *Subscription) Channel() <-chan *Message { return s.ch }
func (s *Subscription) Unsubscribe()             { s.conn.Unsubscribe(s) }

// -----------------------------------------------------------------------------
// Trie nodes
// -----------------------------------------------------------------------------

// subNode indexes subscriptions by their (possibly wildcarded) pattern.
type subNode struct {
	children map[Token]*subNode
	subs     []*Subscription
}

// retNode indexes retained messages by concrete topic.
type retNode struct {
	children map[Token]*retNode
	msg      *Message
}

// -----------------------------------------------------------------------------
// Bus
// -----------------------------------------------------------------------------

type Bus struct {
	mu       sync.Mutex
	subs     *subNode
	retained *retNode
	qLen     int
	replySeq uint32
}

// NewBus creates a new bus with the given subscription queue length.
func NewBus(queueLen int) *Bus {
	if queueLen <= 0 {
		queueLen = 8
	}
	return &Bus{
		subs:     &subNode{},
		retained: &retNode{},
		qLen:     queueLen,
	}
}

// NewMessage is a convenience constructor.
func (b *Bus) NewMessage(topic Topic, payload any, retained bool) *Message {
	return &Message{Topic: topic, Payload: payload, Retained: retained}
}

// Publish delivers a message to all matching subscribers and updates the
// retained store when msg.Retained is set. A retained message with a nil
// payload clears the stored value.
func (b *Bus) Publish(msg *Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if msg.Retained {
		b.storeRetained(msg)
	}

	var hits []*Subscription
	collectSubs(b.subs, msg.Topic, &hits)
	for _, sub := range hits {
		deliver(sub, msg)
	}
}

// deliver never blocks: when the queue is full the oldest entry is dropped.
func deliver(sub *Subscription, msg *Message) {
	select {
	case sub.ch <- msg:
		return
	default:
	}
	select {
	case <-sub.ch:
	default:
	}
	select {
	case sub.ch <- msg:
	default:
	}
}

func collectSubs(n *subNode, topic Topic, out *[]*Subscription) {
	if n == nil {
		return
	}
	if hash := n.children[wildAll]; hash != nil {
		*out = append(*out, hash.subs...)
	}
	if len(topic) == 0 {
		*out = append(*out, n.subs...)
		return
	}
	if n.children == nil {
		return
	}
	collectSubs(n.children[topic[0]], topic[1:], out)
	if plus := n.children[wildOne]; plus != nil {
		collectSubs(plus, topic[1:], out)
	}
}

func (b *Bus) storeRetained(msg *Message) {
	n := b.retained
	path := make([]*retNode, 0, len(msg.Topic))
	for _, tok := range msg.Topic {
		if n.children == nil {
			if msg.Payload == nil {
				return
			}
			n.children = make(map[Token]*retNode)
		}
		child := n.children[tok]
		if child == nil {
			if msg.Payload == nil {
				return
			}
			child = &retNode{}
			n.children[tok] = child
		}
		path = append(path, n)
		n = child
	}
	if msg.Payload != nil {
		n.msg = msg
		return
	}
	n.msg = nil
	for i := len(msg.Topic) - 1; i >= 0; i-- {
		parent := path[i]
		child := parent.children[msg.Topic[i]]
		if child.msg != nil || len(child.children) > 0 {
			break
		}
		delete(parent.children, msg.Topic[i])
	}
}

func collectRetained(n *retNode, pattern Topic, out *[]*Message) {
	if n == nil {
		return
	}
	if len(pattern) == 0 {
		if n.msg != nil {
			*out = append(*out, n.msg)
		}
		return
	}
	switch pattern[0] {
	case wildAll:
		if n.msg != nil {
			*out = append(*out, n.msg)
		}
		for _, c := range n.children {
			collectRetained(c, pattern, out)
		}
	case wildOne:
		for _, c := range n.children {
			collectRetained(c, pattern[1:], out)
		}
	default:
		collectRetained(n.children[pattern[0]], pattern[1:], out)
	}
}

func (b *Bus) addSubscription(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.subs
	for _, tok := range sub.topic {
		if n.children == nil {
			n.children = make(map[Token]*subNode)
		}
		child := n.children[tok]
		if child == nil {
			child = &subNode{}
			n.children[tok] = child
		}
		n = child
	}
	n.subs = append(n.subs, sub)

	var ret []*Message
	collectRetained(b.retained, sub.topic, &ret)
	for _, m := range ret {
		deliver(sub, m)
	}
}

func (b *Bus) removeSubscription(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.subs
	path := make([]*subNode, 0, len(sub.topic))
	for _, tok := range sub.topic {
		child := n.children[tok]
		if child == nil {
			return
		}
		path = append(path, n)
		n = child
	}
	for i, s := range n.subs {
		if s == sub {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			break
		}
	}
	for i := len(sub.topic) - 1; i >= 0; i-- {
		parent := path[i]
		child := parent.children[sub.topic[i]]
		if len(child.subs) > 0 || len(child.children) > 0 {
			break
		}
		delete(parent.children, sub.topic[i])
	}
}

func (b *Bus) nextReplyTopic(connID string) Topic {
	seq := atomic.AddUint32(&b.replySeq, 1)
	return T("_reply", connID, int(seq))
}

// -----------------------------------------------------------------------------
// Connection
// -----------------------------------------------------------------------------

type Connection struct {
	bus  *Bus
	id   string
	mu   sync.Mutex
	subs []*Subscription
}

// NewConnection creates a new connection bound to this bus.
func (b *Bus) NewConnection(id string) *Connection {
	return &Connection{bus: b, id: id}
}

func (c *Connection) ID() string { return c.id }

func (c *Connection) NewMessage(topic Topic, payload any, retained bool) *Message {
	return c.bus.NewMessage(topic, payload, retained)
}

func (c *Connection) Publish(msg *Message) { c.bus.Publish(msg) }

// Subscribe registers a subscription owned by this connection. Matching
// retained messages are queued before Subscribe returns.
func (c *Connection) Subscribe(topic Topic) *Subscription {
	sub := &Subscription{
		topic: topic,
		ch:    make(chan *Message, c.bus.qLen),
		conn:  c,
	}
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
	c.bus.addSubscription(sub)
	return sub
}

// Unsubscribe removes the subscription and closes its channel. Safe to call
// more than once.
func (c *Connection) Unsubscribe(sub *Subscription) {
	c.mu.Lock()
	if sub.closed {
		c.mu.Unlock()
		return
	}
	sub.closed = true
	for i, s := range c.subs {
		if s == sub {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	c.bus.removeSubscription(sub)
	close(sub.ch)
}

// Disconnect closes all subscriptions owned by the connection.
func (c *Connection) Disconnect() {
	c.mu.Lock()
	subs := append([]*Subscription(nil), c.subs...)
	c.mu.Unlock()
	for _, s := range subs {
		c.Unsubscribe(s)
	}
}

// -----------------------------------------------------------------------------
// Request / Reply
// -----------------------------------------------------------------------------

// Request assigns a fresh reply topic to msg, subscribes to it and publishes
// msg. The caller owns the returned subscription.
func (c *Connection) Request(msg *Message) *Subscription {
	msg.ReplyTo = c.bus.nextReplyTopic(c.id)
	sub := c.Subscribe(msg.ReplyTo)
	c.Publish(msg)
	return sub
}

// RequestWait publishes msg and waits for the first reply or ctx expiry.
func (c *Connection) RequestWait(ctx context.Context, msg *Message) (*Message, error) {
	sub := c.Request(msg)
	defer c.Unsubscribe(sub)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case reply, ok := <-sub.Channel():
		if !ok {
			return nil, context.Canceled
		}
		return reply, nil
	}
}

// Reply publishes payload on req.ReplyTo. It is a no-op for messages that
// did not ask for a reply.
func (c *Connection) Reply(req *Message, payload any, retained bool) {
	if !req.CanReply() {
		return
	}
	c.Publish(c.NewMessage(req.ReplyTo, payload, retained))
}
