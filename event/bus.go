package event

import "simcore-go/x/ringbuf"

// dispatchMode selects how a publish reaches subscribers.
type dispatchMode uint8

const (
	// direct invokes subscribers synchronously inside the publish call.
	direct dispatchMode = iota
	// queued buffers the event until the next Process.
	queued
)

// entry is one queued event: a kind plus an optional payload copy.
type entry struct {
	kind    Kind
	payload Payload
	hasData bool
}

// Bus owns the dispatch queue, the subscriber registry and the lifecycle
// state. Create with NewBus, then Init before subscribing; Deinit returns
// the bus to a clean re-initializable state.
type Bus struct {
	cfg   Config
	init  bool
	subs  *registry
	queue *ringbuf.Buffer[entry]
}

// NewBus returns an uninitialized Bus sized by cfg.
func NewBus(cfg Config) *Bus {
	cfg.QueueSize = orDefault(cfg.QueueSize, DefaultQueueSize)
	cfg.MaxSubscribers = orDefault(cfg.MaxSubscribers, DefaultMaxSubscribers)
	return &Bus{
		cfg:   cfg,
		subs:  newRegistry(cfg.MaxSubscribers),
		queue: ringbuf.New[entry](cfg.QueueSize),
	}
}

// Init makes the bus operational. Re-initializing an initialized bus is a
// no-op.
func (b *Bus) Init() {
	if b.init {
		return
	}
	b.queue.Clear()
	b.init = true
}

// Deinit drops all queued events and subscribers and returns the bus to
// the uninitialized state. Calling it on an uninitialized bus is a no-op.
func (b *Bus) Deinit() {
	if !b.init {
		return
	}
	b.queue.Clear()
	b.subs.clear()
	b.init = false
}

// Initialized reports the lifecycle state.
func (b *Bus) Initialized() bool { return b.init }

// Subscribe registers fn for k with a user context handed back on every
// delivery. Re-subscribing the same callback updates the context in place
// without growing the list. It reports false on an invalid kind, a nil
// callback, an uninitialized bus, or a full list.
//
// Identity is the callback's code pointer: closures created from the same
// function literal count as the same subscriber.
func (b *Bus) Subscribe(k Kind, fn Callback, user any) bool {
	if !b.init || !k.Valid() || fn == nil {
		return false
	}
	return b.subs.add(k, fn, user)
}

// Unsubscribe removes fn from k's subscribers, preserving the order of
// the remainder. It reports false when fn was not registered, the kind is
// invalid, or the bus is uninitialized.
func (b *Bus) Unsubscribe(k Kind, fn Callback) bool {
	if !b.init || !k.Valid() || fn == nil {
		return false
	}
	return b.subs.remove(k, fn)
}

// UnsubscribeAll removes every subscriber of k.
func (b *Bus) UnsubscribeAll(k Kind) {
	if !b.init || !k.Valid() {
		return
	}
	b.subs.removeAll(k)
}

// SubscriberCount returns the number of subscribers registered for k.
func (b *Bus) SubscriberCount(k Kind) int {
	if !k.Valid() {
		return 0
	}
	return b.subs.count(k)
}

// Publish hands an event to k's subscribers via the queue. An invalid
// kind reports false. With no subscribers the event is acknowledged
// without queueing. On an uninitialized bus delivery happens
// synchronously instead of queueing. Otherwise the payload is copied into
// the queue and false is reported only when the queue is full.
func (b *Bus) Publish(k Kind, p *Payload) bool {
	if !k.Valid() {
		return false
	}
	if b.subs.count(k) == 0 {
		return true
	}
	if b.mode() == direct {
		b.deliver(k, p)
		return true
	}
	e := entry{kind: k}
	if p != nil {
		e.payload = *p
		e.hasData = true
	}
	return b.queue.Push(e)
}

// PublishImmediate delivers synchronously to the current subscribers,
// bypassing the queue regardless of lifecycle state. Invalid kinds are
// ignored.
func (b *Bus) PublishImmediate(k Kind, p *Payload) {
	if !k.Valid() {
		return
	}
	b.deliver(k, p)
}

// Process drains the queue, delivering every pending event in FIFO order.
// It is a no-op on an uninitialized bus.
func (b *Bus) Process() {
	if !b.init {
		return
	}
	for {
		e, ok := b.queue.Pop()
		if !ok {
			return
		}
		if e.hasData {
			b.deliver(e.kind, &e.payload)
		} else {
			b.deliver(e.kind, nil)
		}
	}
}

// QueueLen returns the number of pending events.
func (b *Bus) QueueLen() int { return b.queue.Len() }

func (b *Bus) mode() dispatchMode {
	if b.init {
		return queued
	}
	return direct
}

// deliver invokes the registered callbacks in subscription order. The
// payload is copied so callbacks cannot reach the caller's value. The
// list is read live: a callback that unsubscribes changes the remainder
// of the walk.
func (b *Bus) deliver(k Kind, p *Payload) {
	var data *Payload
	if p != nil {
		cp := *p
		data = &cp
	}
	for i := 0; ; i++ {
		s, ok := b.subs.at(k, i)
		if !ok {
			return
		}
		s.fn(k, data, s.user)
	}
}
