package event

import "reflect"

// subscriber pairs a callback with its user context. id is the callback's
// code pointer, the identity used for idempotent re-subscribe and for
// unsubscribe.
type subscriber struct {
	fn   Callback
	id   uintptr
	user any
}

// registry holds per-kind bounded subscriber lists in registration order.
// Removal shifts the remainder left so order is preserved.
type registry struct {
	max   int
	lists map[Kind][]subscriber
}

func newRegistry(maxPerKind int) *registry {
	return &registry{
		max:   maxPerKind,
		lists: make(map[Kind][]subscriber, KindCount),
	}
}

func callbackID(fn Callback) uintptr { return reflect.ValueOf(fn).Pointer() }

// add registers fn, or refreshes the stored user context when fn is
// already present. It reports false only when the list is full.
func (r *registry) add(k Kind, fn Callback, user any) bool {
	id := callbackID(fn)
	list := r.lists[k]
	for i := range list {
		if list[i].id == id {
			list[i].user = user
			return true
		}
	}
	if len(list) >= r.max {
		return false
	}
	if list == nil {
		list = make([]subscriber, 0, r.max)
	}
	r.lists[k] = append(list, subscriber{fn: fn, id: id, user: user})
	return true
}

// remove drops fn from the kind's list, reporting whether it was present.
func (r *registry) remove(k Kind, fn Callback) bool {
	id := callbackID(fn)
	list := r.lists[k]
	for i := range list {
		if list[i].id == id {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = subscriber{}
			r.lists[k] = list[:len(list)-1]
			return true
		}
	}
	return false
}

func (r *registry) removeAll(k Kind) { delete(r.lists, k) }

func (r *registry) count(k Kind) int { return len(r.lists[k]) }

// at returns the i-th subscriber. The list is read live by delivery
// walks, so mutation during a walk affects the remainder.
func (r *registry) at(k Kind, i int) (subscriber, bool) {
	list := r.lists[k]
	if i >= len(list) {
		return subscriber{}, false
	}
	return list[i], true
}

func (r *registry) clear() { clear(r.lists) }
