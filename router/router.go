// Package router provides the battle core's synchronous, in-process
// publish/subscribe bus (spec.md §4.9). It decouples the mechanical layer
// (session, status manager, resolver) from visual-effects and logging
// subscribers: the core emits, subscribers only observe.
//
// This is a deliberately narrower cousin of the teacher's events.Bus
// (github.com/KirkDiggler/rpg-toolkit/events): that bus dispatches
// arbitrary typed events via reflection so any rulebook can define new event
// shapes. The battle core instead has a fixed, closed set of outbound
// topics (spec.md §6) with concrete payload structs, so reflection buys
// nothing here — a map from Topic to its subscribed handlers keeps the same synchronous,
// handler-returns-error-and-is-swallowed contract without the dispatch
// overhead or the type-assertion ceremony a generic bus would need at every
// call site. Depth-limiting and deferred-action replay (teacher features
// aimed at rulebooks that re-publish events from within a handler) are
// dropped: this core's subscribers are observation-only and never publish
// back (spec.md §5: "Observers must treat combatants ... as read-only").
package router

import (
	"fmt"
)

// Topic names a semantic channel subscribers can listen on. These match
// spec.md §6's outbound topics table exactly.
type Topic string

// The battle core's closed set of outbound topics.
const (
	TopicHit           Topic = "battle.hit"
	TopicHeal          Topic = "battle.heal"
	TopicStatusApply   Topic = "battle.status_apply"
	TopicStatusTick    Topic = "battle.status_tick"
	TopicStatusExpire  Topic = "battle.status_expire"
)

// Handler observes a published payload. A returned error is logged and
// swallowed by the router (spec.md §7, "Subscriber errors") — it never
// interrupts the mechanical pipeline and never reaches the publisher.
type Handler func(payload any) error

// ErrorSink receives swallowed handler errors, e.g. for test assertions or
// forwarding into battlelog. A nil sink silently discards errors, which is
// the default via New().
type ErrorSink func(topic Topic, err error)

// Router is the synchronous pub/sub bus. The zero value is not usable; use
// New.
type Router struct {
	handlers map[Topic][]subscription
	nextID   int
	onError  ErrorSink
}

type subscription struct {
	id      int
	handler Handler
}

// New constructs an empty Router. onError may be nil.
func New(onError ErrorSink) *Router {
	return &Router{
		handlers: make(map[Topic][]subscription),
		onError:  onError,
	}
}

// Subscribe registers handler for topic and returns a subscription id usable
// with Unsubscribe.
func (r *Router) Subscribe(topic Topic, handler Handler) int {
	r.nextID++
	id := r.nextID
	r.handlers[topic] = append(r.handlers[topic], subscription{id: id, handler: handler})
	return id
}

// Unsubscribe removes a previously registered handler. Unknown ids are a
// no-op, matching the timeline's "unknown ids are no-ops" failure semantics
// elsewhere in the core.
func (r *Router) Unsubscribe(topic Topic, id int) {
	subs := r.handlers[topic]
	for i, s := range subs {
		if s.id == id {
			r.handlers[topic] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// Clear removes every subscription. Useful between tests.
func (r *Router) Clear() {
	r.handlers = make(map[Topic][]subscription)
}

// Publish synchronously invokes every handler subscribed to topic, in
// registration order. Handler errors are reported to onError and otherwise
// swallowed; they never propagate to the caller.
func (r *Router) Publish(topic Topic, payload any) {
	for _, s := range r.handlers[topic] {
		if err := s.handler(payload); err != nil {
			if r.onError != nil {
				r.onError(topic, fmt.Errorf("router: handler for %s failed: %w", topic, err))
			}
		}
	}
}

// HitPayload is published on TopicHit.
type HitPayload struct {
	Actor    string
	Target   string
	SkillID  string // empty if not skill-originated
	Damage   int
	Element  string
	IsEnemy  bool
}

// HealPayload is published on TopicHeal.
type HealPayload struct {
	Actor   string
	Target  string
	SkillID string
	Heal    int
	Element string
	IsEnemy bool
}

// StatusApplyPayload is published on TopicStatusApply.
type StatusApplyPayload struct {
	Owner   string
	Status  string
	Kind    string // dot | hot | buff | debuff
	Element string
	IsEnemy bool
}

// StatusTickPayload is published on TopicStatusTick.
type StatusTickPayload struct {
	Owner    string
	Status   string
	Amount   int
	TickKind string // e.g. "burn", "regen"
	Kind     string // dot | hot
	Element  string
	IsEnemy  bool
}

// StatusExpirePayload is published on TopicStatusExpire.
type StatusExpirePayload struct {
	Owner   string
	Status  string
	IsEnemy bool
}
