// Package lifecycle exposes journal change notifications as a lifecycle.Source,
// so they can be consumed next to other event sources of an application.
package lifecycle

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/journal/pkg/core"
)

// noteSource forwards the events of Service.Watch whose type is wanted.
type noteSource struct {
	events <-chan core.Event
	types  []core.EventType
	out    chan lifecycle.Event
}

// NewSource wraps the channel returned by Service.Watch. With no types every
// event is forwarded; otherwise only events of the listed types are.
// The output channel is closed when events is closed or ctx is done.
func NewSource(events <-chan core.Event, types ...core.EventType) lifecycle.Source {
	return &noteSource{
		events: events,
		types:  types,
		out:    make(chan lifecycle.Event),
	}
}

// ParseEventTypes converts names such as "reload" or "DELETE" to event types.
func ParseEventTypes(names []string) ([]core.EventType, error) {
	known := []core.EventType{core.EventCreate, core.EventModify, core.EventDelete, core.EventReload}
	types := make([]core.EventType, 0, len(names))
	for _, name := range names {
		t := core.EventType(strings.ToUpper(strings.TrimSpace(name)))
		if !slices.Contains(known, t) {
			return nil, fmt.Errorf("unknown event type %q (want create, modify, delete or reload)", name)
		}
		types = append(types, t)
	}
	return types, nil
}

func (s *noteSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *noteSource) wants(e core.Event) bool {
	return len(s.types) == 0 || slices.Contains(s.types, e.Type)
}

func (s *noteSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if !s.wants(e) {
					continue
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
