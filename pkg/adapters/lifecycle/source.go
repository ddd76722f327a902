// Package lifecycle exposes store events as a lifecycle.Source so a
// supervisor can react to note and snackbar changes.
package lifecycle

import (
	"context"
	"sync"

	"github.com/aretw0/lifecycle"

	"github.com/imran-moonward/mynote/pkg/core"
)

type eventSource struct {
	inputs []<-chan core.Event
	out    chan lifecycle.Event
}

// NewSource merges the given event streams (typically Watch channels of the
// note store, the snackbar and the fs adapter) into one lifecycle.Source.
// Events keeps delivering until every input is closed or Start's ctx ends.
func NewSource(inputs ...<-chan core.Event) lifecycle.Source {
	return &eventSource{
		inputs: inputs,
		out:    make(chan lifecycle.Event),
	}
}

func (s *eventSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *eventSource) Start(ctx context.Context) error {
	var wg sync.WaitGroup
	for _, in := range s.inputs {
		wg.Add(1)
		lifecycle.Go(ctx, func(ctx context.Context) error {
			defer wg.Done()
			return forward(ctx, in, s.out)
		})
	}
	go func() {
		wg.Wait()
		close(s.out)
	}()
	return nil
}

// forward copies events until in is closed or ctx is done.
// core.Event satisfies lifecycle.Event through its String method.
func forward(ctx context.Context, in <-chan core.Event, out chan<- lifecycle.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-in:
			if !ok {
				return nil
			}
			select {
			case out <- e:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
