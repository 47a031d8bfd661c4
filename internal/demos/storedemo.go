package demos

import (
	"github.com/suryaravikumar-space/loopkit/internal/loop"
	"github.com/suryaravikumar-space/loopkit/internal/store"
)

type todoAction struct {
	Kind string
	Text string
}

type todoState struct {
	Items []string
}

func todoReducer(s todoState, a todoAction) todoState {
	switch a.Kind {
	case "add":
		next := make([]string, len(s.Items)+1)
		copy(next, s.Items)
		next[len(s.Items)] = a.Text
		return todoState{Items: next}
	case "clear":
		return todoState{}
	default:
		return s
	}
}

func runMiniStore(t *Transcript, lp *loop.Loop) error {
	lp.Post(func() {
		logger := func(s *store.Store[todoState, todoAction], next store.Dispatch[todoAction]) store.Dispatch[todoAction] {
			return func(a todoAction) error {
				t.Printf("middleware: dispatching %s %q", a.Kind, a.Text)
				err := next(a)
				t.Printf("middleware: state now has %d item(s)", len(s.GetState().Items))
				return err
			}
		}

		s := store.New(todoReducer, todoState{}, logger)

		t.Section("subscribe and dispatch")
		unsub := s.Subscribe(func(st todoState) {
			t.Printf("subscriber sees: %v", st.Items)
		})
		s.Dispatch(todoAction{Kind: "add", Text: "write demo"})
		s.Dispatch(todoAction{Kind: "add", Text: "ship demo"})

		t.Section("reentrancy")
		var reentrantErr error
		unsubTrap := s.Subscribe(func(todoState) {
			reentrantErr = s.Dispatch(todoAction{Kind: "add", Text: "sneaky"})
		})
		s.Dispatch(todoAction{Kind: "clear"})
		t.Printf("dispatch from subscriber: %v", reentrantErr)
		unsubTrap()

		t.Section("unsubscribe")
		unsub()
		s.Dispatch(todoAction{Kind: "add", Text: "quiet update"})
		t.Printf("final state: %v", s.GetState().Items)

		t.Printf("takeaway: one-way data flow with pure reducers; reentrancy is an error, not a feature")
	})
	return nil
}
