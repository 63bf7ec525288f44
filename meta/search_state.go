package meta

import (
	"sync"

	"github.com/coregx/pyrex/nfa"
)

// searchStatePool manages PikeVM scratch for concurrent searches on one
// Engine. Each state is used by one goroutine at a time.
type searchStatePool struct {
	pool sync.Pool
	vm   *nfa.PikeVM
}

func newSearchStatePool(vm *nfa.PikeVM) *searchStatePool {
	p := &searchStatePool{vm: vm}
	p.pool = sync.Pool{
		New: func() any {
			state := nfa.NewPikeVMState()
			p.vm.InitState(state)
			return state
		},
	}
	return p
}

func (p *searchStatePool) get() *nfa.PikeVMState {
	return p.pool.Get().(*nfa.PikeVMState)
}

func (p *searchStatePool) put(state *nfa.PikeVMState) {
	if state == nil {
		return
	}
	p.pool.Put(state)
}
