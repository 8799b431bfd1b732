package flowctrl

import "justina/symbols"

// BindByValue copies a caller value into a fresh owned local slot,
// duplicating string payloads (§4.2 "Parameters bound by value: copy the
// value (and duplicate string payloads)"). For a StringPtr value the slot's
// 4-byte payload holds a handle into strings (the same convention the
// token arena's Constant.StringRef and a scalar variable slot's StringPtr
// payload already use), so the clone survives independently of the
// caller's copy.
func BindByValue(alloc *symbols.Allocator, strings *symbols.StringTable, kind symbols.ValueKind, long int32, floatVal float32, str *symbols.StringVal) Slot {
	var owned symbols.Slot
	owned.Attr = symbols.Attr{Kind: kind, Scope: symbols.ScopeParam}
	switch kind {
	case symbols.Long:
		owned.SetLong(long)
	case symbols.Float:
		owned.SetFloat(floatVal)
	case symbols.StringPtr:
		clone := alloc.CloneString(symbols.CatLocalVarString, str)
		owned.SetLong(strings.Put(clone))
	}
	return Slot{IsRef: false, Owned: owned}
}

// BindByRef binds a parameter directly to the caller's variable slot,
// storing a back-pointer plus scope (§4.2 "Parameters bound by reference:
// store a back-pointer plus the source variable's type address").
func BindByRef(store *symbols.ValueStore, index int, scope symbols.Scope) Slot {
	return Slot{IsRef: true, RefStore: store, RefIndex: index, RefScope: scope}
}

// ResolveSlot returns the value-bearing slot a parameter or local currently
// refers to: its own owned storage, or (for by-reference bindings) the
// caller's slot.
func ResolveSlot(s *Slot) *symbols.Slot {
	if s.IsRef {
		return s.RefStore.Slot(s.RefIndex)
	}
	return &s.Owned
}

// PushFunctionCall opens a new function-call frame with localCount fresh
// local slots (parameters and locals together occupy this area; the
// parser's declaration pass already assigned each a stable index within
// it). evalWatermark is the caller's eval-stack depth at the call site, and
// returnOffset is the token arena offset to resume at after the callee
// returns.
func (s *Stack) PushFunctionCall(funcIndex, returnOffset, evalWatermark, localCount int, errTrapOffset int) {
	s.Push(Frame{
		Kind:          FrameFunctionCall,
		FuncIndex:     funcIndex,
		ReturnOffset:  returnOffset,
		Locals:        make([]Slot, localCount),
		EvalWatermark: evalWatermark,
		ErrTrapOffset: errTrapOffset,
	})
}

// PopFunctionCall closes the innermost frame if it is a function-call frame;
// otherwise it leaves the stack unchanged and reports false. It does not
// release the frame's owned local strings/arrays: flowctrl holds no
// reference to the allocator, so the caller releases them via
// symbols.Allocator.Release on each Locals entry's owned string.
func (s *Stack) PopFunctionCall() (Frame, bool) {
	if f := s.Top(); f == nil || f.Kind != FrameFunctionCall {
		return Frame{}, false
	}
	return s.Pop()
}
