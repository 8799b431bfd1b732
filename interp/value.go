package interp

import (
	"justina/evalstack"
	"justina/flowctrl"
	"justina/symbols"
)

// activeLocals returns the Locals slice of the innermost open function-call
// frame, used to resolve VarRef entries for Local/Param scope (whose
// storage lives in a flowctrl frame rather than a symbols.ValueStore, §3).
func (it *Interpreter) activeLocals() []flowctrl.Slot {
	depth, ok := it.Flow.InnermostFunctionCall()
	if !ok {
		return nil
	}
	return it.Flow.At(depth).Locals
}

// resolveSlot returns a pointer to the symbols.Slot a VarRef currently
// addresses, following a by-reference local binding to the caller's slot
// if necessary (§9 "Slot = Owned(Value) | Ref{...}").
func (it *Interpreter) resolveSlot(ref evalstack.VarRef) *symbols.Slot {
	if ref.Store != nil {
		return ref.Store.Slot(ref.Index)
	}
	locals := it.activeLocals()
	if ref.Index < 0 || ref.Index >= len(locals) {
		return nil
	}
	return flowctrl.ResolveSlot(&locals[ref.Index])
}

// resolveOperand reads the current value of any eval-stack level, whether
// it is already a frozen constant or still a live variable reference,
// returning the (kind, long, float, string) view Execute needs.
func (it *Interpreter) resolveOperand(lvl evalstack.Level) (symbols.ValueKind, int32, float32, *symbols.StringVal, error) {
	switch lvl.Kind {
	case evalstack.LevelConstant:
		return lvl.ValueKind, lvl.Long, lvl.Float, lvl.Str, nil
	case evalstack.LevelVariableRef:
		slot := it.resolveSlot(lvl.Var)
		if slot == nil {
			return 0, 0, 0, nil, Err(ErrOperandTypeMismatch, lvl.TokenOffset, "undefined variable reference")
		}
		kind := slot.Attr.Kind
		if kind == symbols.StringPtr {
			return kind, 0, 0, it.Vars.Strings.Get(slot.AsLong()), nil
		}
		if kind == symbols.Float {
			return kind, 0, slot.AsFloat(), nil, nil
		}
		return kind, slot.AsLong(), 0, nil, nil
	default:
		return 0, 0, 0, nil, Err(ErrOperandTypeMismatch, lvl.TokenOffset, "operand is not a value")
	}
}

// writeVariable stores a new value into the slot a VarRef addresses,
// releasing any previously-owned string first (§4.4 "Heap objects ...
// released when (a) the slot is overwritten").
func (it *Interpreter) writeVariable(ref evalstack.VarRef, kind symbols.ValueKind, long int32, float float32, str *symbols.StringVal) {
	slot := it.resolveSlot(ref)
	if slot == nil {
		return
	}
	if slot.Attr.Kind == symbols.StringPtr {
		it.Vars.Alloc.Release(it.Vars.Strings.Get(slot.AsLong()))
	}
	slot.Attr.Kind = kind
	switch kind {
	case symbols.StringPtr:
		cat := symbols.CatGlobalVarString
		switch ref.Scope {
		case symbols.ScopeUser:
			cat = symbols.CatUserVarString
		case symbols.ScopeLocal, symbols.ScopeParam:
			cat = symbols.CatLocalVarString
		}
		clone := it.Vars.Alloc.CloneString(cat, str)
		slot.SetLong(it.Vars.Strings.Put(clone))
	case symbols.Float:
		slot.SetFloat(float)
	default:
		slot.SetLong(long)
	}
}
