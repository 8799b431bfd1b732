// Package evalstack implements component C5: the expression evaluation
// stack. It holds the stack mechanics (push/pop/peek, operator-priority
// reduction, and intermediate-constant freezing) described in §4.5; the
// arithmetic/string semantics that an operator actually performs belong to
// the interpreter (C8) and are supplied to ReduceAllReady as a callback.
package evalstack

import (
	"fmt"

	"justina/symbols"
	"justina/token"
)

// LevelKind is the kind of one eval-stack level (§3 "each level is one of
// {terminal, function-ref, variable-ref, constant (parsed or intermediate),
// generic name}").
type LevelKind int

const (
	LevelTerminal LevelKind = iota
	LevelFunctionRef
	LevelVariableRef
	LevelConstant
	LevelGenericName
)

// VarRef addresses a scalar variable slot. Store is nil for Local/Param
// scope, whose storage lives in the flowctrl function frame instead (§3);
// callers resolve those through the active frame using Index alone.
type VarRef struct {
	Scope symbols.Scope
	Store *symbols.ValueStore
	Index int
}

// Level is one eval-stack entry. Exactly the fields relevant to Kind are
// meaningful; the rest are zero. TokenOffset is the originating token
// arena byte offset, carried for error reporting (§3 "Levels carry the
// originating token address").
type Level struct {
	Kind        LevelKind
	TokenOffset int

	Terminal token.Terminal

	FuncKind  token.Kind // InternalFn, ExternalFn, or UserFn
	FuncIndex int

	Var VarRef

	ValueKind  symbols.ValueKind
	Long       int32
	Float      float32
	Str        *symbols.StringVal
	IsConstant bool // true for a parsed constant; false for an intermediate result

	Name string // GenericName payload
}

// Stack is the eval stack (C5). It grows and shrinks strictly within the
// bounds of the statement currently being evaluated; the interpreter
// records a watermark at call boundaries (§3 "the eval-stack watermark held
// by the caller") to know how much to unwind on return or error.
type Stack struct {
	levels []Level
}

// NewStack returns an empty eval stack.
func NewStack() *Stack { return &Stack{} }

// Len returns the number of levels currently on the stack.
func (s *Stack) Len() int { return len(s.levels) }

// PushTerminal pushes an operator or parenthesis level.
func (s *Stack) PushTerminal(t token.Terminal, tokenOffset int) {
	s.levels = append(s.levels, Level{Kind: LevelTerminal, Terminal: t, TokenOffset: tokenOffset})
}

// PushFunctionRef pushes a function-reference level (§4.2 "Function names
// ... push a function-ref level onto the eval stack").
func (s *Stack) PushFunctionRef(kind token.Kind, index, tokenOffset int) {
	s.levels = append(s.levels, Level{Kind: LevelFunctionRef, FuncKind: kind, FuncIndex: index, TokenOffset: tokenOffset})
}

// PushVariableRef pushes a variable-reference level.
func (s *Stack) PushVariableRef(ref VarRef, tokenOffset int) {
	s.levels = append(s.levels, Level{Kind: LevelVariableRef, Var: ref, TokenOffset: tokenOffset})
}

// PushLongConstant pushes a parsed or intermediate long constant.
func (s *Stack) PushLongConstant(v int32, isConstant bool, tokenOffset int) {
	s.levels = append(s.levels, Level{Kind: LevelConstant, ValueKind: symbols.Long, Long: v, IsConstant: isConstant, TokenOffset: tokenOffset})
}

// PushFloatConstant pushes a parsed or intermediate float constant.
func (s *Stack) PushFloatConstant(v float32, isConstant bool, tokenOffset int) {
	s.levels = append(s.levels, Level{Kind: LevelConstant, ValueKind: symbols.Float, Float: v, IsConstant: isConstant, TokenOffset: tokenOffset})
}

// PushStringConstant pushes a parsed or intermediate string constant. str
// may be nil, representing the empty string per the null-payload invariant.
func (s *Stack) PushStringConstant(str *symbols.StringVal, isConstant bool, tokenOffset int) {
	s.levels = append(s.levels, Level{Kind: LevelConstant, ValueKind: symbols.StringPtr, Str: str, IsConstant: isConstant, TokenOffset: tokenOffset})
}

// PushGenericName pushes a bare, not-yet-resolved identifier level.
func (s *Stack) PushGenericName(name string, tokenOffset int) {
	s.levels = append(s.levels, Level{Kind: LevelGenericName, Name: name, TokenOffset: tokenOffset})
}

// ErrStackUnderflow is returned by Pop/Peek when the requested depth
// exceeds what is on the stack.
var ErrStackUnderflow = fmt.Errorf("evalstack: stack underflow")

// Pop removes and returns the top n levels, in bottom-to-top order (so
// result[0] is the deepest of the n popped).
func (s *Stack) Pop(n int) ([]Level, error) {
	if n > len(s.levels) {
		return nil, ErrStackUnderflow
	}
	cut := len(s.levels) - n
	out := make([]Level, n)
	copy(out, s.levels[cut:])
	s.levels = s.levels[:cut]
	return out, nil
}

// Peek returns the level k positions from the top without popping it; k=0
// is the top, k=1 the next one down, matching §4.5's `peek(-k)` convention
// (a negative offset counted from the top).
func (s *Stack) Peek(k int) (Level, error) {
	idx := len(s.levels) - 1 - k
	if idx < 0 || idx >= len(s.levels) {
		return Level{}, ErrStackUnderflow
	}
	return s.levels[idx], nil
}

// Watermark returns the current depth, for a caller to record before a
// nested evaluation and restore (by truncating back to it) afterward.
func (s *Stack) Watermark() int { return len(s.levels) }

// TruncateTo discards every level above the given watermark, used when
// unwinding a function/eval frame on error or early return.
func (s *Stack) TruncateTo(mark int) {
	if mark < len(s.levels) {
		s.levels = s.levels[:mark]
	}
}

// Execute performs the arithmetic/string/comparison semantics of applying
// op to operands (one for prefix/postfix, two for infix), returning the
// resulting value level. Supplied by the interpreter (C8); evalstack has no
// builtin notion of how an operator combines values, only of when it is
// ready to run.
type Execute func(op token.Terminal, operands []Level) (Level, error)

// ReduceAllReady repeatedly collapses the top of the stack while the
// second-from-top level is an operator whose priority is greater than, or
// (for left-associative operators) equal to, the priority of pendingOp
// (§4.2 "while the second-from-top level is an operator whose priority ≥
// priority of the pending terminal (with right-to-left associativity
// handled), execute it").
func (s *Stack) ReduceAllReady(pendingOp token.Terminal, exec Execute) error {
	pendingInfo, pendingIsOp := LookupOp(pendingOp)
	for {
		if len(s.levels) < 2 {
			return nil
		}
		opLevel := s.levels[len(s.levels)-2]
		if opLevel.Kind != LevelTerminal {
			return nil
		}
		opInfo, ok := LookupOp(opLevel.Terminal)
		if !ok {
			return nil
		}
		ready := opInfo.Priority > pendingInfo.Priority ||
			(opInfo.Priority == pendingInfo.Priority && !pendingIsOp) ||
			(opInfo.Priority == pendingInfo.Priority && !opInfo.RightAssoc)
		if !ready {
			return nil
		}

		// Frame layout on the stack is [operand1, operator, operand2] for an
		// infix operator (operator sits second-from-top, below the operand
		// that was just pushed), or [operator, operand] for a pure prefix
		// operator. Pure-postfix operators (++/--) reduce immediately when
		// encountered rather than through this priority-driven path, since
		// they have no "next pending operator" to wait on; the interpreter
		// applies them directly.
		arity := 2
		if opInfo.IsPrefix && !opInfo.IsPostfix {
			arity = 1
		}
		frameSize := arity + 1
		if len(s.levels) < frameSize {
			return nil
		}

		operands := make([]Level, arity)
		if arity == 1 {
			operands[0] = s.levels[len(s.levels)-1]
		} else {
			operands[0] = s.levels[len(s.levels)-3]
			operands[1] = s.levels[len(s.levels)-1]
		}
		result, err := exec(opLevel.Terminal, operands)
		if err != nil {
			return err
		}

		newLen := len(s.levels) - frameSize
		s.levels = append(s.levels[:newLen], result)
	}
}

// MakeIntermediateConstant freezes the level at depth k (0 = top) into an
// owned value, cloning its string if the source is a non-constant variable
// reference (§4.5 "the canonical step to 'freeze' a parenthesized or
// about-to-be-consumed variable reference into an owned value, cloning
// strings when the source is a non-constant variable"). resolve supplies
// the current value of a VariableRef level (the stack itself does not know
// how to dereference storage); alloc is used to clone an owned string.
func (s *Stack) MakeIntermediateConstant(k int, resolve func(VarRef) (symbols.ValueKind, int32, float32, *symbols.StringVal, error), alloc *symbols.Allocator) error {
	idx := len(s.levels) - 1 - k
	if idx < 0 || idx >= len(s.levels) {
		return ErrStackUnderflow
	}
	lvl := &s.levels[idx]

	switch lvl.Kind {
	case LevelConstant:
		if !lvl.IsConstant && lvl.ValueKind == symbols.StringPtr {
			// Already an owned intermediate; nothing to freeze.
			return nil
		}
		if lvl.ValueKind == symbols.StringPtr {
			lvl.Str = alloc.CloneString(symbols.CatIntermediateString, lvl.Str)
		}
		lvl.IsConstant = false
		return nil
	case LevelVariableRef:
		kind, lv, fv, str, err := resolve(lvl.Var)
		if err != nil {
			return err
		}
		frozen := Level{Kind: LevelConstant, ValueKind: kind, Long: lv, Float: fv, TokenOffset: lvl.TokenOffset}
		if kind == symbols.StringPtr {
			frozen.Str = alloc.CloneString(symbols.CatIntermediateString, str)
		}
		*lvl = frozen
		return nil
	default:
		return fmt.Errorf("evalstack: cannot freeze level kind %d", lvl.Kind)
	}
}
