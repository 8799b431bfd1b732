package parser

// TokenClass is the bit identifying the class of the last accepted token,
// consulted by the railroad-track validator before accepting the next one
// (§4.1 "tracks the token class of the last accepted token as a bit in a
// small set").
type TokenClass int

const (
	ClassNone TokenClass = iota // line start / fresh statement
	ClassOperator
	ClassComma
	ClassSemicolon
	ClassKeyword
	ClassGeneric
	ClassNumber
	ClassAlphaConst
	ClassRightParen
	ClassFunctionName
	ClassLeftParen
	ClassVariable
)

// successorTable lists, for each TokenClass, the set of classes legally
// following it. A class not present in the destination's set triggers a
// railroad-track violation.
var successorTable = map[TokenClass]map[TokenClass]bool{
	ClassNone: {
		ClassKeyword: true, ClassGeneric: true, ClassFunctionName: true,
		ClassVariable: true, ClassNumber: true, ClassAlphaConst: true,
		ClassLeftParen: true, ClassOperator: true, // unary prefix
	},
	ClassOperator: {
		ClassGeneric: true, ClassFunctionName: true, ClassVariable: true,
		ClassNumber: true, ClassAlphaConst: true, ClassLeftParen: true,
		ClassOperator: true, // unary prefix chaining (e.g. --x, !!x)
	},
	ClassComma: {
		ClassGeneric: true, ClassFunctionName: true, ClassVariable: true,
		ClassNumber: true, ClassAlphaConst: true, ClassLeftParen: true,
		ClassOperator: true,
	},
	ClassSemicolon: {
		ClassKeyword: true, ClassGeneric: true, ClassFunctionName: true,
		ClassVariable: true, ClassNumber: true, ClassAlphaConst: true,
		ClassLeftParen: true, ClassOperator: true, ClassSemicolon: true, // empty statement
	},
	ClassKeyword: {
		ClassGeneric: true, ClassFunctionName: true, ClassVariable: true,
		ClassNumber: true, ClassAlphaConst: true, ClassLeftParen: true,
		ClassOperator: true, ClassSemicolon: true,
	},
	ClassGeneric: {
		ClassOperator: true, ClassComma: true, ClassSemicolon: true,
		ClassRightParen: true,
	},
	ClassNumber: {
		ClassOperator: true, ClassComma: true, ClassSemicolon: true,
		ClassRightParen: true,
	},
	ClassAlphaConst: {
		ClassOperator: true, ClassComma: true, ClassSemicolon: true,
		ClassRightParen: true,
	},
	ClassRightParen: {
		ClassOperator: true, ClassComma: true, ClassSemicolon: true,
		ClassRightParen: true, ClassLeftParen: true, // array-of-array subscript
	},
	ClassFunctionName: {
		ClassLeftParen: true,
	},
	ClassLeftParen: {
		ClassGeneric: true, ClassFunctionName: true, ClassVariable: true,
		ClassNumber: true, ClassAlphaConst: true, ClassLeftParen: true,
		ClassOperator: true, ClassRightParen: true, // empty call arglist
	},
	ClassVariable: {
		ClassOperator: true, ClassComma: true, ClassSemicolon: true,
		ClassRightParen: true, ClassLeftParen: true, // array subscript
	},
}

// Frame is one entry of the shared parenthesis/block-context stack (§4.1
// "stack of open parenthesis and block contexts").
type Frame struct {
	IsFunctionCall    bool
	IsArraySubscript  bool
	IsBlock           bool // for/while/if
	BlockKeyword      string
	MinArgs, MaxArgs  int
	ArgCount          int
	ArrayDimCount     int
	Scope             int // symbols.Scope, kept as int to avoid an import cycle
	AssignmentLegal   bool
	LastWasIncrDecr   bool

	// FuncIndex identifies the function whose header opened this frame
	// (BlockKeyword == "function"), so the `end` that closes it can report
	// which function's body just finished to the parser's function-table
	// bookkeeping (Parser.pendingClosedFunc). Unused by non-function frames.
	FuncIndex int
}

// Railroad tracks the last-accepted token class and the open frame stack
// used to validate argument counts, array dimensions, and block nesting
// while a statement is parsed.
type Railroad struct {
	last   TokenClass
	frames []Frame
}

// NewRailroad creates a validator primed for the start of a statement.
func NewRailroad() *Railroad {
	return &Railroad{last: ClassNone}
}

// Accept validates that next may legally follow the current last-accepted
// class, and if so, updates state. Returns an error code on violation.
func (r *Railroad) Accept(next TokenClass) (Code, bool) {
	allowed, ok := successorTable[r.last]
	if !ok || !allowed[next] {
		return classViolationCode(r.last, next), false
	}
	r.last = next
	return 0, true
}

// classViolationCode picks the specific grammar-error code for a rejected
// transition, matching the error taxonomy in parser/errors.go.
func classViolationCode(from, to TokenClass) Code {
	switch to {
	case ClassComma:
		return ErrSeparatorNotAllowedHere
	case ClassOperator:
		return ErrOperatorNotAllowedHere
	case ClassLeftParen, ClassRightParen:
		return ErrParenthesisNotAllowedHere
	case ClassKeyword:
		return ErrReservedWordNotAllowedHere
	case ClassFunctionName:
		return ErrFunctionNotAllowedHere
	case ClassVariable:
		return ErrVariableNotAllowedHere
	case ClassAlphaConst:
		return ErrAlphaConstNotAllowedHere
	case ClassNumber:
		return ErrNumConstNotAllowedHere
	case ClassGeneric:
		return ErrIdentifierNotAllowedHere
	default:
		return ErrTokenNotFound
	}
}

// PushFrame opens a new parenthesis or block context.
func (r *Railroad) PushFrame(f Frame) { r.frames = append(r.frames, f) }

// PopFrame closes the innermost context, returning it and whether the stack
// was non-empty.
func (r *Railroad) PopFrame() (Frame, bool) {
	if len(r.frames) == 0 {
		return Frame{}, false
	}
	f := r.frames[len(r.frames)-1]
	r.frames = r.frames[:len(r.frames)-1]
	return f, true
}

// TopFrame returns a pointer to the innermost open context, or nil.
func (r *Railroad) TopFrame() *Frame {
	if len(r.frames) == 0 {
		return nil
	}
	return &r.frames[len(r.frames)-1]
}

// Depth reports the number of open frames.
func (r *Railroad) Depth() int { return len(r.frames) }

// TruncateTo discards frames above depth n, used to undo partially-opened
// parenthesis frames left behind by a statement that failed partway
// through (§4.1 failure semantics apply to railroad state, not just the
// token arena).
func (r *Railroad) TruncateTo(n int) {
	if n < len(r.frames) {
		r.frames = r.frames[:n]
	}
}

// BlockDepth reports the number of open *block* frames (for/while/if and
// function bodies), ignoring parenthesis/call frames.
func (r *Railroad) BlockDepth() int {
	n := 0
	for _, f := range r.frames {
		if f.IsBlock {
			n++
		}
	}
	return n
}

// Reset clears the last-accepted-class tracking for the start of a fresh
// statement. The frame stack is NOT cleared here: block frames (for/while/
// if) legitimately span many statements until their matching `end`; only
// parenthesis frames are statement-local, and those are expected to already
// be empty by the time a statement's terminating `;` is reached.
func (r *Railroad) Reset() {
	r.last = ClassNone
}
