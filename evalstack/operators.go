package evalstack

import "justina/token"

// OpInfo is an operator's priority and fixity metadata, consulted by ReduceAllReady
// to decide when a pending operator is ready to execute (§4.2 "Operator
// dispatch. Each operator carries priority for prefix/infix/postfix and
// flags"). The actual arithmetic/string semantics live in the interpreter
// (C8); this table only carries what the stack mechanics themselves need to
// decide *when* to reduce.
type OpInfo struct {
	Priority     int
	RightAssoc   bool
	IsPrefix     bool
	IsPostfix    bool
	RequiresInt  bool // bitwise ops and '%' require both operands integer
	ForcesInt    bool
	ForcesFloat  bool // '**' promotes both operands to float
}

// operatorTable gives each Terminal operator its priority (higher binds
// tighter) and fixity flags. Priorities are grouped the conventional way:
// assignment lowest, logical or/and, bitwise, equality/relational,
// shift, additive, multiplicative, power, unary highest. ForcesInt on the
// comparison tier means the result is always a boolean long (0/1)
// regardless of the operand types, the same flag unary ++/-- use to force
// an integer result.
var operatorTable = map[token.Terminal]OpInfo{
	token.OpAssign: {Priority: 1, RightAssoc: true},

	token.OpOr:  {Priority: 2},
	token.OpAnd: {Priority: 3},

	token.OpBitOr:  {Priority: 4, RequiresInt: true},
	token.OpBitXor: {Priority: 5, RequiresInt: true},
	token.OpBitAnd: {Priority: 6, RequiresInt: true},

	token.OpLess:       {Priority: 7, ForcesInt: true},
	token.OpGreater:    {Priority: 7, ForcesInt: true},
	token.OpLessEq:     {Priority: 7, ForcesInt: true},
	token.OpGreaterEq:  {Priority: 7, ForcesInt: true},
	token.OpNotEq:      {Priority: 7, ForcesInt: true},
	token.OpEq:         {Priority: 7, ForcesInt: true},

	token.OpBitShLeft:  {Priority: 8, RequiresInt: true},
	token.OpBitShRight: {Priority: 8, RequiresInt: true},

	token.OpPlus:  {Priority: 9},
	token.OpMinus: {Priority: 9},

	token.OpMult: {Priority: 10},
	token.OpDiv:  {Priority: 10},
	token.OpMod:  {Priority: 10, RequiresInt: true},

	token.OpPow: {Priority: 11, RightAssoc: true, ForcesFloat: true},

	token.OpNot:      {Priority: 12, IsPrefix: true},
	token.OpBitCompl: {Priority: 12, IsPrefix: true, RequiresInt: true},
	token.OpIncr:     {Priority: 12, IsPrefix: true, IsPostfix: true, ForcesInt: true},
	token.OpDecr:     {Priority: 12, IsPrefix: true, IsPostfix: true, ForcesInt: true},
}

// LookupOp returns the priority/fixity metadata for a terminal, and whether
// it is a recognized operator at all (vs. a separator like comma or a
// parenthesis).
func LookupOp(t token.Terminal) (OpInfo, bool) {
	info, ok := operatorTable[t]
	return info, ok
}
