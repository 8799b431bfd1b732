// Package parser implements component C3: the character-stream tokenizer
// that writes into the token arena (C1), resolves identifiers against the
// symbol tables (C2), and maintains the breakpoint line-range index (C4) as
// it goes.
package parser

import (
	"justina/linerange"
	"justina/symbols"
	"justina/token"
)

// funcScope is one entry of the open-function stack, tracking which
// function's locals are currently in scope for identifier resolution.
type funcScope struct {
	funcIndex int
	locals    *symbols.NameTable
}

// Parser drives the character stream into the token arena, one statement at
// a time, per §4.1's contract.
type Parser struct {
	Arena *token.Arena
	Vars  *symbols.Variables
	Lines *linerange.Index

	rr  *Railroad
	pre *Preprocessor

	funcStack []funcScope

	// pendingCallContext is set after accepting a function name, consumed by
	// the immediately-following left parenthesis to mark its frame as a
	// function-call context rather than a plain grouping context.
	pendingCallContext bool

	// lastRunOpen is not set or read by the parser; recordLineStart decides
	// between extending the current run and opening a new pair from
	// lastLineSeen alone.
	lastRunOpen  bool
	lastLineSeen int // source line of the last statement-starting line, 0 if none

	// localCap bounds each function's local-variable name table (shared by
	// every EnterFunction call), generalized from the historical fixed
	// constant per SPEC_FULL.md's ambient configuration.
	localCap int

	// funcSigs records each declared function's parameter count and body
	// token-arena bounds, keyed by its index in Vars.Names.Functions,
	// consulted by the evaluator (C8) to skip a declaration at top-level
	// flow and to bind arguments on a call.
	funcSigs map[int]FuncSig

	// pendingClosedFunc is the function index whose body the `end` just
	// accepted by acceptReserved closed, consumed by closeStatement once the
	// statement's trailing semicolon has been appended so BodyEndOffset can
	// record the arena offset immediately following it. -1 when no function
	// body was just closed.
	pendingClosedFunc int

	// pendingFuncHeader carries the just-parsed function header's index and
	// parameter count across to the statement tail, which records
	// FuncSig.EntryOffset once the header statement's closing semicolon has
	// been appended (the body's first token follows immediately after it).
	pendingFuncHeader *pendingFuncHeader

	// declActive is true while parsing a var/local/static/const statement;
	// declExpectName is true at positions where the next identifier is a
	// declaration target rather than a reference (right after the keyword,
	// and right after each top-level comma). stmtBaseline is the railroad
	// frame depth at statement start, distinguishing a declaration list's
	// own top-level commas from ones nested inside a parenthesized
	// initializer expression.
	declActive     bool
	declExpectName bool
	declScope      symbols.Scope
	declConst      bool
	stmtBaseline   int
}

// pendingFuncHeader records a just-parsed function header awaiting its
// FuncSig.EntryOffset, filled in once the statement's closing semicolon is
// appended.
type pendingFuncHeader struct {
	funcIndex  int
	paramCount int
}

// NewParser creates a Parser writing into arena, resolving names against
// vars, and maintaining lines as the breakpoint index. localCap bounds the
// local-variable name table opened for each function body.
func NewParser(arena *token.Arena, vars *symbols.Variables, lines *linerange.Index, localCap int) *Parser {
	return &Parser{
		Arena:             arena,
		Vars:              vars,
		Lines:             lines,
		rr:                NewRailroad(),
		pre:               NewPreprocessor(),
		localCap:          localCap,
		funcSigs:          make(map[int]FuncSig),
		pendingClosedFunc: -1,
	}
}

// inLocalScope reports whether p is currently inside an open function body.
func (p *Parser) inLocalScope() bool { return len(p.funcStack) > 0 }

// currentLocals returns the innermost open function's local name table, or
// nil at top level (§4.1 "Local variables resolve to the innermost open
// function").
func (p *Parser) currentLocals() *symbols.NameTable {
	if !p.inLocalScope() {
		return nil
	}
	return p.funcStack[len(p.funcStack)-1].locals
}

// ParseLine preprocesses and tokenizes one line of user source, updating the
// token arena, the symbol tables, and the breakpoint line-range index.
// lineNo is 1-based.
func (p *Parser) ParseLine(raw string, lineNo int) error {
	pos := Position{Line: lineNo, Column: 1}
	line := p.pre.ProcessLine(raw, pos)
	if p.pre.Errors().HasErrors() {
		err := p.pre.Errors().First()
		p.pre.Reset()
		return err
	}
	if line == "" {
		return nil
	}

	stmts := p.pre.ProcessStatements(line)
	firstOnLine := true
	for _, stmt := range stmts {
		stmt = trimTrailingSemicolon(stmt)
		if stmt == "" {
			continue
		}
		mark := p.Arena.Mark()
		if err := p.parseStatement(stmt, lineNo, firstOnLine); err != nil {
			p.Arena.RewindTo(mark)
			return err
		}
		if firstOnLine {
			p.recordLineStart(lineNo)
			firstOnLine = false
		}
	}
	return nil
}

func trimTrailingSemicolon(s string) string {
	if len(s) > 0 && s[len(s)-1] == ';' {
		return s[:len(s)-1]
	}
	return s
}

// recordLineStart implements §4.1's "Line-range maintenance": extend the
// current (gap, run) pair if this line is adjacent to the previous
// statement-starting line, otherwise close it and open a new one with the
// intervening gap.
func (p *Parser) recordLineStart(lineNo int) {
	if p.lastLineSeen == 0 {
		p.Lines.AppendRun(lineNo-1, 1)
		p.lastLineSeen = lineNo
		return
	}
	if lineNo == p.lastLineSeen+1 {
		p.Lines.ExtendLastRun()
	} else {
		p.Lines.AppendRun(lineNo-p.lastLineSeen-1, 1)
	}
	p.lastLineSeen = lineNo
}

// parseStatement tokenizes a single `;`-delimited statement and appends its
// tokens to the arena, then closes it with the appropriate semicolon
// variant. The first statement of a source line gets the breakpoint-allowed
// variant; command bodies that set a breakpoint trigger use the bp-set
// variant (handled by the debug layer rewriting the byte directly via
// Arena.Decode/offsets, not here).
func (p *Parser) parseStatement(stmt string, lineNo int, firstOnLine bool) (err error) {
	p.rr.Reset()
	baseline := p.rr.Depth()
	p.stmtBaseline = baseline
	p.declActive = false
	p.declExpectName = false
	defer func() {
		if err != nil {
			p.rr.TruncateTo(baseline)
		}
	}()

	lx := NewLexer(stmt, lineNo)

	first, lexErr := lx.Next()
	if lexErr != nil {
		return lexErr
	}
	if first.Kind == LexIdentifier && first.Text == "function" {
		if err := p.parseFunctionHeader(first, lx); err != nil {
			return err
		}
	} else if first.Kind != LexEOF {
		if err := p.dispatch(first, lx); err != nil {
			return err
		}
		for {
			lex, lexErr := lx.Next()
			if lexErr != nil {
				return lexErr
			}
			if lex.Kind == LexEOF {
				break
			}
			if dispatchErr := p.dispatch(lex, lx); dispatchErr != nil {
				return dispatchErr
			}
		}
	}

	if f := p.rr.TopFrame(); f != nil && !f.IsBlock {
		return NewError(Position{Line: lineNo}, ErrMissingRightParenthesis, "unclosed '('")
	}

	semicolon := token.SemicolonPlain
	if firstOnLine {
		semicolon = token.SemicolonBPAllow
	}
	if _, aerr := p.Arena.AppendTerminal(semicolon); aerr != nil {
		return NewError(Position{Line: lineNo}, ErrProgramMemoryFull, aerr.Error())
	}

	if p.pendingClosedFunc >= 0 {
		if sig, ok := p.funcSigs[p.pendingClosedFunc]; ok {
			sig.BodyEndOffset = p.Arena.Mark()
			p.funcSigs[p.pendingClosedFunc] = sig
		}
		p.pendingClosedFunc = -1
	}
	if p.pendingFuncHeader != nil {
		h := p.pendingFuncHeader
		p.funcSigs[h.funcIndex] = FuncSig{ParamCount: h.paramCount, EntryOffset: p.Arena.Mark()}
		p.pendingFuncHeader = nil
	}
	return nil
}

// dispatch classifies one raw lexeme per §4.1's classification order
// (reserved word, number, string, terminal, internal fn, external fn, user
// fn, variable) and appends the resulting token. No lexeme is classified as
// a generic identifier (see acceptIdentifier).
func (p *Parser) dispatch(lex Lexeme, lx *Lexer) error {
	switch lex.Kind {
	case LexNumber:
		return p.acceptNumber(lex)
	case LexString:
		return p.acceptString(lex)
	case LexComma:
		if _, ok := p.rr.Accept(ClassComma); !ok {
			return NewError(lex.Pos, ErrSeparatorNotAllowedHere, "comma not allowed here")
		}
		if p.declActive && p.rr.Depth() == p.stmtBaseline {
			p.declExpectName = true
		}
		_, err := p.Arena.AppendTerminal(token.OpComma)
		return p.wrapArenaErr(err, lex.Pos)
	case LexLeftParen:
		if _, ok := p.rr.Accept(ClassLeftParen); !ok {
			return NewError(lex.Pos, ErrParenthesisNotAllowedHere, "unexpected '('")
		}
		p.rr.PushFrame(Frame{IsFunctionCall: p.pendingCallContext})
		p.pendingCallContext = false
		_, err := p.Arena.AppendTerminal(token.OpLeftPar)
		return p.wrapArenaErr(err, lex.Pos)
	case LexRightParen:
		if _, ok := p.rr.Accept(ClassRightParen); !ok {
			return NewError(lex.Pos, ErrMissingLeftParenthesis, "unexpected ')'")
		}
		if _, ok := p.rr.PopFrame(); !ok {
			return NewError(lex.Pos, ErrMissingLeftParenthesis, "unmatched ')'")
		}
		_, err := p.Arena.AppendTerminal(token.OpRightPar)
		return p.wrapArenaErr(err, lex.Pos)
	case LexOperator:
		return p.acceptOperator(lex)
	case LexIdentifier:
		return p.acceptIdentifier(lex, lx)
	default:
		return NewError(lex.Pos, ErrTokenNotFound, "unrecognized token")
	}
}

func (p *Parser) wrapArenaErr(err error, pos Position) error {
	if err == nil {
		return nil
	}
	return NewError(pos, ErrProgramMemoryFull, err.Error())
}

func (p *Parser) acceptNumber(lex Lexeme) error {
	if _, ok := p.rr.Accept(ClassNumber); !ok {
		return NewError(lex.Pos, ErrNumConstNotAllowedHere, "numeric constant not allowed here")
	}
	var err error
	if lex.IsLong {
		_, err = p.Arena.AppendLongConstant(lex.Long)
	} else {
		_, err = p.Arena.AppendFloatConstant(lex.Float)
	}
	return p.wrapArenaErr(err, lex.Pos)
}

func (p *Parser) acceptString(lex Lexeme) error {
	if _, ok := p.rr.Accept(ClassAlphaConst); !ok {
		return NewError(lex.Pos, ErrAlphaConstNotAllowedHere, "string constant not allowed here")
	}
	owned := p.Vars.Alloc.NewString(symbols.CatParsedConstantString, lex.Text)
	ref := p.Vars.Strings.Put(owned)
	_, aerr := p.Arena.AppendStringConstant(ref)
	return p.wrapArenaErr(aerr, lex.Pos)
}

func (p *Parser) acceptOperator(lex Lexeme) error {
	if _, ok := p.rr.Accept(ClassOperator); !ok {
		return NewError(lex.Pos, ErrOperatorNotAllowedHere, "operator not allowed here: "+lex.Text)
	}
	term, ok := operatorTerminals[lex.Text]
	if !ok {
		return NewError(lex.Pos, ErrInvalidOperator, "unknown operator: "+lex.Text)
	}
	_, err := p.Arena.AppendTerminal(term)
	return p.wrapArenaErr(err, lex.Pos)
}

// acceptIdentifier runs the remainder of §4.1's classification order for a
// raw identifier lexeme: reserved word, then internal/external/user
// function name (each only if followed by '('), then variable. An
// identifier that matches none of these is reported as
// ErrIdentifierNotDeclared; no GenericName token is produced.
func (p *Parser) acceptIdentifier(lex Lexeme, lx *Lexer) error {
	name := lex.Text

	if p.declActive && p.declExpectName {
		return p.acceptDeclarationName(lex)
	}

	if spec, ok := LookupReserved(name); ok {
		return p.acceptReserved(lex, spec)
	}

	followedByParen := lx.peekNonSpace() == '('

	if isInternalFunction(name) && followedByParen {
		idx := internalFunctionIndex[name]
		return p.acceptFunctionName(lex, token.InternalFn, func() (int, bool, error) {
			return idx, false, nil
		})
	}

	if followedByParen {
		if idx, ok := p.Vars.Names.Foreign.Lookup(name); ok {
			return p.acceptFunctionName(lex, token.ExternalFn, func() (int, bool, error) { return idx, false, nil })
		}
		if idx, _, ok := p.lookupFunctionName(name); ok {
			return p.acceptFunctionName(lex, token.UserFn, func() (int, bool, error) { return idx, false, nil })
		}
	}

	return p.acceptVariable(lex)
}

func (p *Parser) lookupFunctionName(name string) (int, bool, bool) {
	if idx, ok := p.Vars.Names.Functions.Lookup(name); ok {
		return idx, false, true
	}
	return 0, false, false
}

func (p *Parser) acceptReserved(lex Lexeme, spec CommandSpec) error {
	if _, ok := p.rr.Accept(ClassKeyword); !ok {
		return NewError(lex.Pos, ErrReservedWordNotAllowedHere, "reserved word not allowed here: "+lex.Text)
	}
	if spec.OpensBlock {
		p.rr.PushFrame(Frame{IsBlock: true, BlockKeyword: spec.Name})
	}
	if spec.ClosesBlock {
		f, ok := p.rr.PopFrame()
		if !ok || !f.IsBlock {
			return NewError(lex.Pos, ErrBlockMismatchedEnd, "unmatched 'end'")
		}
		if f.BlockKeyword == "function" {
			p.ExitFunction()
			p.pendingClosedFunc = f.FuncIndex
		}
	}
	if scope, isDecl, derr := p.declarationScope(spec.Name); isDecl {
		if derr != nil {
			return derr
		}
		p.declActive = true
		p.declExpectName = true
		p.declScope = scope
		p.declConst = spec.Name == "const"
	}
	_, aerr := p.Arena.AppendName(token.ReservedWord, reservedWordLookup[lex.Text])
	return p.wrapArenaErr(aerr, lex.Pos)
}

// reservedWordLookup assigns each reserved word a stable small-integer index
// the command dispatcher (C8) uses to look up its CommandSpec at execution
// time, without re-hashing the name.
var reservedWordLookup = buildReservedWordIndex()

func buildReservedWordIndex() map[string]int {
	var names []string
	for name := range reservedWords {
		names = append(names, name)
	}
	idx := make(map[string]int, len(names))
	for i, name := range names {
		idx[name] = i
	}
	return idx
}

func (p *Parser) acceptFunctionName(lex Lexeme, kind token.Kind, resolve func() (int, bool, error)) error {
	if _, ok := p.rr.Accept(ClassFunctionName); !ok {
		return NewError(lex.Pos, ErrFunctionNotAllowedHere, "function not allowed here: "+lex.Text)
	}
	idx, _, err := resolve()
	if err != nil {
		return NewError(lex.Pos, ErrTooManyFunctions, err.Error())
	}
	p.pendingCallContext = true
	_, aerr := p.Arena.AppendName(kind, idx)
	return p.wrapArenaErr(aerr, lex.Pos)
}

// acceptVariable resolves name against the currently-visible scopes, in
// order: local (innermost open function), user, static, global — creating a
// new slot only in declaration contexts. Since the railroad state does not
// by itself distinguish declaration from expression context, declaration
// commands (var/local/static/const) call DeclareVariable directly instead of
// routing through here. Each scope gets its own token.Kind so the evaluator
// (C8) can resolve a name's storage directly from its token without
// re-running this lookup order at run time.
func (p *Parser) acceptVariable(lex Lexeme) error {
	if _, ok := p.rr.Accept(ClassVariable); !ok {
		return NewError(lex.Pos, ErrVariableNotAllowedHere, "variable not allowed here: "+lex.Text)
	}

	if locals := p.currentLocals(); locals != nil {
		if idx, ok := locals.Lookup(lex.Text); ok {
			_, err := p.Arena.AppendName(token.LocalVar, idx)
			return p.wrapArenaErr(err, lex.Pos)
		}
	}

	if idx, ok := p.Vars.Names.UserVars.Lookup(lex.Text); ok {
		_, err := p.Arena.AppendName(token.UserVar, idx)
		return p.wrapArenaErr(err, lex.Pos)
	}

	if idx, ok := p.Vars.Names.Statics.Lookup(lex.Text); ok {
		_, err := p.Arena.AppendName(token.StaticVar, idx)
		return p.wrapArenaErr(err, lex.Pos)
	}

	if idx, ok := p.Vars.Names.ProgramVars.Lookup(lex.Text); ok {
		_, err := p.Arena.AppendName(token.Variable, idx)
		return p.wrapArenaErr(err, lex.Pos)
	}

	return NewError(lex.Pos, ErrIdentifierNotDeclared, "undeclared identifier: "+lex.Text)
}

// DeclareVariable registers name in the scope-appropriate name table,
// allocating a value slot for global/static/user scopes (§4.4 "New variable
// occurrences in declaration contexts allocate a name slot and (for
// globals/statics/parameters) a value slot"). Used by the command handlers
// for var/local/static/const/function-parameter parsing, which know they
// are in a declaration context independent of railroad state.
func (p *Parser) DeclareVariable(name string, scope symbols.Scope) (int, error) {
	var tbl *symbols.NameTable
	switch scope {
	case symbols.ScopeLocal, symbols.ScopeParam:
		tbl = p.currentLocals()
		if tbl == nil {
			return 0, NewError(Position{}, ErrIdentifierWrongScope, "local declaration outside a function body")
		}
	case symbols.ScopeUser:
		tbl = p.Vars.Names.UserVars
	case symbols.ScopeStatic:
		tbl = p.Vars.Names.Statics
	default: // symbols.ScopeGlobal
		tbl = p.Vars.Names.ProgramVars
	}

	idx, created, err := tbl.ResolveOrCreate(name)
	if err != nil {
		return 0, NewError(Position{}, ErrIdentifierAlreadyDeclared, err.Error())
	}
	if !created {
		return 0, NewError(Position{}, ErrIdentifierAlreadyDeclared, "already declared: "+name)
	}
	if store := p.Vars.StoreFor(scope); store != nil {
		if _, aerr := store.Alloc(); aerr != nil {
			return 0, NewError(Position{}, ErrTooManyProgramVariables, aerr.Error())
		}
	}
	return idx, nil
}

// DeclareConstant registers name as a global-scope constant (§4.4's `const`
// command). Constants are global-only: the grammar has no `local const` or
// `static const` form, so scope is fixed rather than parameterized.
func (p *Parser) DeclareConstant(name string) (int, error) {
	idx, err := p.DeclareVariable(name, symbols.ScopeGlobal)
	if err != nil {
		return 0, err
	}
	p.Vars.Global.Slot(idx).Attr.IsConstant = true
	return idx, nil
}

// DeclareForeignFunction registers name in the foreign-function name table
// (C10), letting acceptIdentifier classify subsequent references to it as
// token.ExternalFn instead of falling through to token.UserFn or an
// undeclared-identifier error. Called both when the host registers a native
// function (interp.RegisterForeignFn) and, for a forward reference, never —
// foreign functions must be registered before any source referencing them is
// parsed.
func (p *Parser) DeclareForeignFunction(name string) (int, error) {
	idx, created, err := p.Vars.Names.Foreign.ResolveOrCreate(name)
	if err != nil {
		return 0, NewError(Position{}, ErrTooManyFunctions, err.Error())
	}
	if !created {
		return idx, nil
	}
	return idx, nil
}

// EnterFunction opens a new local-variable name table for a function body
// being parsed, per §4.1 "Local variables resolve to the innermost open
// function".
func (p *Parser) EnterFunction(funcIndex, localCap int) {
	p.funcStack = append(p.funcStack, funcScope{
		funcIndex: funcIndex,
		locals:    symbols.NewNameTable(localCap),
	})
}

// ExitFunction closes the innermost open function's local scope.
func (p *Parser) ExitFunction() {
	if len(p.funcStack) > 0 {
		p.funcStack = p.funcStack[:len(p.funcStack)-1]
	}
}

// peekNonSpace returns the next non-space byte without consuming it, used
// to decide whether an identifier is a function-call name.
func (lx *Lexer) peekNonSpace() byte {
	i := lx.pos
	for i < len(lx.src) && (lx.src[i] == ' ' || lx.src[i] == '\t') {
		i++
	}
	if i >= len(lx.src) {
		return 0
	}
	return lx.src[i]
}
