package parser

import (
	"justina/symbols"
	"justina/token"
)

// FuncSig records a declared function's parameter count and the token-arena
// bounds of its body, keyed by its index in Vars.Names.Functions. The
// evaluator (C8) consults it to skip a function's body when the declaration
// is reached by sequential top-level flow, and to bind arguments and jump to
// the entry point on a call.
type FuncSig struct {
	ParamCount    int
	EntryOffset   int // arena offset of the first body token, right after the header statement's semicolon
	BodyEndOffset int // arena offset right after the semicolon that ends the matching 'end' statement
}

// FuncSig returns the recorded signature for funcIndex, if its header has
// been parsed.
func (p *Parser) FuncSig(funcIndex int) (FuncSig, bool) {
	sig, ok := p.funcSigs[funcIndex]
	return sig, ok
}

// declarationScope resolves a declaration keyword to the scope its targets
// are declared in. `var` follows context (local inside an open function
// body, global at top level, matching the source's scope-by-position rule);
// `local` is an explicit-local alias only legal inside a function; `static`
// and `const` are fixed scopes regardless of position.
func (p *Parser) declarationScope(kw string) (symbols.Scope, bool, error) {
	switch kw {
	case "var":
		if p.inLocalScope() {
			return symbols.ScopeLocal, true, nil
		}
		return symbols.ScopeGlobal, true, nil
	case "local":
		if !p.inLocalScope() {
			return 0, true, NewError(Position{}, ErrIdentifierWrongScope, "'local' used outside a function body")
		}
		return symbols.ScopeLocal, true, nil
	case "static":
		return symbols.ScopeStatic, true, nil
	case "const":
		return symbols.ScopeGlobal, true, nil
	default:
		return 0, false, nil
	}
}

// declarationTokenKind is the token.Kind a declared name of scope resolves
// to, mirroring acceptVariable's scope -> Kind mapping.
func declarationTokenKind(scope symbols.Scope) token.Kind {
	switch scope {
	case symbols.ScopeLocal, symbols.ScopeParam:
		return token.LocalVar
	case symbols.ScopeUser:
		return token.UserVar
	case symbols.ScopeStatic:
		return token.StaticVar
	default:
		return token.Variable
	}
}

// acceptDeclarationName handles one identifier in declaration-name position
// (right after var/local/static/const, or right after one of the
// declaration list's own top-level commas): it declares the name instead of
// resolving an existing reference, per §4.4.
func (p *Parser) acceptDeclarationName(lex Lexeme) error {
	if _, ok := p.rr.Accept(ClassVariable); !ok {
		return NewError(lex.Pos, ErrVariableNotAllowedHere, "variable not allowed here: "+lex.Text)
	}

	var idx int
	var err error
	if p.declConst {
		idx, err = p.DeclareConstant(lex.Text)
	} else {
		idx, err = p.DeclareVariable(lex.Text, p.declScope)
	}
	if err != nil {
		return err
	}
	p.declExpectName = false

	_, aerr := p.Arena.AppendName(declarationTokenKind(p.declScope), idx)
	return p.wrapArenaErr(aerr, lex.Pos)
}

// parseFunctionHeader parses `function name(param, param, ...)` following
// the already-consumed `function` keyword, declaring the function name in
// the global function-name table and each parameter by value in a freshly
// opened local scope (§4.1 "function"/"Local variables resolve to the
// innermost open function"). By-reference parameters have no surface syntax
// in this grammar, so every parameter binds by value (see DESIGN.md).
func (p *Parser) parseFunctionHeader(kw Lexeme, lx *Lexer) error {
	if _, ok := p.rr.Accept(ClassKeyword); !ok {
		return NewError(kw.Pos, ErrReservedWordNotAllowedHere, "reserved word not allowed here: function")
	}

	nameLex, err := lx.Next()
	if err != nil {
		return err
	}
	if nameLex.Kind != LexIdentifier {
		return NewError(nameLex.Pos, ErrIdentifierNotDeclared, "expected function name")
	}
	funcIdx, _, ferr := p.Vars.Names.Functions.ResolveOrCreate(nameLex.Text)
	if ferr != nil {
		return NewError(nameLex.Pos, ErrTooManyFunctions, ferr.Error())
	}

	p.rr.PushFrame(Frame{IsBlock: true, BlockKeyword: "function", FuncIndex: funcIdx})
	if _, aerr := p.Arena.AppendName(token.UserFn, funcIdx); aerr != nil {
		return p.wrapArenaErr(aerr, kw.Pos)
	}

	lp, err := lx.Next()
	if err != nil {
		return err
	}
	if lp.Kind != LexLeftParen {
		return NewError(lp.Pos, ErrMissingLeftParenthesis, "expected '(' after function name")
	}
	if _, aerr := p.Arena.AppendTerminal(token.OpLeftPar); aerr != nil {
		return p.wrapArenaErr(aerr, lp.Pos)
	}

	p.EnterFunction(funcIdx, p.localCap)

	paramCount := 0
	for {
		lex, err := lx.Next()
		if err != nil {
			return err
		}
		if lex.Kind == LexRightParen {
			break
		}
		if paramCount > 0 {
			if lex.Kind != LexComma {
				return NewError(lex.Pos, ErrSeparatorNotAllowedHere, "expected ',' between parameters")
			}
			if _, aerr := p.Arena.AppendTerminal(token.OpComma); aerr != nil {
				return p.wrapArenaErr(aerr, lex.Pos)
			}
			lex, err = lx.Next()
			if err != nil {
				return err
			}
		}
		if lex.Kind != LexIdentifier {
			return NewError(lex.Pos, ErrIdentifierNotDeclared, "expected parameter name")
		}
		idx, derr := p.DeclareVariable(lex.Text, symbols.ScopeParam)
		if derr != nil {
			return derr
		}
		if _, aerr := p.Arena.AppendName(token.LocalVar, idx); aerr != nil {
			return p.wrapArenaErr(aerr, lex.Pos)
		}
		paramCount++
	}
	if _, aerr := p.Arena.AppendTerminal(token.OpRightPar); aerr != nil {
		return p.wrapArenaErr(aerr, lp.Pos)
	}

	p.pendingFuncHeader = &pendingFuncHeader{funcIndex: funcIdx, paramCount: paramCount}
	return nil
}
