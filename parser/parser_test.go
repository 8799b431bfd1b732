package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"justina/linerange"
	"justina/parser"
	"justina/symbols"
	"justina/token"
)

func newTestParser() *parser.Parser {
	arena := token.NewArena(4096)
	vars := symbols.NewVariables(64, 64, 64, 32, 32, 256)
	lines := linerange.NewIndex(nil)
	return parser.NewParser(arena, vars, lines, 32)
}

func TestParser_SimpleAssignment(t *testing.T) {
	p := newTestParser()
	_, err := p.DeclareVariable("x", symbols.ScopeUser)
	require.NoError(t, err)

	err = p.ParseLine(`x = 5`, 1)
	require.NoError(t, err)

	var kinds []token.Kind
	p.Arena.Walk(func(off int, rec token.Record) bool {
		kinds = append(kinds, rec.Kind)
		return true
	})
	require.True(t, len(kinds) >= 3)
	assert.Equal(t, token.UserVar, kinds[0])
	assert.Equal(t, token.TerminalGroup1, kinds[1])
	assert.Equal(t, token.Constant, kinds[2])
}

func TestParser_UndeclaredVariableFails(t *testing.T) {
	p := newTestParser()
	err := p.ParseLine(`y = 1`, 1)
	require.Error(t, err)

	perr, ok := err.(*parser.Error)
	require.True(t, ok)
	assert.Equal(t, parser.ErrIdentifierNotDeclared, perr.Code)
}

func TestParser_StringLiteralEscapesAndArenaRewindOnFailure(t *testing.T) {
	p := newTestParser()
	_, err := p.DeclareVariable("s", symbols.ScopeUser)
	require.NoError(t, err)

	require.NoError(t, p.ParseLine(`s = "line1\nline2"`, 1))

	before := p.Arena.Len()
	err = p.ParseLine(`s = )`, 2)
	require.Error(t, err)
	assert.Equal(t, before, p.Arena.Len(), "failed statement must not leave partial tokens in the arena")
}

func TestParser_MismatchedParenFails(t *testing.T) {
	p := newTestParser()
	_, err := p.DeclareVariable("z", symbols.ScopeUser)
	require.NoError(t, err)

	err = p.ParseLine(`z = (1 + 2`, 1)
	require.Error(t, err)
}

func TestParser_LineRangeTracksConsecutiveStatementStartingLines(t *testing.T) {
	p := newTestParser()
	_, err := p.DeclareVariable("a", symbols.ScopeUser)
	require.NoError(t, err)

	require.NoError(t, p.ParseLine(`a = 1`, 10))
	require.NoError(t, p.ParseLine(`a = 2`, 11))
	require.NoError(t, p.ParseLine(`a = 3`, 13))

	seq, isStart := p.Lines.LineSequenceIndex(11)
	assert.True(t, isStart)
	assert.Equal(t, 1, seq)

	_, isStart = p.Lines.LineSequenceIndex(12)
	assert.False(t, isStart)

	seq, isStart = p.Lines.LineSequenceIndex(13)
	assert.True(t, isStart)
	assert.Equal(t, 2, seq)
}

func TestParser_FunctionCallParsesAsFunctionName(t *testing.T) {
	p := newTestParser()

	err := p.ParseLine(`sqrt(4)`, 1)
	require.NoError(t, err)

	var kinds []token.Kind
	p.Arena.Walk(func(off int, rec token.Record) bool {
		kinds = append(kinds, rec.Kind)
		return true
	})
	assert.Equal(t, token.InternalFn, kinds[0])
	assert.Equal(t, token.TerminalGroup2, kinds[1]) // left paren
}

func TestParser_LocalVariableResolvesToInnermostFunction(t *testing.T) {
	p := newTestParser()
	p.EnterFunction(0, 16)
	_, err := p.DeclareVariable("n", symbols.ScopeLocal)
	require.NoError(t, err)

	require.NoError(t, p.ParseLine(`n = 1`, 1))
	p.ExitFunction()

	err = p.ParseLine(`n = 2`, 2)
	require.Error(t, err, "local variable must not resolve once its function has exited")
}
