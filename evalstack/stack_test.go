package evalstack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"justina/evalstack"
	"justina/symbols"
	"justina/token"
)

func TestStack_PushPopPeek(t *testing.T) {
	s := evalstack.NewStack()
	s.PushLongConstant(1, true, 0)
	s.PushLongConstant(2, true, 1)

	top, err := s.Peek(0)
	require.NoError(t, err)
	assert.Equal(t, int32(2), top.Long)

	levels, err := s.Pop(2)
	require.NoError(t, err)
	assert.Equal(t, int32(1), levels[0].Long)
	assert.Equal(t, int32(2), levels[1].Long)
	assert.Equal(t, 0, s.Len())
}

func TestStack_PopUnderflow(t *testing.T) {
	s := evalstack.NewStack()
	s.PushLongConstant(1, true, 0)
	_, err := s.Pop(2)
	assert.ErrorIs(t, err, evalstack.ErrStackUnderflow)
}

func TestStack_ReduceAllReady_SinglePlusBeforeLowerPriorityPending(t *testing.T) {
	// Stack: 1 + 2, then a pending '*' should NOT trigger reduction (higher
	// priority than '+' already resolved... here we test the opposite: a
	// lower-priority pending operator (assignment) must drain the '+'.
	s := evalstack.NewStack()
	s.PushLongConstant(1, true, 0)
	s.PushTerminal(token.OpPlus, 1)
	s.PushLongConstant(2, true, 2)

	var executed []token.Terminal
	exec := func(op token.Terminal, operands []evalstack.Level) (evalstack.Level, error) {
		executed = append(executed, op)
		return evalstack.Level{Kind: evalstack.LevelConstant, ValueKind: symbols.Long, Long: operands[0].Long + operands[1].Long}, nil
	}

	require.NoError(t, s.ReduceAllReady(token.OpAssign, exec))
	assert.Equal(t, []token.Terminal{token.OpPlus}, executed)
	assert.Equal(t, 1, s.Len())

	top, _ := s.Peek(0)
	assert.Equal(t, int32(3), top.Long)
}

func TestStack_ReduceAllReady_HigherPriorityPendingDoesNotReduce(t *testing.T) {
	s := evalstack.NewStack()
	s.PushLongConstant(1, true, 0)
	s.PushTerminal(token.OpPlus, 1)
	s.PushLongConstant(2, true, 2)

	exec := func(op token.Terminal, operands []evalstack.Level) (evalstack.Level, error) {
		t.Fatal("must not reduce '+' before a higher-priority pending '*'")
		return evalstack.Level{}, nil
	}

	require.NoError(t, s.ReduceAllReady(token.OpMult, exec))
	assert.Equal(t, 3, s.Len(), "stack must be untouched")
}

func TestStack_MakeIntermediateConstant_ClonesVariableString(t *testing.T) {
	s := evalstack.NewStack()
	alloc := symbols.NewAllocator()
	src := alloc.NewString(symbols.CatUserVarString, "hello")

	s.PushVariableRef(evalstack.VarRef{Index: 0}, 0)

	resolve := func(ref evalstack.VarRef) (symbols.ValueKind, int32, float32, *symbols.StringVal, error) {
		return symbols.StringPtr, 0, 0, src, nil
	}
	require.NoError(t, s.MakeIntermediateConstant(0, resolve, alloc))

	top, err := s.Peek(0)
	require.NoError(t, err)
	assert.Equal(t, evalstack.LevelConstant, top.Kind)
	assert.Equal(t, "hello", top.Str.String())
	assert.NotSame(t, src, top.Str, "the intermediate must own a distinct clone")
	assert.Equal(t, int64(1), alloc.Count(symbols.CatUserVarString))
	assert.Equal(t, int64(1), alloc.Count(symbols.CatIntermediateString))
}
