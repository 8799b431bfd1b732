package flowctrl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"justina/flowctrl"
	"justina/symbols"
)

func TestStack_PushPopFunctionCall(t *testing.T) {
	s := flowctrl.NewStack()
	s.PushFunctionCall(3, 100, 2, 4, -1)
	assert.Equal(t, 1, s.Len())

	f, ok := s.PopFunctionCall()
	require.True(t, ok)
	assert.Equal(t, 3, f.FuncIndex)
	assert.Equal(t, 100, f.ReturnOffset)
	assert.Len(t, f.Locals, 4)
}

func TestStack_ForLoopAdvanceLongStep(t *testing.T) {
	s := flowctrl.NewStack()
	store := symbols.NewValueStore(4)
	idx, err := store.Alloc()
	require.NoError(t, err)
	store.Slot(idx).SetLong(0)

	loop := flowctrl.LoopState{
		Kind: flowctrl.LoopFor, ControlStore: store, ControlIndex: idx,
		IsLong: true, FinalLong: 2, StepLong: 1, BlockEndOffset: 50,
	}
	s.PushOpenBlock(loop)

	top := s.Top()
	assert.True(t, top.Loop.Advance())
	assert.Equal(t, int32(1), store.Slot(idx).AsLong())
	assert.True(t, top.Loop.Advance())
	assert.Equal(t, int32(2), store.Slot(idx).AsLong())
	assert.False(t, top.Loop.Advance(), "loop must stop once the control variable passes Final")
}

func TestStack_BreakPopsFrameAndContinueDoesNot(t *testing.T) {
	s := flowctrl.NewStack()
	s.PushOpenBlock(flowctrl.LoopState{Kind: flowctrl.LoopWhile, BlockEndOffset: 77})

	offset, ok := s.Continue()
	require.True(t, ok)
	assert.Equal(t, 77, offset)
	assert.Equal(t, 1, s.Len(), "continue must not pop the loop frame")

	offset, ok = s.Break()
	require.True(t, ok)
	assert.Equal(t, 77, offset)
	assert.Equal(t, 0, s.Len(), "break must pop the loop frame")
}

func TestStack_UnwindNoStoppedPrograms(t *testing.T) {
	s := flowctrl.NewStack()
	s.PushOpenBlock(flowctrl.LoopState{})
	s.PushFunctionCall(0, 0, 0, 0, -1)
	s.UnwindNoStoppedPrograms()
	assert.Equal(t, 0, s.Len())
}

func TestStack_UnwindToDebugCommandLineStopsAtNearestStoppedFrame(t *testing.T) {
	s := flowctrl.NewStack()
	s.PushFunctionCall(0, 0, 0, 0, -1)
	s.Top().Stopped = true
	s.PushOpenBlock(flowctrl.LoopState{})
	s.PushFunctionCall(1, 0, 0, 0, -1)

	ok := s.UnwindToDebugCommandLine()
	require.True(t, ok)
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Top().Stopped)
}

func TestStack_UnwindAbortDropsTopAndNearestStoppedFrame(t *testing.T) {
	s := flowctrl.NewStack()
	s.PushFunctionCall(0, 0, 0, 0, -1)
	s.Top().Stopped = true
	s.PushOpenBlock(flowctrl.LoopState{})
	s.PushEval(0, 0, 0)

	ok := s.UnwindAbort()
	require.True(t, ok)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, flowctrl.FrameOpenBlock, s.Top().Kind)
}

func TestBindByValue_ClonesStringIndependently(t *testing.T) {
	alloc := symbols.NewAllocator()
	strings := symbols.NewStringTable()
	src := alloc.NewString(symbols.CatUserVarString, "abc")

	slot := flowctrl.BindByValue(alloc, strings, symbols.StringPtr, 0, 0, src)
	handle := slot.Owned.AsLong()
	clone := strings.Get(handle)

	assert.Equal(t, "abc", clone.String())
	assert.NotSame(t, src, clone)
	assert.Equal(t, int64(1), alloc.Count(symbols.CatUserVarString))
	assert.Equal(t, int64(1), alloc.Count(symbols.CatLocalVarString))
}

func TestBindByRef_ResolvesToCallerSlot(t *testing.T) {
	store := symbols.NewValueStore(4)
	idx, err := store.Alloc()
	require.NoError(t, err)
	store.Slot(idx).SetLong(99)

	slot := flowctrl.BindByRef(store, idx, symbols.ScopeGlobal)
	resolved := flowctrl.ResolveSlot(&slot)
	assert.Equal(t, int32(99), resolved.AsLong())

	store.Slot(idx).SetLong(100)
	assert.Equal(t, int32(100), flowctrl.ResolveSlot(&slot).AsLong(), "a by-ref slot must see the caller's live updates")
}
