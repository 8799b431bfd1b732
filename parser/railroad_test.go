package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRailroad_CommaCannotFollowComma(t *testing.T) {
	rr := NewRailroad()
	_, ok := rr.Accept(ClassVariable)
	assert.True(t, ok)
	_, ok = rr.Accept(ClassComma)
	assert.True(t, ok) // comma legally follows a variable (argument separator)
	_, ok = rr.Accept(ClassComma)
	assert.False(t, ok, "a comma cannot directly follow another comma")
}

func TestRailroad_FunctionNameMustBeFollowedByLeftParen(t *testing.T) {
	rr := NewRailroad()
	_, ok := rr.Accept(ClassFunctionName)
	assert.True(t, ok)
	_, ok = rr.Accept(ClassNumber)
	assert.False(t, ok, "a function name must be followed by '('")
	_, ok = rr.Accept(ClassLeftParen)
	assert.True(t, ok)
}

func TestRailroad_FrameStackTracksBlockAndParenContexts(t *testing.T) {
	rr := NewRailroad()
	rr.PushFrame(Frame{IsBlock: true, BlockKeyword: "if"})
	rr.PushFrame(Frame{})
	assert.Equal(t, 2, rr.Depth())
	assert.Equal(t, 1, rr.BlockDepth())

	f, ok := rr.PopFrame()
	assert.True(t, ok)
	assert.False(t, f.IsBlock)
	assert.Equal(t, 1, rr.Depth())
}

func TestRailroad_TruncateToDiscardsUnclosedParenFrames(t *testing.T) {
	rr := NewRailroad()
	rr.PushFrame(Frame{IsBlock: true})
	baseline := rr.Depth()
	rr.PushFrame(Frame{})
	rr.PushFrame(Frame{})
	rr.TruncateTo(baseline)
	assert.Equal(t, baseline, rr.Depth())
}

func TestRailroad_ResetPreservesFramesButClearsLastClass(t *testing.T) {
	rr := NewRailroad()
	rr.PushFrame(Frame{IsBlock: true, BlockKeyword: "for"})
	_, _ = rr.Accept(ClassVariable)
	rr.Reset()
	assert.Equal(t, 1, rr.Depth(), "block frames must survive a statement boundary")
	_, ok := rr.Accept(ClassKeyword)
	assert.True(t, ok, "last class must reset to line-start at a new statement")
}
