package flowctrl

// PushEval opens a frame for an `eval("...")` invocation, recording enough
// of the immediate arena's prior state to restore it when EvalEnd pops
// this frame (§4.2 "Eval invocation").
func (s *Stack) PushEval(savedImmediateStart, savedLen, evalWatermark int) {
	s.Push(Frame{
		Kind:                     FrameEval,
		SavedArenaImmediateStart: savedImmediateStart,
		SavedArenaLen:            savedLen,
		EvalWatermark:            evalWatermark,
	})
}

// PopEval closes the innermost eval frame.
func (s *Stack) PopEval() (Frame, bool) {
	if f := s.Top(); f == nil || f.Kind != FrameEval {
		return Frame{}, false
	}
	return s.Pop()
}

// PushBatchFile opens a frame for an `execBatchFile` invocation.
func (s *Stack) PushBatchFile(name string) {
	s.Push(Frame{Kind: FrameBatchFile, BatchFileName: name})
}

// PopBatchFile closes the innermost batch-file frame.
func (s *Stack) PopBatchFile() (Frame, bool) {
	if f := s.Top(); f == nil || f.Kind != FrameBatchFile {
		return Frame{}, false
	}
	return s.Pop()
}

// PushOpenBlock opens a `for`/`while`/`if` block frame.
func (s *Stack) PushOpenBlock(loop LoopState) {
	s.Push(Frame{Kind: FrameOpenBlock, Loop: loop})
}

// PopOpenBlock closes the innermost open-block frame (the matching `end`
// for a `while`/`if`, or a `for` loop whose Advance returned false).
func (s *Stack) PopOpenBlock() (Frame, bool) {
	if f := s.Top(); f == nil || f.Kind != FrameOpenBlock {
		return Frame{}, false
	}
	return s.Pop()
}
