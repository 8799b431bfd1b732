package flowctrl

// controlLong and controlFloat read the current value of a loop's control
// variable as a long or a float view (only one is meaningful, per IsLong).
func (l *LoopState) controlLong() int32 {
	if l.ControlSlot != nil {
		return l.ControlSlot.Owned.AsLong()
	}
	return l.ControlStore.Slot(l.ControlIndex).AsLong()
}

func (l *LoopState) controlFloat() float32 {
	if l.ControlSlot != nil {
		return l.ControlSlot.Owned.AsFloat()
	}
	return l.ControlStore.Slot(l.ControlIndex).AsFloat()
}

func (l *LoopState) setControlLong(v int32) {
	if l.ControlSlot != nil {
		l.ControlSlot.Owned.SetLong(v)
		return
	}
	l.ControlStore.Slot(l.ControlIndex).SetLong(v)
}

func (l *LoopState) setControlFloat(v float32) {
	if l.ControlSlot != nil {
		l.ControlSlot.Owned.SetFloat(v)
		return
	}
	l.ControlStore.Slot(l.ControlIndex).SetFloat(v)
}

// Advance increments the control variable by Step and reports whether the
// loop should continue (the terminating `end` statement's "increment and
// re-test", §4.2). For While/If frames (which have no increment/step of
// their own — their re-test is the guard expression, evaluated by the
// interpreter, not here) Advance always reports false so the caller knows
// to fall through to re-evaluating the condition itself.
func (l *LoopState) Advance() bool {
	if l.Kind != LoopFor {
		return false
	}
	if l.IsLong {
		v := l.controlLong() + l.StepLong
		l.setControlLong(v)
		if l.StepLong >= 0 {
			return v <= l.FinalLong
		}
		return v >= l.FinalLong
	}
	v := l.controlFloat() + l.StepFloat
	l.setControlFloat(v)
	if l.StepFloat >= 0 {
		return v <= l.FinalFloat
	}
	return v >= l.FinalFloat
}

// Break implements the `break` command: pop frames up to and including the
// nearest open-block frame and return the arena offset of its matching `end`
// (§4.2 "break skips to the matching end and pops").
func (s *Stack) Break() (nextOffset int, ok bool) {
	depth, found := s.InnermostOpenBlock()
	if !found {
		return 0, false
	}
	frame := s.frames[depth]
	s.TruncateTo(depth)
	return frame.Loop.BlockEndOffset, true
}

// Continue implements the `continue` command: jump to the matching `end`
// without popping the loop frame (§4.2 "continue skips to the matching end
// without popping").
func (s *Stack) Continue() (nextOffset int, ok bool) {
	depth, found := s.InnermostOpenBlock()
	if !found {
		return 0, false
	}
	return s.frames[depth].Loop.BlockEndOffset, true
}
