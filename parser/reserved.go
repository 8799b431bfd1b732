package parser

// ArgKind is the class of a single command argument slot, consulted during
// parsing to validate what can follow a command keyword (§4.1 "Command
// forms").
type ArgKind int

const (
	ArgExpression ArgKind = iota
	ArgVariableOptAssign
	ArgNumericConstant
	ArgIdentifier
	ArgStringConstant
)

// ArgSpec describes one positional (or repeating) command argument.
type ArgSpec struct {
	Kind     ArgKind
	Optional bool
	Multiple bool // this slot (and everything after, if also Multiple) repeats
}

// CommandSpec is the allowed-parameter pattern for one reserved command
// word, indexed by keyword (§4.1 "an allowed-parameter pattern per command
// (indexed by a small integer key) drives argument-class checks").
type CommandSpec struct {
	Name      string
	Args      []ArgSpec
	OpensBlock bool // for/while/if
	ClosesBlock bool // end
	IsFunction  bool // "function" keyword itself
}

// reservedWords is the minimum command/keyword set §6 lists, plus the
// control-flow and declaration keywords §4 requires to drive the railroad
// validator and command dispatch.
var reservedWords = buildReservedWords()

func buildReservedWords() map[string]CommandSpec {
	m := map[string]CommandSpec{}
	add := func(spec CommandSpec) { m[spec.Name] = spec }

	// Declarations.
	add(CommandSpec{Name: "program", Args: []ArgSpec{{Kind: ArgIdentifier}}})
	add(CommandSpec{Name: "function", Args: []ArgSpec{{Kind: ArgIdentifier}, {Kind: ArgIdentifier, Optional: true, Multiple: true}}, IsFunction: true})
	add(CommandSpec{Name: "var", Args: []ArgSpec{{Kind: ArgVariableOptAssign, Multiple: true}}})
	add(CommandSpec{Name: "local", Args: []ArgSpec{{Kind: ArgVariableOptAssign, Multiple: true}}})
	add(CommandSpec{Name: "static", Args: []ArgSpec{{Kind: ArgVariableOptAssign, Multiple: true}}})
	add(CommandSpec{Name: "const", Args: []ArgSpec{{Kind: ArgVariableOptAssign, Multiple: true}}})

	// Control flow.
	add(CommandSpec{Name: "for", Args: []ArgSpec{{Kind: ArgExpression}}, OpensBlock: true})
	add(CommandSpec{Name: "while", Args: []ArgSpec{{Kind: ArgExpression}}, OpensBlock: true})
	add(CommandSpec{Name: "if", Args: []ArgSpec{{Kind: ArgExpression}}, OpensBlock: true})
	add(CommandSpec{Name: "elseif", Args: []ArgSpec{{Kind: ArgExpression}}})
	add(CommandSpec{Name: "else"})
	add(CommandSpec{Name: "end", ClosesBlock: true})
	add(CommandSpec{Name: "break"})
	add(CommandSpec{Name: "continue"})
	add(CommandSpec{Name: "return", Args: []ArgSpec{{Kind: ArgExpression, Optional: true}}})

	// Debug/session control.
	for _, name := range []string{"stop", "go", "step", "stepOver", "stepOut",
		"stepOutOfBlock", "stepToBlockEnd", "skip", "abort", "quit"} {
		add(CommandSpec{Name: name})
	}
	add(CommandSpec{Name: "setBP", Args: []ArgSpec{{Kind: ArgNumericConstant}}})
	add(CommandSpec{Name: "clearBP", Args: []ArgSpec{{Kind: ArgNumericConstant}}})
	add(CommandSpec{Name: "enableBP", Args: []ArgSpec{{Kind: ArgNumericConstant}}})
	add(CommandSpec{Name: "disableBP", Args: []ArgSpec{{Kind: ArgNumericConstant}}})
	add(CommandSpec{Name: "moveBP", Args: []ArgSpec{{Kind: ArgNumericConstant}, {Kind: ArgNumericConstant}}})
	add(CommandSpec{Name: "BPon"})
	add(CommandSpec{Name: "BPoff"})
	add(CommandSpec{Name: "BPactivate"})
	add(CommandSpec{Name: "setNextLine", Args: []ArgSpec{{Kind: ArgNumericConstant}}})

	add(CommandSpec{Name: "trace"})
	add(CommandSpec{Name: "debug"})
	add(CommandSpec{Name: "raiseError", Args: []ArgSpec{{Kind: ArgNumericConstant}}})
	add(CommandSpec{Name: "trapErrors", Args: []ArgSpec{{Kind: ArgExpression}}})
	add(CommandSpec{Name: "clearError"})

	add(CommandSpec{Name: "loadProg", Args: []ArgSpec{{Kind: ArgStringConstant}}})
	add(CommandSpec{Name: "execBatchFile", Args: []ArgSpec{{Kind: ArgStringConstant}}})
	add(CommandSpec{Name: "ditchBatchFile"})
	add(CommandSpec{Name: "gotoLabel", Args: []ArgSpec{{Kind: ArgIdentifier}}})
	add(CommandSpec{Name: "silent", Args: []ArgSpec{{Kind: ArgExpression, Optional: true}}})

	add(CommandSpec{Name: "setConsole", Args: []ArgSpec{{Kind: ArgExpression}}})
	add(CommandSpec{Name: "setConsIn", Args: []ArgSpec{{Kind: ArgExpression}}})
	add(CommandSpec{Name: "setConsOut", Args: []ArgSpec{{Kind: ArgExpression}}})
	add(CommandSpec{Name: "setDebugOut", Args: []ArgSpec{{Kind: ArgExpression}}})

	for _, name := range []string{"cout", "coutLine", "coutList", "print",
		"printLine", "printList", "printToVar", "dbout", "dboutLine"} {
		add(CommandSpec{Name: name, Args: []ArgSpec{{Kind: ArgExpression, Multiple: true, Optional: true}}})
	}
	add(CommandSpec{Name: "printVars"})
	add(CommandSpec{Name: "printCallSt"})
	add(CommandSpec{Name: "printBP"})
	add(CommandSpec{Name: "listFiles"})

	add(CommandSpec{Name: "dispWidth", Args: []ArgSpec{{Kind: ArgExpression}}})
	add(CommandSpec{Name: "floatFmt", Args: []ArgSpec{{Kind: ArgExpression}}})
	add(CommandSpec{Name: "intFmt", Args: []ArgSpec{{Kind: ArgExpression}}})
	add(CommandSpec{Name: "dispMod", Args: []ArgSpec{{Kind: ArgExpression}}})
	add(CommandSpec{Name: "tabSize", Args: []ArgSpec{{Kind: ArgExpression}}})
	add(CommandSpec{Name: "angle", Args: []ArgSpec{{Kind: ArgExpression}}})

	add(CommandSpec{Name: "pause", Args: []ArgSpec{{Kind: ArgExpression, Optional: true}}})
	add(CommandSpec{Name: "halt"})
	add(CommandSpec{Name: "info"})
	add(CommandSpec{Name: "input", Args: []ArgSpec{{Kind: ArgVariableOptAssign, Multiple: true}}})
	add(CommandSpec{Name: "startSD"})
	add(CommandSpec{Name: "stopSD"})
	add(CommandSpec{Name: "sendFile", Args: []ArgSpec{{Kind: ArgStringConstant}}})
	add(CommandSpec{Name: "receiveFile", Args: []ArgSpec{{Kind: ArgStringConstant}}})
	add(CommandSpec{Name: "copyFile", Args: []ArgSpec{{Kind: ArgStringConstant}, {Kind: ArgStringConstant}}})

	return m
}

// LookupReserved reports whether name is a reserved word, returning its
// command spec.
func LookupReserved(name string) (CommandSpec, bool) {
	spec, ok := reservedWords[name]
	return spec, ok
}
