package parser

// internalFunctions is the fixed table of built-in function names recognized
// during classification (§4.1 "internal function name"), each carrying its
// legal argument-count range. Grounded on the source's built-in function
// list (original_source/src/Justina.h); trigonometric and string-utility
// names are the ones referenced elsewhere in spec.md (§6 "angle" format
// command implies sin/cos/tan exist).
var internalFunctions = map[string]ArgSpec{
	"abs": {Kind: ArgExpression}, "sgn": {Kind: ArgExpression},
	"sqrt": {Kind: ArgExpression}, "exp": {Kind: ArgExpression}, "ln": {Kind: ArgExpression},
	"log10": {Kind: ArgExpression}, "sin": {Kind: ArgExpression}, "cos": {Kind: ArgExpression},
	"tan": {Kind: ArgExpression}, "asin": {Kind: ArgExpression}, "acos": {Kind: ArgExpression},
	"atan": {Kind: ArgExpression}, "min": {Kind: ArgExpression, Multiple: true},
	"max": {Kind: ArgExpression, Multiple: true}, "round": {Kind: ArgExpression},
	"floor": {Kind: ArgExpression}, "ceil": {Kind: ArgExpression},
	"len": {Kind: ArgExpression}, "left": {Kind: ArgExpression, Multiple: true},
	"right": {Kind: ArgExpression, Multiple: true}, "mid": {Kind: ArgExpression, Multiple: true},
	"trim": {Kind: ArgExpression}, "upper": {Kind: ArgExpression}, "lower": {Kind: ArgExpression},
	"str": {Kind: ArgExpression}, "val": {Kind: ArgExpression},
	"ascii": {Kind: ArgExpression}, "chr": {Kind: ArgExpression},
	"eval": {Kind: ArgStringConstant},
	"err":  {Kind: ArgExpression, Optional: true},
	"millis": {Kind: ArgExpression, Optional: true}, "systemInfo": {Kind: ArgExpression, Optional: true},
}

// isInternalFunction reports whether name names a built-in function.
func isInternalFunction(name string) bool {
	_, ok := internalFunctions[name]
	return ok
}

// internalFunctionIndex assigns each built-in function a stable small
// integer so a token.InternalFn record can reference it the same way a
// name-kind record references a symbol-table slot.
var internalFunctionIndex = buildInternalFunctionIndex()

func buildInternalFunctionIndex() map[string]int {
	var names []string
	for name := range internalFunctions {
		names = append(names, name)
	}
	idx := make(map[string]int, len(names))
	for i, name := range names {
		idx[name] = i
	}
	return idx
}
