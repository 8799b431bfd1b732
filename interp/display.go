package interp

// DisplaySettings holds the formatting directives the original source
// exposes as the `dispWidth`/`floatFmt`/`intFmt`/`dispMod`/`tabSize`/`angle`
// commands (src/commands.cpp), consulted only by the print family
// (cout*/print*/dbout*) and never by the evaluator core, per SPEC_FULL.md's
// supplemented-features note keeping the print-family interface boundary
// intact.
type DisplaySettings struct {
	// Width is the minimum field width (0 = no padding) used by dispWidth.
	Width int
	// FloatFmt is a printf-style verb ('f', 'e', 'g') set by floatFmt.
	FloatFmt byte
	// FloatPrecision is the number of digits after the decimal point.
	FloatPrecision int
	// IntFmt is the base radix used by intFmt: 10 (decimal), 16 (hex), 8 (octal), 2 (binary).
	IntFmt int
	// DispMod selects how booleans/specials render ("dispMod" in the source).
	DispMod int
	// TabSize is the column width used to expand tab stops in list output.
	TabSize int
	// AngleInDegrees selects degrees (true) vs. radians (false) for trig functions.
	AngleInDegrees bool
}

// DefaultDisplaySettings matches the original interpreter's boot defaults.
func DefaultDisplaySettings() DisplaySettings {
	return DisplaySettings{
		Width:          0,
		FloatFmt:       'g',
		FloatPrecision: 6,
		IntFmt:         10,
		DispMod:        0,
		TabSize:        8,
		AngleInDegrees: false,
	}
}
