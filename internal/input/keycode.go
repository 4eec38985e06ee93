package input

import "fmt"

// keyNames maps libuiohook virtual key codes to display names.
// Names carry the "Vc" prefix the hook library uses; tracker.Normalize strips it.
var keyNames = map[uint16]string{
	0x0001: "VcEscape",

	0x003B: "VcF1",
	0x003C: "VcF2",
	0x003D: "VcF3",
	0x003E: "VcF4",
	0x003F: "VcF5",
	0x0040: "VcF6",
	0x0041: "VcF7",
	0x0042: "VcF8",
	0x0043: "VcF9",
	0x0044: "VcF10",
	0x0057: "VcF11",
	0x0058: "VcF12",

	0x0029: "VcBackquote",
	0x0002: "Vc1",
	0x0003: "Vc2",
	0x0004: "Vc3",
	0x0005: "Vc4",
	0x0006: "Vc5",
	0x0007: "Vc6",
	0x0008: "Vc7",
	0x0009: "Vc8",
	0x000A: "Vc9",
	0x000B: "Vc0",
	0x000C: "VcMinus",
	0x000D: "VcEquals",
	0x000E: "VcBackspace",

	0x000F: "VcTab",
	0x003A: "VcCapsLock",

	0x001E: "VcA",
	0x0030: "VcB",
	0x002E: "VcC",
	0x0020: "VcD",
	0x0012: "VcE",
	0x0021: "VcF",
	0x0022: "VcG",
	0x0023: "VcH",
	0x0017: "VcI",
	0x0024: "VcJ",
	0x0025: "VcK",
	0x0026: "VcL",
	0x0032: "VcM",
	0x0031: "VcN",
	0x0018: "VcO",
	0x0019: "VcP",
	0x0010: "VcQ",
	0x0013: "VcR",
	0x001F: "VcS",
	0x0014: "VcT",
	0x0016: "VcU",
	0x002F: "VcV",
	0x0011: "VcW",
	0x002D: "VcX",
	0x0015: "VcY",
	0x002C: "VcZ",

	0x001A: "VcOpenBracket",
	0x001B: "VcCloseBracket",
	0x002B: "VcBackslash",
	0x0027: "VcSemicolon",
	0x0028: "VcQuote",
	0x001C: "VcEnter",
	0x0033: "VcComma",
	0x0034: "VcPeriod",
	0x0035: "VcSlash",
	0x0039: "VcSpace",

	0x0E37: "VcPrintScreen",
	0x0046: "VcScrollLock",
	0x0E45: "VcPause",

	0x0E52: "VcInsert",
	0x0E53: "VcDelete",
	0x0E47: "VcHome",
	0x0E4F: "VcEnd",
	0x0E49: "VcPageUp",
	0x0E51: "VcPageDown",

	0xE048: "VcUp",
	0xE04B: "VcLeft",
	0xE04C: "VcClear",
	0xE04D: "VcRight",
	0xE050: "VcDown",

	0x0045: "VcNumLock",
	0x0E35: "VcNumPadDivide",
	0x0037: "VcNumPadMultiply",
	0x004A: "VcNumPadSubtract",
	0x0E0D: "VcNumPadEquals",
	0x004E: "VcNumPadAdd",
	0x0E1C: "VcNumPadEnter",
	0x0053: "VcNumPadDecimal",
	0x004F: "VcNumPad1",
	0x0050: "VcNumPad2",
	0x0051: "VcNumPad3",
	0x004B: "VcNumPad4",
	0x004C: "VcNumPad5",
	0x004D: "VcNumPad6",
	0x0047: "VcNumPad7",
	0x0048: "VcNumPad8",
	0x0049: "VcNumPad9",
	0x0052: "VcNumPad0",

	0x002A: "VcLeftShift",
	0x0036: "VcRightShift",
	0x001D: "VcLeftControl",
	0x0E1D: "VcRightControl",
	0x0038: "VcLeftAlt",
	0x0E38: "VcRightAlt",
	0x0E5B: "VcLeftMeta",
	0x0E5C: "VcRightMeta",
	0x0E5D: "VcContextMenu",
}

// KeyName returns the hook-style name for a virtual key code.
// Unknown codes are rendered as hex so they still display and de-duplicate.
func KeyName(code uint16) string {
	if name, ok := keyNames[code]; ok {
		return name
	}
	return fmt.Sprintf("0x%04X", code)
}

// scanCodeToKeyCode converts a Set 1 scan code and its extended flag to the
// virtual code used by keyNames. Extended cursor keys use the 0xE0 page,
// every other extended key the 0x0E page. Windows reports 0x45 with the
// extended flag for NumLock and without it for Pause, the reverse of the table.
func scanCodeToKeyCode(scan uint32, extended bool) uint16 {
	code := uint16(scan & 0xFF)
	if code == 0x45 {
		if extended {
			return 0x0045
		}
		return 0x0E45
	}
	if !extended {
		return code
	}
	switch code {
	case 0x48, 0x4B, 0x4C, 0x4D, 0x50:
		return 0xE000 | code
	}
	return 0x0E00 | code
}
