package htmltok

// namedEntities is a practical subset of the WHATWG named character
// reference table — the common legacy and symbol entities a real page is
// likely to use. It intentionally stops short of the full multi-thousand
// entry table: character-reference decoding beyond a named/numeric hook
// point is out of scope here.
var namedEntities = map[string]string{
	"amp": "&", "lt": "<", "gt": ">", "quot": "\"", "apos": "'",
	"nbsp": " ", "copy": "©", "reg": "®", "trade": "™",
	"deg": "°", "plusmn": "±", "cent": "¢", "pound": "£",
	"euro": "€", "yen": "¥", "sect": "§", "para": "¶",
	"middot": "·", "bull": "•", "hellip": "…",
	"prime": "′", "Prime": "″", "ndash": "–", "mdash": "—",
	"lsquo": "‘", "rsquo": "’", "ldquo": "“", "rdquo": "”",
	"sbquo": "‚", "bdquo": "„", "laquo": "«", "raquo": "»",
	"thinsp": " ", "ensp": " ", "emsp": " ",
	"times": "×", "divide": "÷", "minus": "−", "lowast": "∗",
	"le": "≤", "ge": "≥", "ne": "≠", "equiv": "≡",
	"asymp": "≈", "infin": "∞", "sum": "∑", "prod": "∏",
	"radic": "√", "part": "∂", "int": "∫",
	"larr": "←", "uarr": "↑", "rarr": "→", "darr": "↓",
	"harr": "↔", "lArr": "⇐", "uArr": "⇑", "rArr": "⇒",
	"dArr": "⇓", "hArr": "⇔",
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ",
	"epsilon": "ε", "pi": "π", "sigma": "σ", "omega": "ω",
	"Alpha": "Α", "Beta": "Β", "Gamma": "Γ", "Delta": "Δ",
	"Epsilon": "Ε", "Pi": "Π", "Sigma": "Σ", "Omega": "Ω",
	"iexcl": "¡", "iquest": "¿", "loz": "◊",
	"spades": "♠", "clubs": "♣", "hearts": "♥", "diams": "♦",
	"AMP": "&", "LT": "<", "GT": ">", "QUOT": "\"",
	"shy": "­", "micro": "µ", "sup1": "¹", "sup2": "²",
	"sup3": "³", "frac12": "½", "frac14": "¼", "frac34": "¾",
}

// maxNamedEntityLen bounds the greedy-match scan in the tokenizer's named
// character reference state.
var maxNamedEntityLen = func() int {
	max := 0
	for k := range namedEntities {
		if len(k) > max {
			max = len(k)
		}
	}
	return max
}()

// numericReplacements implements the Windows-1252-derived substitution
// table the WHATWG spec mandates for numeric character references in the
// C1 control range (0x80-0x9F), e.g. &#128; must decode to U+20AC EURO
// SIGN rather than U+0080.
var numericReplacements = map[rune]rune{
	0x80: 0x20AC, 0x82: 0x201A, 0x83: 0x0192, 0x84: 0x201E,
	0x85: 0x2026, 0x86: 0x2020, 0x87: 0x2021, 0x88: 0x02C6,
	0x89: 0x2030, 0x8A: 0x0160, 0x8B: 0x2039, 0x8C: 0x0152,
	0x8E: 0x017D, 0x91: 0x2018, 0x92: 0x2019, 0x93: 0x201C,
	0x94: 0x201D, 0x95: 0x2022, 0x96: 0x2013, 0x97: 0x2014,
	0x98: 0x02DC, 0x99: 0x2122, 0x9A: 0x0161, 0x9B: 0x203A,
	0x9C: 0x0153, 0x9E: 0x017E, 0x9F: 0x0178,
}

// resolveNumericReference maps a raw numeric character reference code
// point to the scalar value that should actually be inserted, applying
// the C1 substitution table, the null/surrogate/out-of-range
// replacements, and noting which (if any) parse error applies.
func resolveNumericReference(code int64) (r rune, errCode string) {
	if code == 0 {
		return 0xFFFD, "null-character-reference"
	}
	if code > 0x10FFFF {
		return 0xFFFD, "character-reference-outside-unicode-range"
	}
	if code >= 0xD800 && code <= 0xDFFF {
		return 0xFFFD, "surrogate-character-reference"
	}
	if rep, ok := numericReplacements[rune(code)]; ok {
		return rep, ""
	}
	if isNoncharacter(rune(code)) {
		return rune(code), "noncharacter-character-reference"
	}
	if isControlReference(rune(code)) {
		return rune(code), "control-character-reference"
	}
	return rune(code), ""
}

func isNoncharacter(c rune) bool {
	if c >= 0xFDD0 && c <= 0xFDEF {
		return true
	}
	switch c & 0xFFFE {
	case 0xFFFE:
		return true
	}
	return false
}

func isControlReference(c rune) bool {
	if c >= 0x0001 && c <= 0x001F {
		switch c {
		case 0x0009, 0x000A, 0x000C:
			return false
		}
		return true
	}
	return c >= 0x007F && c <= 0x009F
}
