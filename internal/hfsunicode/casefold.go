package hfsunicode

// caseFoldPage holds the 256 per-code-unit overrights for one high byte
// of the Unicode BMP. A zero entry means "folds to itself" — no page
// folds its own NUL code unit to anything else, so zero doubles as the
// identity marker and pages only need to list their actual case pairs.
type caseFoldPage [256]uint16

// caseFoldPages is Apple's fixed HFS+ lowercase-mapping table from
// TN1150, frozen at the Unicode revision HFS+ shipped with and never
// updated to track later Unicode case-rule changes. It is addressed by
// a code unit's high byte; any page not listed here folds every code
// unit in it to itself. Entries cross block boundaries where the real
// table does (Ÿ U+0178 folds into the Latin-1 page, for instance), and
// the three letterlike symbols Apple's table folds against their
// intent rather than their shape (KELVIN SIGN, ANGSTROM SIGN, OHM SIGN)
// are carried in their own page rather than derived from a general
// Unicode case mapping.
var caseFoldPages = map[uint16]*caseFoldPage{
	0x00: &caseFoldPage00,
	0x01: &caseFoldPage01,
	0x03: &caseFoldPage03,
	0x04: &caseFoldPage04,
	0x21: &caseFoldPage21,
}

// caseFold returns the HFS+ case-folded form of a single UTF-16 code
// unit, for use by the "H+" (case-insensitive) key-compare rule.
func caseFold(u uint16) uint16 {
	page, ok := caseFoldPages[u>>8]
	if !ok {
		return u
	}
	if folded := page[u&0xFF]; folded != 0 {
		return folded
	}
	return u
}

// caseFoldPage00 covers Basic Latin and the Latin-1 Supplement: A-Z and
// the accented Latin-1 capitals fold by +0x20, skipping 0xD7 (MULTIPLICATION
// SIGN, not a letter). The micro sign (0xB5) is deliberately absent —
// Apple's table holds it unchanged rather than folding it.
var caseFoldPage00 = buildCaseFoldPage(func(set func(from, to uint16)) {
	for c := uint16('A'); c <= 'Z'; c++ {
		set(c, c+0x20)
	}
	for c := uint16(0x00C0); c <= 0x00DE; c++ {
		if c == 0x00D7 {
			continue
		}
		set(c, c+0x20)
	}
})

// caseFoldPage01 covers Latin Extended-A: almost entirely capital/lowercase
// pairs, each capital immediately followed by its lowercase letter, with
// three deliberate exceptions —
// LATIN CAPITAL LETTER I WITH DOT ABOVE (0x0130) folds to plain 'i'
// rather than to a dotless lowercase i, and LATIN CAPITAL LETTER Y WITH
// DIAERESIS (0x0178) and LATIN SMALL LETTER LONG S (0x017F, already
// lowercase) fold outside this page entirely.
var caseFoldPage01 = buildCaseFoldPage(func(set func(from, to uint16)) {
	pairedRanges := [][2]uint16{{0x0100, 0x0137}, {0x0139, 0x0148}, {0x014A, 0x0177}, {0x0179, 0x017E}}
	for _, r := range pairedRanges {
		for c := r[0]; c < r[1]; c += 2 {
			set(c, c+1)
		}
	}
	set(0x0130, 'i')
	set(0x0178, 0x00FF) // Ÿ -> ÿ, in the Latin-1 Supplement page
	set(0x017F, 's')    // ſ -> s
})

// caseFoldPage03 covers Greek: the capital ranges fold by +0x20, and the
// seven accented capitals with no neighbor in the main range (Ά, Έ, Ή,
// Ί, Ό, Ύ, Ώ) fold individually.
var caseFoldPage03 = buildCaseFoldPage(func(set func(from, to uint16)) {
	for c := uint16(0x0391); c <= 0x03A1; c++ {
		set(c, c+0x20)
	}
	for c := uint16(0x03A3); c <= 0x03AB; c++ {
		set(c, c+0x20)
	}
	set(0x0386, 0x03AC)
	set(0x0388, 0x03AD)
	set(0x0389, 0x03AE)
	set(0x038A, 0x03AF)
	set(0x038C, 0x03CC)
	set(0x038E, 0x03CD)
	set(0x038F, 0x03CE)
})

// caseFoldPage04 covers Cyrillic: the Ѐ-Џ row folds by +0x50 and the
// main А-Я row folds by +0x20.
var caseFoldPage04 = buildCaseFoldPage(func(set func(from, to uint16)) {
	for c := uint16(0x0400); c <= 0x040F; c++ {
		set(c, c+0x50)
	}
	for c := uint16(0x0410); c <= 0x042F; c++ {
		set(c, c+0x20)
	}
})

// caseFoldPage21 carries the three Letterlike Symbols HFS+ folds by
// meaning rather than shape: KELVIN SIGN to 'k', ANGSTROM SIGN to the
// Latin-1 a-with-ring, and OHM SIGN to the Greek lowercase omega.
var caseFoldPage21 = buildCaseFoldPage(func(set func(from, to uint16)) {
	set(0x2126, 0x03C9) // OHM SIGN -> ω
	set(0x212A, 'k')    // KELVIN SIGN -> k
	set(0x212B, 0x00E5) // ANGSTROM SIGN -> å
})

func buildCaseFoldPage(fill func(set func(from, to uint16))) caseFoldPage {
	var page caseFoldPage
	fill(func(from, to uint16) { page[from&0xFF] = to })
	return page
}
