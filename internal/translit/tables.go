package translit

// rule is an ordered pattern → replacement pair.
type rule struct {
	pattern     string
	replacement string
}

// multiCharRules are applied as global string replacements, top to bottom,
// before any token is looked at. Later rules see the output of earlier ones.
var multiCharRules = []rule{
	{"sh", "ش"},
	{"kh", "خ"},
	{"gh", "غ"},
	{"th", "ث"},
	{"dh", "ذ"},
	{"3'", "غ"},
	{"7'", "خ"},
	{"9'", "ض"},
	{"6'", "ظ"},
	{"ee", "ي"},
	{"oo", "و"},
	{"ou", "و"},
	{"ei", "ي"},
	{"ai", "ي"},
	{"aa", "ا"},
	{"ss", "س"},
}

// singleChars maps a Latin letter or Arabizi digit to one Arabic letter.
var singleChars = map[rune]rune{
	'a': 'ا',
	'b': 'ب',
	'p': 'ب',
	't': 'ت',
	'j': 'ج',
	'g': 'ج',
	'7': 'ح',
	'5': 'خ',
	'd': 'د',
	'r': 'ر',
	'z': 'ز',
	's': 'س',
	'9': 'ص',
	'6': 'ط',
	'3': 'ع',
	'f': 'ف',
	'v': 'ف',
	'8': 'ق',
	'q': 'ق',
	'k': 'ك',
	'c': 'ك',
	'l': 'ل',
	'm': 'م',
	'n': 'ن',
	'h': 'ه',
	'w': 'و',
	'o': 'و',
	'u': 'و',
	'y': 'ي',
	'i': 'ي',
	'e': 'ي',
	'2': 'ء',
}

// specialWords are whole-token overrides. Keys must not contain any
// multiCharRules pattern, otherwise the rewrite pass destroys them first.
var specialWords = map[string]string{
	"7abibi":  "حبيبي",
	"7abibti": "حبيبتي",
	"allah":   "الله",
	"wallah":  "والله",
	"yalla":   "يلا",
	"ahlan":   "أهلا",
	"tayeb":   "طيب",
	"3ady":    "عادي",
	"la2":     "لا",
	"inta":    "إنت",
	"inti":    "إنتي",
	"hala":    "هلا",
	"mar7aba": "مرحبا",
}

// substringExceptions are matched at every cursor position inside a token,
// ahead of the single character map.
var substringExceptions = []rule{
	{"7alk", "حالك"},
}

// corrections fixes known misspellings in transliterated output.
var corrections = map[string]string{
	"انا":     "أنا",
	"انت":     "أنت",
	"انتي":    "أنتي",
	"علا":     "على",
	"السلامه": "السلامة",
	"اهلا":    "أهلا",
	"شوكران":  "شكرا",
	"افوان":   "عفوا",
	"الى":     "إلى",
	"اذا":     "إذا",
}

const (
	arabicBlockStart = 0x0600
	arabicBlockEnd   = 0x06FF
)

func isArabic(r rune) bool {
	return r >= arabicBlockStart && r <= arabicBlockEnd
}
