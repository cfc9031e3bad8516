// Package phrasebook holds curated translations for common Arabizi phrases.
// A phrasebook hit carries hand-checked Arabic and English plus the file
// names its pre-recorded audio would have. Whether those recordings are
// installed is up to the audio store.
package phrasebook

import (
	"strings"

	"github.com/heartmarshall/arabizi-backend/internal/domain"
)

// NotFoundMessage is the Arabic notice returned as reference for phrases
// that are not in the book.
const NotFoundMessage = "عذرًا، هذه الجملة غير موجودة في القاموس حتى الآن."

// Phrase is one curated entry.
type Phrase struct {
	Key          string
	Arabic       string
	English      string
	ArabicAudio  string // recording file name, e.g. "kif_7alk_ar.mp3"
	EnglishAudio string
}

type entry struct {
	arabic  string
	english string
}

var phrases = map[string]entry{
	"salam 3lykm":   {"السلام عليكم", "Peace be upon you"},
	"kif 7alk":      {"كيف حالك؟", "How are you?"},
	"ana b5eir":     {"أنا بخير", "I'm fine"},
	"ana t3ban":     {"أنا تعبان", "I'm tired"},
	"9ba7 al5eir":   {"صباح الخير", "Good morning"},
	"m3 alslamh":    {"مع السلامة", "Goodbye"},
	"msa2 al5eir":   {"مساء الخير", "Good evening"},
	"t9b7 3la 5eir": {"تصبح على خير", "Good night"},
	"shukran":       {"شكرًا", "Thank you"},
	"afwan":         {"عفوًا", "You're welcome"},
	"la t7aty":      {"لا تحاتي", "Don't worry"},
	"waink":         {"وينك؟", "Where are you?"},
}

// Book looks up curated phrases.
type Book struct{}

// New creates a Book.
func New() *Book { return &Book{} }

// Lookup finds the phrase matching text after normalisation.
func (b *Book) Lookup(text string) (Phrase, bool) {
	key := domain.NormalizeText(text)
	e, ok := phrases[key]
	if !ok {
		return Phrase{}, false
	}

	base := strings.ReplaceAll(key, " ", "_")
	return Phrase{
		Key:          key,
		Arabic:       e.arabic,
		English:      e.english,
		ArabicAudio:  base + "_ar.mp3",
		EnglishAudio: base + "_en.mp3",
	}, true
}

// Len returns the number of curated phrases.
func (b *Book) Len() int { return len(phrases) }
