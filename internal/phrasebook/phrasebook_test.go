package phrasebook

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/arabizi-backend/internal/domain"
)

func TestBook_Lookup(t *testing.T) {
	t.Parallel()

	book := New()

	tests := []struct {
		name        string
		input       string
		wantKey     string
		wantEnglish string
		wantArabic  string
	}{
		{name: "exact key", input: "salam 3lykm", wantKey: "salam 3lykm", wantEnglish: "Peace be upon you", wantArabic: "السلام عليكم"},
		{name: "uppercase", input: "SHUKRAN", wantKey: "shukran", wantEnglish: "Thank you", wantArabic: "شكرًا"},
		{name: "extra whitespace", input: "  kif \t 7alk ", wantKey: "kif 7alk", wantEnglish: "How are you?", wantArabic: "كيف حالك؟"},
		{name: "three words", input: "t9b7 3la 5eir", wantKey: "t9b7 3la 5eir", wantEnglish: "Good night", wantArabic: "تصبح على خير"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, ok := book.Lookup(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.wantKey, p.Key)
			assert.Equal(t, tt.wantEnglish, p.English)
			assert.Equal(t, tt.wantArabic, p.Arabic)
		})
	}
}

func TestBook_Lookup_AudioNames(t *testing.T) {
	t.Parallel()

	p, ok := New().Lookup("9ba7 al5eir")
	require.True(t, ok)

	assert.Equal(t, "9ba7_al5eir_ar.mp3", p.ArabicAudio)
	assert.Equal(t, "9ba7_al5eir_en.mp3", p.EnglishAudio)
}

func TestBook_Lookup_Miss(t *testing.T) {
	t.Parallel()

	book := New()
	for _, in := range []string{"", "   ", "7abibi", "salam", "salam 3lykm ya 7abibi"} {
		_, ok := book.Lookup(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestPhrases_KeysNormalised(t *testing.T) {
	t.Parallel()

	book := New()
	assert.Equal(t, 12, book.Len())

	for key, e := range phrases {
		assert.Equal(t, domain.NormalizeText(key), key, "key %q is not normalised", key)
		assert.NotEmpty(t, e.arabic)
		assert.NotEmpty(t, e.english)
		assert.False(t, strings.ContainsAny(key, "/\\"), "key %q cannot be a file name", key)
	}
}

func TestNotFoundMessage(t *testing.T) {
	t.Parallel()

	assert.True(t, strings.HasPrefix(NotFoundMessage, "عذرًا"))
}
