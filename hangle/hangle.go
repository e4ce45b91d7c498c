// Package hangle composes and decomposes Hangul syllables into their
// lead consonant (chosung), vowel (jungsung) and tail consonant (jongsung).
//
// All components are expressed as Hangul compatibility jamo (U+3131..U+3163),
// the same characters used in dictionary and corpus files, so a tail
// consonant can be compared directly with a lead consonant or with a bare
// consonant morph such as "ㄴ".
package hangle

const (
	syllableBegin = 0xAC00 // 가
	syllableEnd   = 0xD7A3 // 힣
	leadBase      = 588    // 21 vowels * 28 tails
	vowelBase     = 28

	jaumBegin = 0x3131 // ㄱ
	jaumEnd   = 0x314E // ㅎ
	moumBegin = 0x314F // ㅏ
	moumEnd   = 0x3163 // ㅣ
)

// Filler is the tail component of a syllable without a final consonant.
const Filler = ' '

// ZeroConsonant is the silent lead consonant written before a vowel-initial syllable.
const ZeroConsonant = 'ㅇ'

var (
	leads = []rune{
		'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ',
		'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ',
		'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ',
		'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
	}

	vowels = []rune{
		'ㅏ', 'ㅐ', 'ㅑ', 'ㅒ', 'ㅓ',
		'ㅔ', 'ㅕ', 'ㅖ', 'ㅗ', 'ㅘ',
		'ㅙ', 'ㅚ', 'ㅛ', 'ㅜ', 'ㅝ',
		'ㅞ', 'ㅟ', 'ㅠ', 'ㅡ', 'ㅢ',
		'ㅣ',
	}

	tails = []rune{
		Filler, 'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ',
		'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ',
		'ㄻ', 'ㄼ', 'ㄽ', 'ㄾ', 'ㄿ',
		'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ', 'ㅅ',
		'ㅆ', 'ㅇ', 'ㅈ', 'ㅊ', 'ㅋ',
		'ㅌ', 'ㅍ', 'ㅎ',
	}

	leadIdx  = indexOf(leads)
	vowelIdx = indexOf(vowels)
	tailIdx  = indexOf(tails)
)

func indexOf(alphabet []rune) map[rune]int {
	ans := make(map[rune]int, len(alphabet))
	for i, r := range alphabet {
		ans[r] = i
	}
	return ans
}

// IsSyllable reports whether r is a precomposed Hangul syllable.
func IsSyllable(r rune) bool {
	return r >= syllableBegin && r <= syllableEnd
}

// IsHangle reports whether s is non-empty and consists of Hangul syllables only.
func IsHangle(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !IsSyllable(r) {
			return false
		}
	}
	return true
}

// IsJaum reports whether r is a compatibility consonant jamo (ㄱ..ㅎ).
func IsJaum(r rune) bool {
	return r >= jaumBegin && r <= jaumEnd
}

// IsMoum reports whether r is a compatibility vowel jamo (ㅏ..ㅣ).
func IsMoum(r rune) bool {
	return r >= moumBegin && r <= moumEnd
}

// Decompose splits a syllable into its lead, vowel and tail components.
// The tail of an open syllable is Filler. The last return value is false
// when r is not a precomposed Hangul syllable.
func Decompose(r rune) (lead, vowel, tail rune, ok bool) {
	if !IsSyllable(r) {
		return 0, 0, 0, false
	}
	i := int(r - syllableBegin)
	l := i / leadBase
	v := (i - l*leadBase) / vowelBase
	t := i - l*leadBase - v*vowelBase
	return leads[l], vowels[v], tails[t], true
}

// Compose is the inverse of Decompose. The last return value is false
// when any component is not a member of its alphabet.
func Compose(lead, vowel, tail rune) (rune, bool) {
	l, ok := leadIdx[lead]
	if !ok {
		return 0, false
	}
	v, ok := vowelIdx[vowel]
	if !ok {
		return 0, false
	}
	t, ok := tailIdx[tail]
	if !ok {
		return 0, false
	}
	return rune(syllableBegin + l*leadBase + v*vowelBase + t), true
}
