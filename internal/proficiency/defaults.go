package proficiency

// EnglishIPA is the General American phoneme inventory in IPA, used to
// seed a learner when no model vocabulary is configured.
var EnglishIPA = StaticVocabulary{
	// vowels
	"i": 1, "ɪ": 2, "e": 3, "ɛ": 4, "æ": 5, "ɑ": 6, "ɔ": 7, "o": 8,
	"ʊ": 9, "u": 10, "ʌ": 11, "ə": 12, "ɚ": 13, "ɝ": 14,
	"aɪ": 15, "aʊ": 16, "ɔɪ": 17,
	// consonants
	"p": 18, "b": 19, "t": 20, "d": 21, "k": 22, "ɡ": 23,
	"f": 24, "v": 25, "θ": 26, "ð": 27, "s": 28, "z": 29,
	"ʃ": 30, "ʒ": 31, "h": 32, "tʃ": 33, "dʒ": 34,
	"m": 35, "n": 36, "ŋ": 37, "l": 38, "ɹ": 39, "w": 40, "j": 41,
}
