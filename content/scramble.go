package content

// ScrambleRounds is the fixed number of word-scramble rounds per game,
// independent of the word pool size.
const ScrambleRounds = 8

// ScrambleWord is one target word with the hint shown to players. The
// scrambled letters are produced client-side; the server only checks the
// unscrambled answer.
type ScrambleWord struct {
	Word string `json:"-"`
	Hint string `json:"hint"`
}

// ScrambleWords is indexed by round number modulo its length.
var ScrambleWords = []ScrambleWord{
	{Word: "SALAH", Hint: "The prayer Muslims perform five times a day"},
	{Word: "QURAN", Hint: "The holy book of Islam"},
	{Word: "KAABA", Hint: "The sacred house in Makkah"},
	{Word: "WUDU", Hint: "Washing before prayer"},
	{Word: "ZAKAT", Hint: "Giving to those in need"},
	{Word: "MASJID", Hint: "The place where Muslims pray together"},
	{Word: "RAMADAN", Hint: "The month of fasting"},
	{Word: "SUNNAH", Hint: "The way of the Prophet (PBUH)"},
}
