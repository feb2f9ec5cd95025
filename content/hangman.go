package content

// HangmanMaxWrongGuesses is how many wrong letters a player may accumulate
// before the round is lost.
const HangmanMaxWrongGuesses = 6

type HangmanWord struct {
	Word string `json:"-"`
	Hint string `json:"hint"`
}

// HangmanWords is indexed by round number modulo its length.
var HangmanWords = []HangmanWord{
	{Word: "BISMILLAH", Hint: "Said before starting anything"},
	{Word: "JANNAH", Hint: "The garden promised to believers"},
	{Word: "IMAN", Hint: "Faith in Allah"},
	{Word: "HAJJ", Hint: "The journey to Makkah"},
	{Word: "HALAL", Hint: "What is permitted"},
	{Word: "SADAQAH", Hint: "Voluntary charity"},
	{Word: "TAQWA", Hint: "Being mindful of Allah"},
	{Word: "SHAHADA", Hint: "The declaration of faith"},
}
