package content

// QuizQuestion is one round of the multiplayer quiz. Options are shown in
// order; CorrectIndex is the zero-based position of the right answer and is
// never sent to clients while a round is open.
type QuizQuestion struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"-"`
}

// QuizQuestions is the fixed multiplayer question bank. Round n uses entry n
// directly; the game finishes before the index can run past the bank.
var QuizQuestions = []QuizQuestion{
	{
		Text:         "How many pillars of Islam are there?",
		Options:      []string{"Three", "Four", "Five", "Six"},
		CorrectIndex: 2,
	},
	{
		Text:         "Which prophet built the Kaaba with his son?",
		Options:      []string{"Prophet Musa (AS)", "Prophet Ibrahim (AS)", "Prophet Nuh (AS)", "Prophet Isa (AS)"},
		CorrectIndex: 1,
	},
	{
		Text:         "What is the first surah of the Qur'an?",
		Options:      []string{"Al-Baqarah", "Al-Ikhlas", "Al-Fatiha", "An-Nas"},
		CorrectIndex: 2,
	},
	{
		Text:         "In which month do Muslims fast?",
		Options:      []string{"Shawwal", "Ramadan", "Muharram", "Rajab"},
		CorrectIndex: 1,
	},
	{
		Text:         "How many times a day do Muslims pray?",
		Options:      []string{"Three", "Seven", "Five", "Two"},
		CorrectIndex: 2,
	},
}
