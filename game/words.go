package game

// Difficulty selects which partition of the word table a round draws from.
// All is the unfiltered table.
type Difficulty string

const (
	All    Difficulty = "all"
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Word is one typing prompt. Image is the emoji shown next to the prompt
// and reused for the drop token spawned on a correct answer.
type Word struct {
	Word       string
	Image      string
	Difficulty Difficulty
	Points     int
}

var Words = []Word{
	{Word: "sushi", Image: "🍣", Difficulty: Easy, Points: 10},
	{Word: "pizza", Image: "🍕", Difficulty: Easy, Points: 10},
	{Word: "apple", Image: "🍎", Difficulty: Easy, Points: 10},
	{Word: "bread", Image: "🍞", Difficulty: Easy, Points: 10},
	{Word: "milk", Image: "🥛", Difficulty: Easy, Points: 10},
	{Word: "cake", Image: "🎂", Difficulty: Easy, Points: 10},
	{Word: "fish", Image: "🐟", Difficulty: Easy, Points: 10},
	{Word: "rice", Image: "🍚", Difficulty: Easy, Points: 10},

	{Word: "sandwich", Image: "🥪", Difficulty: Medium, Points: 20},
	{Word: "hamburger", Image: "🍔", Difficulty: Medium, Points: 20},
	{Word: "spaghetti", Image: "🍝", Difficulty: Medium, Points: 20},
	{Word: "chocolate", Image: "🍫", Difficulty: Medium, Points: 20},
	{Word: "pineapple", Image: "🍍", Difficulty: Medium, Points: 20},
	{Word: "strawberry", Image: "🍓", Difficulty: Medium, Points: 20},
	{Word: "watermelon", Image: "🍉", Difficulty: Medium, Points: 20},
	{Word: "ice cream", Image: "🍦", Difficulty: Medium, Points: 20},

	{Word: "restaurant", Image: "🍽️", Difficulty: Hard, Points: 30},
	{Word: "breakfast", Image: "🥐", Difficulty: Hard, Points: 30},
	{Word: "vegetables", Image: "🥗", Difficulty: Hard, Points: 30},
	{Word: "sandwich", Image: "🥙", Difficulty: Hard, Points: 30},
	{Word: "cucumber", Image: "🥒", Difficulty: Hard, Points: 30},
	{Word: "broccoli", Image: "🥦", Difficulty: Hard, Points: 30},
	{Word: "avocado", Image: "🥑", Difficulty: Hard, Points: 30},
	{Word: "pancakes", Image: "🥞", Difficulty: Hard, Points: 30},
}

// wordsFor returns the partition for d. An empty partition falls back to
// the full table so a round always has a next word.
func wordsFor(d Difficulty) []Word {
	if d == All || d == "" {
		return Words
	}
	part := make([]Word, 0, len(Words))
	for _, w := range Words {
		if w.Difficulty == d {
			part = append(part, w)
		}
	}
	if len(part) == 0 {
		return Words
	}
	return part
}
