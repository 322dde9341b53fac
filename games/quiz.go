package games

import (
	"context"
	"errors"
	"strings"

	"PixBot/utils"
	"PixBot/vip"
)

var ErrUnknownCategory = errors.New("unknown quiz category")

const (
	MinRounds = 1
	MaxRounds = 20
)

type Question struct {
	Prompt  string
	Options [4]string
	Answer  string
}

// Letters label the four options in order.
var Letters = [4]string{"A", "B", "C", "D"}

// Check accepts the correct letter or the correct option's text, ignoring
// case and surrounding spaces. A bare letter is always read as a letter, so
// "A" never matches an option whose text is "a".
func (q Question) Check(answer string) bool {
	answer = strings.TrimSpace(answer)
	if IsOption(answer) {
		return strings.EqualFold(answer, q.Answer)
	}
	return strings.EqualFold(answer, q.Correct())
}

// Correct returns the text of the right option.
func (q Question) Correct() string {
	for idx, l := range Letters {
		if l == q.Answer {
			return q.Options[idx]
		}
	}
	return ""
}

// IsOption reports whether answer is one of A, B, C or D.
func IsOption(answer string) bool {
	switch strings.ToUpper(strings.TrimSpace(answer)) {
	case "A", "B", "C", "D":
		return true
	}
	return false
}

var quizBank = map[string][]Question{
	"classic": {
		{"What is the capital of Brazil?", [4]string{"Rio de Janeiro", "Brasília", "São Paulo", "Salvador"}, "B"},
		{"How many continents are there?", [4]string{"5", "6", "7", "8"}, "C"},
		{"Who painted the Mona Lisa?", [4]string{"Van Gogh", "Picasso", "Michelangelo", "Leonardo da Vinci"}, "D"},
		{"What is the largest planet in the solar system?", [4]string{"Jupiter", "Saturn", "Neptune", "Earth"}, "A"},
		{"Which gas do plants absorb from the air?", [4]string{"Oxygen", "Nitrogen", "Carbon dioxide", "Helium"}, "C"},
		{"In which year did humans first land on the Moon?", [4]string{"1965", "1969", "1972", "1959"}, "B"},
	},
	"anime": {
		{"What is the name of Naruto's village?", [4]string{"Hidden Mist", "Hidden Sand", "Hidden Leaf", "Hidden Cloud"}, "C"},
		{"Who is the main character of One Piece?", [4]string{"Zoro", "Luffy", "Sanji", "Ace"}, "B"},
		{"What does Light Yagami use to kill?", [4]string{"A sword", "A notebook", "A gun", "A ring"}, "B"},
		{"In Dragon Ball, what is Goku's Saiyan name?", [4]string{"Kakarot", "Raditz", "Bardock", "Broly"}, "A"},
		{"Which titan does Eren Yeager inherit first?", [4]string{"Colossal", "Armored", "Beast", "Attack"}, "D"},
	},
	"math": {
		{"What is 7 x 8?", [4]string{"54", "56", "58", "64"}, "B"},
		{"What is the square root of 144?", [4]string{"12", "14", "16", "11"}, "A"},
		{"What is 15% of 200?", [4]string{"20", "25", "30", "35"}, "C"},
		{"How many sides does a hexagon have?", [4]string{"5", "6", "7", "8"}, "B"},
		{"What is 2 to the power of 10?", [4]string{"512", "1000", "2048", "1024"}, "D"},
	},
	"games": {
		{"Which company created Minecraft?", [4]string{"Mojang", "Valve", "Epic Games", "Riot"}, "A"},
		{"What is the name of Mario's brother?", [4]string{"Wario", "Luigi", "Toad", "Yoshi"}, "B"},
		{"In which game do you find the Battle Bus?", [4]string{"PUBG", "Apex Legends", "Fortnite", "Free Fire"}, "C"},
		{"What color is Sonic the Hedgehog?", [4]string{"Red", "Green", "Yellow", "Blue"}, "D"},
		{"Which game features the map Dust II?", [4]string{"Valorant", "Counter-Strike", "Overwatch", "Rainbow Six"}, "B"},
	},
}

// Categories lists the quiz categories in a stable order.
func Categories() []string {
	return []string{"classic", "anime", "math", "games"}
}

// PickQuestion draws a random question from category.
func (g *Resolver) PickQuestion(category string) (Question, error) {
	qs, ok := quizBank[strings.ToLower(category)]
	if !ok || len(qs) == 0 {
		return Question{}, ErrUnknownCategory
	}
	return qs[g.rand.Intn(len(qs))], nil
}

// QuizReward credits a correct answer: 400 to 500 coins times the VIP bonus.
func (g *Resolver) QuizReward(ctx context.Context, userID string) (int64, error) {
	percent, err := g.vip.Percent(ctx, userID)
	if err != nil {
		return 0, err
	}
	amount := vip.Apply(utils.Between(g.rand, 400, 500), percent)
	if err := g.ledger.Credit(ctx, userID, amount); err != nil {
		return 0, err
	}
	return amount, nil
}
