package entity

// Analysis is the verdict on one position. For a terminal board Utility is the final score,
// otherwise it is the score reached when both sides play BestMove from here on.
type Analysis struct {
	Board    Board   `json:"board"`
	Turn     Side    `json:"turn,omitempty"`
	Terminal bool    `json:"terminal"`
	Winner   Side    `json:"winner,omitempty"`
	Utility  int     `json:"utility"`
	BestMove *Action `json:"best_move,omitempty"`
}
