package model

// Prediction is a forward-looking estimate of the next likely purchase for
// a user in a given emotional state. Probability is the boosted relevance
// score, not a calibrated posterior; it can exceed 1.0 and is only
// comparable between categories within one prediction run.
type Prediction struct {
	Emotion         Emotion
	Category        string
	DayOfWeek       string
	TimeOfDay       TimeOfDay
	Probability     float64
	EstimatedAmount float64
}
