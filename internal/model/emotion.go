// Package model defines the core domain models used throughout the application.
package model

// Emotion is the felt emotional state attached to a transaction.
type Emotion string

// The fixed emotion label set. EmotionUnset is the zero value and means
// "no label yet". It is distinct from EmotionNeutral, which is a genuine
// label indicating no emotional driver.
const (
	EmotionUnset         Emotion = ""
	EmotionStressed      Emotion = "stressed"
	EmotionAnxious       Emotion = "anxious"
	EmotionRetailTherapy Emotion = "retail_therapy"
	EmotionMotivated     Emotion = "motivated"
	EmotionHappy         Emotion = "happy"
	EmotionNeutral       Emotion = "neutral"
	EmotionSad           Emotion = "sad"
)

// AllEmotions lists every valid emotion label in display order.
var AllEmotions = []Emotion{
	EmotionStressed,
	EmotionAnxious,
	EmotionRetailTherapy,
	EmotionMotivated,
	EmotionHappy,
	EmotionNeutral,
	EmotionSad,
}

// Valid reports whether e is one of the known labels or unset.
func (e Emotion) Valid() bool {
	if e == EmotionUnset {
		return true
	}
	for _, known := range AllEmotions {
		if e == known {
			return true
		}
	}
	return false
}

// Labeled reports whether e carries any label at all.
func (e Emotion) Labeled() bool {
	return e != EmotionUnset
}

// Emotional reports whether e represents a genuine emotional driver.
// Neutral and unset transactions are excluded from emotional-spending totals.
func (e Emotion) Emotional() bool {
	return e != EmotionUnset && e != EmotionNeutral
}

// baseIntensity anchors how strongly each emotion tends to drive spending.
var baseIntensity = map[Emotion]float64{
	EmotionStressed:      0.8,
	EmotionAnxious:       0.7,
	EmotionRetailTherapy: 0.6,
	EmotionSad:           0.6,
	EmotionHappy:         0.5,
	EmotionMotivated:     0.4,
	EmotionNeutral:       0.2,
}

// riskThresholds is the per-emotion intensity above which spending risk is
// considered high. Even positive emotions can lead to spending, so they get
// thresholds too, just higher ones.
var riskThresholds = map[Emotion]float64{
	EmotionStressed:      0.6,
	EmotionAnxious:       0.65,
	EmotionRetailTherapy: 0.55,
	EmotionSad:           0.6,
	EmotionHappy:         0.8,
	EmotionMotivated:     0.75,
	EmotionNeutral:       0.9,
}

// Intensity estimates how strongly the emotion is driving behavior on a 0-1
// scale, scaled by the confidence of the label.
func (e Emotion) Intensity(confidence float64) float64 {
	base, ok := baseIntensity[e]
	if !ok {
		base = 0.5
	}
	intensity := base * confidence * 1.5
	if intensity > 1.0 {
		intensity = 1.0
	}
	return intensity
}

// HighRisk reports whether the given intensity crosses the spending-risk
// threshold for this emotion.
func (e Emotion) HighRisk(intensity float64) bool {
	threshold, ok := riskThresholds[e]
	if !ok {
		threshold = 0.7
	}
	return intensity >= threshold
}
