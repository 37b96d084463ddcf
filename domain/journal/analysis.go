package journal

// EmotionScore is a single named emotion with its intensity in [0,1].
type EmotionScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// EmotionAnalysis is the structured result of analyzing one diary entry.
// It is ephemeral: produced per submission, its fields are copied onto the
// persisted Entry and never stored as-is.
type EmotionAnalysis struct {
	Emotions             []EmotionScore `json:"emotions"`
	PrimaryEmotion       string         `json:"primaryEmotion"`
	EmotionIntensity     float64        `json:"emotionIntensity"`
	Keywords             []string       `json:"keywords"`
	Imagery              []string       `json:"imagery"`
	Scenes               []string       `json:"scenes"`
	Themes               []string       `json:"themes"`
	WeatherType          string         `json:"weatherType"`
	PsychologicalInsight string         `json:"psychologicalInsight"`
	ImageAnalysis        string         `json:"imageAnalysis,omitempty"`
}

// Fallback values returned when the upstream analysis cannot be obtained.
// These are fixed so that degraded submissions stay deterministic.
const (
	FallbackEmotion   = "平静"
	FallbackWeather   = "多云"
	FallbackIntensity = 0.5
	FallbackInsight   = "每一次记录都是与自己对话的机会。"
)

// DefaultAnalysis returns the deterministic fallback analysis. Every call
// returns a fresh value with identical contents.
func DefaultAnalysis() *EmotionAnalysis {
	return &EmotionAnalysis{
		Emotions:             []EmotionScore{{Name: FallbackEmotion, Score: FallbackIntensity}},
		PrimaryEmotion:       FallbackEmotion,
		EmotionIntensity:     FallbackIntensity,
		Keywords:             []string{},
		Imagery:              []string{},
		Scenes:               []string{},
		Themes:               []string{},
		WeatherType:          FallbackWeather,
		PsychologicalInsight: FallbackInsight,
	}
}

// EmotionNames returns the emotion names in analysis order.
func (a *EmotionAnalysis) EmotionNames() []string {
	names := make([]string, 0, len(a.Emotions))
	for _, e := range a.Emotions {
		names = append(names, e.Name)
	}
	return names
}
