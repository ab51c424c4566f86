package service

import (
	"testing"

	"playercare/internal/config"
	"playercare/internal/model"
)

func TestSentimentAnalyzer(t *testing.T) {
	analyzer := NewSentimentAnalyzer(config.DefaultRules())

	tests := []struct {
		name          string
		text          string
		tone          model.Tone
		requiresHuman bool
	}{
		{
			name:          "anger lexicon",
			text:          "this is a scam, you stole my money",
			tone:          model.ToneAngry,
			requiresHuman: true,
		},
		{
			name:          "caps and exclamations",
			text:          "WHERE is my purchase!! give it back!!",
			tone:          model.ToneAngry,
			requiresHuman: true,
		},
		{
			name:          "frustration lexicon",
			text:          "I am so frustrated with this game",
			tone:          model.ToneFrustrated,
			requiresHuman: true,
		},
		{
			name:          "repeated exclamations",
			text:          "my troops vanished!! where are they!!",
			tone:          model.ToneFrustrated,
			requiresHuman: true,
		},
		{
			name:          "urgency lexicon",
			text:          "please fix my castle asap",
			tone:          model.ToneUrgent,
			requiresHuman: false,
		},
		{
			name:          "calm default",
			text:          "hello, I have a question about my castle",
			tone:          model.ToneCalm,
			requiresHuman: false,
		},
		{
			name:          "empty text",
			text:          "",
			tone:          model.ToneCalm,
			requiresHuman: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzer.Analyze(tt.text)
			if got.Tone != tt.tone {
				t.Errorf("tone = %v, want %v", got.Tone, tt.tone)
			}
			if got.RequiresHuman != tt.requiresHuman {
				t.Errorf("requiresHuman = %v, want %v", got.RequiresHuman, tt.requiresHuman)
			}
			if got.Intensity < 1 || got.Intensity > 10 {
				t.Errorf("intensity %d out of range", got.Intensity)
			}
		})
	}
}

func TestSentimentIntensityBands(t *testing.T) {
	analyzer := NewSentimentAnalyzer(config.DefaultRules())

	angry := analyzer.Analyze("this game is garbage and you know it")
	if angry.Intensity < 8 || angry.Intensity > 9 {
		t.Errorf("angry intensity = %d, want 8-9", angry.Intensity)
	}

	frustrated := analyzer.Analyze("I'm fed up with these bugs")
	if frustrated.Intensity < 6 || frustrated.Intensity > 7 {
		t.Errorf("frustrated intensity = %d, want 6-7", frustrated.Intensity)
	}

	if got := analyzer.Analyze("please look at this immediately"); got.Intensity != 7 {
		t.Errorf("urgent intensity = %d, want 7", got.Intensity)
	}
}

func TestSentimentAccountLockBias(t *testing.T) {
	analyzer := NewSentimentAnalyzer(config.DefaultRules())

	calm := analyzer.Analyze("just checking in on my castle build")
	locked := analyzer.Analyze("my account shows as suspended, what happened")

	if locked.Intensity <= calm.Intensity {
		t.Errorf("lock context intensity %d should exceed plain calm %d", locked.Intensity, calm.Intensity)
	}
	if locked.RequiresHuman {
		t.Error("calm lock report should not require a human")
	}
}
