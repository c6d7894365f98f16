package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KARAN3690/Marketplace/core/llms/gemini"
	llmopenai "github.com/KARAN3690/Marketplace/core/llms/openai"
	"github.com/KARAN3690/Marketplace/internal/config"
)

func TestNewTextClientsSelectsProviders(t *testing.T) {
	testCases := []struct {
		name               string
		completion         string
		detection          string
		wantGeminiComplete bool
		wantGeminiDetect   bool
	}{
		{name: "openai only", completion: config.ProviderOpenAI, detection: config.ProviderOpenAI},
		{name: "gemini completion", completion: config.ProviderGemini, detection: config.ProviderOpenAI, wantGeminiComplete: true},
		{name: "gemini detection", completion: config.ProviderOpenAI, detection: config.ProviderGemini, wantGeminiDetect: true},
		{name: "gemini only", completion: config.ProviderGemini, detection: config.ProviderGemini, wantGeminiComplete: true, wantGeminiDetect: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			cfg := &config.Config{
				OpenAIKey:          "sk-test",
				OpenAIBaseURL:      llmopenai.DefaultBaseURL,
				GeminiKey:          "gm-test",
				CompletionProvider: testCase.completion,
				DetectionProvider:  testCase.detection,
				DetectionModel:     "detector-model",
			}

			identifier, completer, err := newTextClients(context.Background(), cfg)
			require.NoError(t, err)

			_, detectsWithGemini := identifier.(*gemini.Client)
			_, completesWithGemini := completer.(*gemini.Client)
			require.Equal(t, testCase.wantGeminiDetect, detectsWithGemini)
			require.Equal(t, testCase.wantGeminiComplete, completesWithGemini)

			if testCase.completion == testCase.detection {
				require.Same(t, identifier, completer)
			}
		})
	}
}

func TestDetectionModelOnlyReachesDetectionProvider(t *testing.T) {
	cfg := &config.Config{
		CompletionProvider: config.ProviderOpenAI,
		DetectionProvider:  config.ProviderGemini,
		CompletionModel:    "gpt-4o-mini",
		DetectionModel:     "gemini-2.0-flash-lite",
	}

	require.Len(t, openaiLLMOptions(cfg), 2)
	require.Len(t, geminiOptions(cfg), 1)
}
