package main

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	orchestration "github.com/KARAN3690/Marketplace/core"
	"github.com/KARAN3690/Marketplace/core/events"
	"github.com/KARAN3690/Marketplace/internal/config"
)

type rootFlags struct {
	audioBackend string
	noVoice      bool
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:          "assistant",
		Short:        "Marketplace assistant widget for farmers and buyers",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWidget(cmd, flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.audioBackend, "audio-backend", "",
		"audio backend to use: miniaudio, portaudio or none (defaults to ASSISTANT_AUDIO_BACKEND)")
	root.PersistentFlags().BoolVar(&flags.noVoice, "no-voice", false,
		"disable voice capture and spoken replies")

	root.AddCommand(newAskCommand(flags))
	return root
}

func newAskCommand(flags *rootFlags) *cobra.Command {
	var speak bool

	cmd := &cobra.Command{
		Use:   "ask TEXT...",
		Short: "Ask the assistant a single question and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, flags, strings.Join(args, " "), speak)
		},
	}

	cmd.Flags().BoolVar(&speak, "speak", false, "play the reply through the audio backend")
	return cmd
}

func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if flags.audioBackend != "" {
		cfg.AudioBackend = flags.audioBackend
	}
	if flags.noVoice {
		cfg.AudioBackend = config.AudioBackendNone
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runWidget(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	sessionEvents := newEventQueue(eventQueueSize)

	app, err := newAssistant(ctx, cfg, assistantOptions{
		capture:       cfg.AudioBackend != config.AudioBackendNone,
		speech:        cfg.SpeechEnabled(),
		eventCallback: sessionEvents.push,
	})
	if err != nil {
		return err
	}

	model := newWidgetModel(ctx, app.orchestrator, sessionEvents.events())
	_, runErr := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		runErr = nil
	}

	return errors.Join(runErr, app.Close())
}

func runAsk(cmd *cobra.Command, flags *rootFlags, question string, speak bool) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var speechFailure error
	app, err := newAssistant(ctx, cfg, assistantOptions{
		speech: speak && cfg.SpeechEnabled(),
		eventCallback: func(event events.Event) {
			if failed, ok := event.(events.AssistantSpeechFailed); ok {
				speechFailure = failed.Err
			}
		},
	})
	if err != nil {
		return err
	}

	session := app.orchestrator.Submit(ctx, question)
	if reply, ok := session.LastTurn(); ok {
		fmt.Fprintln(cmd.OutOrStdout(), reply.Content)
	}

	if speak {
		app.orchestrator.AwaitSpeech()
		if speechFailure != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "could not speak the reply: %v\n", speechFailure)
		} else if err := app.awaitPlayback(ctx); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "playback interrupted: %v\n", err)
		}
	}

	return app.Close()
}

// describeCaptureError turns a failed voice submission into a status line.
func describeCaptureError(err error) string {
	var remoteErr *orchestration.RemoteError
	switch {
	case errors.Is(err, orchestration.ErrNoAudioInput):
		return "Voice input is not available."
	case errors.Is(err, orchestration.ErrEmptyCapture):
		return "No audio was recorded."
	case errors.Is(err, orchestration.ErrEmptyTranscript):
		return "Could not hear anything, try again."
	case errors.As(err, &remoteErr):
		return "Transcription failed, try again."
	default:
		return "Voice capture failed."
	}
}
