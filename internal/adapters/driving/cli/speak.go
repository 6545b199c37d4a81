package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docentlabs/docent-cli/internal/core/domain"
)

var (
	speakOut   string
	speakVoice string
)

var speakCmd = &cobra.Command{
	Use:   "speak [text]",
	Short: "Synthesise text to an mp3 file",
	Long: `Sends text to the speech-synthesis endpoint and writes the audio to
a file. Markdown, document markers and emoji are stripped before
synthesis so the spoken output is natural.`,
	Args: cobra.ExactArgs(1),
	RunE: runSpeak,
}

func init() {
	speakCmd.Flags().StringVar(&speakOut, "out", "speech.mp3", "output file path")
	speakCmd.Flags().StringVar(&speakVoice, "voice", "", "speech voice (default from settings)")
	rootCmd.AddCommand(speakCmd)
}

func runSpeak(cmd *cobra.Command, args []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	settings := currentSettings()
	voice := speakVoice
	if voice == "" {
		voice = settings.Speech.Voice
	}

	session := domain.NewSession(settings.Language, voice)

	audio, err := assistantService.Speak(cmd.Context(), session, args[0])
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotImplemented):
			return errors.New("speech synthesis needs a configured completion service")
		case errors.Is(err, domain.ErrInvalidInput):
			return errors.New("nothing speakable left after cleaning the text")
		default:
			return fmt.Errorf("speech synthesis failed: %w", err)
		}
	}

	if err := os.WriteFile(speakOut, audio, 0o644); err != nil {
		return fmt.Errorf("write audio: %w", err)
	}

	cmd.Printf("Audio written to %s (%s)\n", speakOut, domain.FormatByteSize(int64(len(audio))))
	return nil
}
