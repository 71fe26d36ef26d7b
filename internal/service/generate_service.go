package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/Shivanisinghay/Epsilon/internal/media"
	"github.com/Shivanisinghay/Epsilon/internal/storage"
	"github.com/Shivanisinghay/Epsilon/internal/validate"
)

type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

type SpeechGenerator interface {
	GenerateSpeech(ctx context.Context, text string) ([]byte, error)
}

// GenerateService fronts the external AI providers. It owns prompt
// templating, local persistence of binary outputs and the best-effort
// archive mirror; the intelligence itself is entirely upstream.
type GenerateService struct {
	text    TextGenerator
	image   ImageGenerator
	speech  SpeechGenerator
	media   *media.Store
	archive *storage.Archive
	log     zerolog.Logger
}

func NewGenerateService(
	text TextGenerator,
	image ImageGenerator,
	speech SpeechGenerator,
	mediaStore *media.Store,
	archive *storage.Archive,
	log zerolog.Logger,
) *GenerateService {
	return &GenerateService{
		text:    text,
		image:   image,
		speech:  speech,
		media:   mediaStore,
		archive: archive,
		log:     log,
	}
}

type TextInput struct {
	Type       string
	Prompt     string
	Variations int
}

// GenerateText forwards a templated prompt to the text provider. Variations
// above one ask the model for distinct options separated by a fixed marker.
func (s *GenerateService) GenerateText(ctx context.Context, input TextInput) (string, error) {
	var verrs validate.Errors
	if input.Type == "" {
		verrs = append(verrs, validate.FieldError{Field: "type", Message: "type is required"})
	}
	if input.Prompt == "" {
		verrs = append(verrs, validate.FieldError{Field: "prompt", Message: "prompt is required"})
	}
	if err := verrs.OrNil(); err != nil {
		return "", err
	}

	return s.text.GenerateText(ctx, formatPrompt(input))
}

func formatPrompt(input TextInput) string {
	if input.Variations > 1 {
		return fmt.Sprintf(
			`Generate %d distinct variations for the following marketing %s prompt, clearly separated by "---VARIATION---": %s`,
			input.Variations, input.Type, input.Prompt,
		)
	}

	switch input.Type {
	case "email":
		return "Generate a marketing email: " + input.Prompt
	case "notification":
		return "Write a marketing notification: " + input.Prompt
	case "transcript":
		return "Write a video transcript: " + input.Prompt
	default:
		return input.Prompt
	}
}

type ImageResult struct {
	DataURI  string
	Filename string
	URL      string
}

func (s *GenerateService) GenerateImage(ctx context.Context, prompt string) (ImageResult, error) {
	if prompt == "" || utf8.RuneCountInString(prompt) > 1000 {
		return ImageResult{}, validate.Errors{{Field: "prompt", Message: "prompt must be between 1 and 1000 characters"}}
	}

	data, err := s.image.GenerateImage(ctx, prompt)
	if err != nil {
		return ImageResult{}, err
	}

	filename, err := s.media.SaveImage(data)
	if err != nil {
		return ImageResult{}, err
	}

	if err := s.archive.Put(ctx, "images", filename, "image/png", data); err != nil {
		s.log.Warn().Err(err).Str("file", filename).Msg("archive image failed")
	}

	return ImageResult{
		DataURI:  "data:image/png;base64," + base64.StdEncoding.EncodeToString(data),
		Filename: filename,
		URL:      "/images/" + filename,
	}, nil
}

// ListImages reports the generated images still on local disk, newest first.
func (s *GenerateService) ListImages() ([]media.ImageInfo, error) {
	return s.media.ListImages()
}

type AudioResult struct {
	Filename string
	Path     string
}

func (s *GenerateService) GenerateAudio(ctx context.Context, text string) (AudioResult, error) {
	if text == "" || utf8.RuneCountInString(text) > 5000 {
		return AudioResult{}, validate.Errors{{Field: "text", Message: "text must be between 1 and 5000 characters"}}
	}

	data, err := s.speech.GenerateSpeech(ctx, text)
	if err != nil {
		return AudioResult{}, err
	}

	filename, err := s.media.SaveAudio(data)
	if err != nil {
		return AudioResult{}, err
	}

	if err := s.archive.Put(ctx, "audio", filename, "audio/mpeg", data); err != nil {
		s.log.Warn().Err(err).Str("file", filename).Msg("archive audio failed")
	}

	return AudioResult{
		Filename: filename,
		Path:     "/audio/" + filename,
	}, nil
}
