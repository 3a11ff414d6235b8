package telegram

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/faith-journey-bot/internal/domain/entities"
)

var errBadDataURI = errors.New("malformed data URI")

// photoFile turns a cached image reference into something Telegram can upload:
// data URIs are decoded to bytes, anything else is passed as a URL.
func photoFile(stage int, image string) (tgbotapi.RequestFileData, error) {
	if !strings.HasPrefix(image, "data:") {
		return tgbotapi.FileURL(image), nil
	}

	meta, payload, ok := strings.Cut(strings.TrimPrefix(image, "data:"), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, errBadDataURI
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBadDataURI, err)
	}

	ext := "png"
	if mime := strings.TrimSuffix(meta, ";base64"); strings.HasPrefix(mime, "image/") {
		ext = strings.TrimPrefix(mime, "image/")
	}

	return tgbotapi.FileBytes{
		Name:  fmt.Sprintf("stage-%d.%s", stage+1, ext),
		Bytes: data,
	}, nil
}

// newStagePhoto builds a photo message for a stage illustration.
func newStagePhoto(chatID int64, stage entities.StageDefinition, image string) (tgbotapi.PhotoConfig, error) {
	file, err := photoFile(stage.Index, image)
	if err != nil {
		return tgbotapi.PhotoConfig{}, err
	}

	photo := tgbotapi.NewPhoto(chatID, file)
	photo.Caption = stageCaption(stage)
	photo.ParseMode = tgbotapi.ModeMarkdownV2
	return photo, nil
}

// buildProgressBar creates a text progress bar.
func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return strings.Repeat("░", length)
	}

	filled := int(float64(current) / float64(total) * float64(length))
	if filled > length {
		filled = length
	}

	empty := length - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s]", bar)
}
