package tui

import (
	"github.com/atotto/clipboard"

	"github.com/studiowebux/restcli-core/internal/model"
)

func copyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return &model.ClipboardUnavailableError{Underlying: err}
	}
	return nil
}
