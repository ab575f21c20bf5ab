package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/allbox-app/allbox/internal/filex"
	"github.com/allbox-app/allbox/internal/i18n"
)

// Messages prints the current dialog's messages, oldest first.
func (a *App) Messages(ctx context.Context) error {
	if !a.inDialog() {
		printlnFn("Open a dialog first")
		return nil
	}
	lang := a.lang(ctx)

	messages, err := a.messageService.List(ctx, a.currentDialog)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	if len(messages) == 0 {
		fmt.Println(i18n.T(lang, "noMessages"))
		return nil
	}

	fmt.Println(i18n.T(lang, "messages") + ":")
	now := time.Now()
	for _, m := range messages {
		body := m.Body
		if m.Kind == "voice" {
			body = "[voice] " + m.DownloadURL
		}
		fmt.Printf("  [%s] %s: %s\n", filex.FormatRelative(m.CreatedAt, now), m.DeviceLabel, body)
	}
	return nil
}

// SendVoice uploads a pre-recorded audio file as a voice note.
func (a *App) SendVoice(ctx context.Context, path string) error {
	if !a.inDialog() {
		printlnFn("Open a dialog first")
		return nil
	}

	recording, err := os.ReadFile(path)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "audio/webm"
	}

	if _, err := a.messageService.SendVoice(ctx, a.currentDialog, recording, contentType); err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}
	return nil
}

// Send posts a text message to the current dialog.
func (a *App) Send(ctx context.Context, text string) error {
	if !a.inDialog() {
		printlnFn("Open a dialog first")
		return nil
	}

	if _, err := a.messageService.SendText(ctx, a.currentDialog, text); err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}
	return nil
}
