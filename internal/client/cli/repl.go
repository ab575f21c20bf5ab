package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	inDialog() bool
	Help(ctx context.Context)
	Create(ctx context.Context) error
	Enter(ctx context.Context) error
	ListDialogs(ctx context.Context) error
	ListArchived(ctx context.Context) error
	Open(ctx context.Context, dialogID string) error
	Back()
	Files(ctx context.Context) error
	Upload(ctx context.Context, path string) error
	Download(ctx context.Context, fileID string) error
	DeleteFile(ctx context.Context, fileID string) error
	Messages(ctx context.Context) error
	Send(ctx context.Context, text string) error
	SendVoice(ctx context.Context, path string) error
	Devices(ctx context.Context) error
	RenameDialog(ctx context.Context, name string) error
	Archive(ctx context.Context) error
	Restore(ctx context.Context, dialogID string) error
	Leave(ctx context.Context) error
	PasswordFile(ctx context.Context) error
	SetDeviceName(ctx context.Context, name string) error
	SetTheme(ctx context.Context, theme string) error
	SetLanguage(ctx context.Context, lang string) error
}

// runREPL starts the read-eval-print loop for the AllBox CLI.
//
// At the home screen the commands operate on the dialog list; after "open"
// the scope narrows to one dialog and content commands become available.
// Errors returned by command handlers are ignored here; handlers print their
// own errors. The loop exits on scanner EOF or "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("%sallbox %s> ", promptColor, statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.Help(ctx)

		case "create":
			_ = a.Create(ctx)

		case "enter":
			_ = a.Enter(ctx)

		case "l", "list":
			_ = a.ListDialogs(ctx)

		case "archived":
			_ = a.ListArchived(ctx)

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <dialog-id>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "back":
			a.Back()

		case "files":
			_ = a.Files(ctx)

		case "upload":
			if len(args) == 0 {
				printlnFn("Usage: upload <path>")
				continue
			}
			_ = a.Upload(ctx, strings.Join(args, " "))

		case "download":
			if len(args) == 0 {
				printlnFn("Usage: download <file-id>")
				continue
			}
			_ = a.Download(ctx, args[0])

		case "rm":
			if len(args) == 0 {
				printlnFn("Usage: rm <file-id>")
				continue
			}
			_ = a.DeleteFile(ctx, args[0])

		case "m", "messages":
			_ = a.Messages(ctx)

		case "send":
			if len(args) == 0 {
				printlnFn("Usage: send <text>")
				continue
			}
			_ = a.Send(ctx, strings.Join(args, " "))

		case "voice":
			if len(args) == 0 {
				printlnFn("Usage: voice <path-to-recording>")
				continue
			}
			_ = a.SendVoice(ctx, strings.Join(args, " "))

		case "devices":
			_ = a.Devices(ctx)

		case "rename":
			// no argument: the handler prompts for the new name
			_ = a.RenameDialog(ctx, strings.Join(args, " "))

		case "archive":
			_ = a.Archive(ctx)

		case "restore":
			if len(args) == 0 {
				printlnFn("Usage: restore <dialog-id>")
				continue
			}
			_ = a.Restore(ctx, args[0])

		case "leave":
			_ = a.Leave(ctx)

		case "password-file":
			_ = a.PasswordFile(ctx)

		case "device-name":
			if len(args) == 0 {
				printlnFn("Usage: device-name <name>")
				continue
			}
			_ = a.SetDeviceName(ctx, strings.Join(args, " "))

		case "theme":
			if len(args) == 0 {
				printlnFn("Usage: theme <dark|light>")
				continue
			}
			_ = a.SetTheme(ctx, args[0])

		case "lang":
			if len(args) == 0 {
				printlnFn("Usage: lang <en|ru>")
				continue
			}
			_ = a.SetLanguage(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
