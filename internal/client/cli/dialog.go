package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/allbox-app/allbox/internal/common"
	"github.com/allbox-app/allbox/internal/filex"
	"github.com/allbox-app/allbox/internal/i18n"
)

// Create makes a new dialog and shows the one-time password.
func (a *App) Create(ctx context.Context) error {
	lang := a.lang(ctx)

	dialog, password, err := a.dialogService.Create(ctx, lang)
	if err != nil {
		fmt.Println(i18n.T(lang, "createFailed"), "-", err.Error())
		return err
	}

	fmt.Printf("%s: %s (%s)\n", i18n.T(lang, "dialog"), dialog.Name, dialog.ID)
	fmt.Printf("%s: %s\n", i18n.T(lang, "dialogCode"), password)
	fmt.Println(i18n.T(lang, "passwordWarning"))

	a.enterScope(ctx, dialog.ID)
	return nil
}

// Enter joins an existing dialog by its numeric password.
func (a *App) Enter(ctx context.Context) error {
	lang := a.lang(ctx)

	password, err := GetPassword(i18n.T(lang, "enterPrompt"), os.Stdout)
	if err != nil {
		return err
	}

	dialog, err := a.dialogService.Enter(ctx, password)
	if err != nil {
		if errors.Is(err, common.ErrorWrongPassword) {
			fmt.Println(i18n.T(lang, "wrongPassword"))
		} else {
			fmt.Println("Error:", err.Error())
		}
		return err
	}

	fmt.Printf("%s: %s. %s %s\n", i18n.T(lang, "dialog"), dialog.Name, i18n.T(lang, "youAre"), dialog.DeviceLabel)

	a.enterScope(ctx, dialog.ID)
	return nil
}

// ListDialogs prints the active dialogs, most recent first.
func (a *App) ListDialogs(ctx context.Context) error {
	lang := a.lang(ctx)
	dialogs := a.store.ListActiveDialogs(ctx)

	fmt.Println(i18n.T(lang, "myDialogs") + ":")
	if len(dialogs) == 0 {
		fmt.Println("  -")
		return nil
	}

	now := time.Now()
	for _, d := range dialogs {
		name := d.Name
		if name == "" {
			name = d.DialogID
		}
		fmt.Printf("  %s  %s  (%s, %s)\n", d.DialogID, name, d.DeviceLabel, filex.FormatRelative(d.LastActivityAt, now))
	}
	return nil
}

// ListArchived prints the archived dialogs.
func (a *App) ListArchived(ctx context.Context) error {
	lang := a.lang(ctx)
	dialogs := a.store.ListArchivedDialogs(ctx)

	if len(dialogs) == 0 {
		fmt.Println(i18n.T(lang, "noArchivedDialogs"))
		return nil
	}

	fmt.Println(i18n.T(lang, "archivedDialogs") + ":")
	for _, d := range dialogs {
		name := d.Name
		if name == "" {
			name = d.DialogID
		}
		fmt.Printf("  %s  %s\n", d.DialogID, name)
	}
	return nil
}

// Open switches the REPL scope into a dialog this device has access to.
func (a *App) Open(ctx context.Context, dialogID string) error {
	lang := a.lang(ctx)

	if !a.store.HasAccess(ctx, dialogID) {
		fmt.Println(i18n.T(lang, "noAccess"))
		return common.ErrorUnauthorized
	}

	// best effort; the local cache still works offline
	_ = a.dialogService.Refresh(ctx, dialogID)

	a.enterScope(ctx, dialogID)
	return nil
}

// Back leaves the dialog scope and returns to the home screen.
func (a *App) Back() {
	a.stopFeed()
	a.currentDialog = ""
}

// Devices lists the member devices of the current dialog.
func (a *App) Devices(ctx context.Context) error {
	if !a.inDialog() {
		printlnFn("Open a dialog first")
		return nil
	}

	devices, err := a.dialogService.Devices(ctx, a.currentDialog)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	fmt.Printf("%d %s\n", len(devices), i18n.T(a.lang(ctx), "devices"))
	for _, d := range devices {
		fmt.Printf("  %s (joined %s)\n", d.DeviceLabel, filex.FormatRelative(d.JoinedAt, time.Now()))
	}
	return nil
}

// RenameDialog renames the current dialog remotely and locally. When called
// without a name it prompts for one.
func (a *App) RenameDialog(ctx context.Context, name string) error {
	if !a.inDialog() {
		printlnFn("Open a dialog first")
		return nil
	}

	if name == "" {
		var err error
		name, err = GetSimpleText(a.reader, "New dialog name", os.Stdout)
		if err != nil || name == "" {
			return err
		}
	}

	if err := a.dialogService.Rename(ctx, a.currentDialog, name); err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}
	return nil
}

// Archive hides the current dialog from the home list and leaves its scope.
func (a *App) Archive(ctx context.Context) error {
	if !a.inDialog() {
		printlnFn("Open a dialog first")
		return nil
	}

	if err := a.dialogService.Archive(ctx, a.currentDialog); err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	fmt.Println(i18n.T(a.lang(ctx), "exitDialog"))
	a.Back()
	return nil
}

// Restore moves an archived dialog back to the home list.
func (a *App) Restore(ctx context.Context, dialogID string) error {
	restored, err := a.dialogService.Restore(ctx, dialogID)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}
	if restored == nil {
		fmt.Println("Not found in archive:", dialogID)
		return nil
	}

	fmt.Printf("%s: %s\n", i18n.T(a.lang(ctx), "restoreDialog"), restored.Name)
	return nil
}

// Leave forgets the current dialog completely and returns home.
func (a *App) Leave(ctx context.Context) error {
	if !a.inDialog() {
		printlnFn("Open a dialog first")
		return nil
	}

	if err := a.dialogService.Leave(ctx, a.currentDialog); err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	fmt.Println(i18n.T(a.lang(ctx), "leaveDialog"))
	a.Back()
	return nil
}

// PasswordFile writes the password reminder for the current dialog into the
// working directory.
func (a *App) PasswordFile(ctx context.Context) error {
	if !a.inDialog() {
		printlnFn("Open a dialog first")
		return nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return err
	}

	path, err := a.dialogService.WritePasswordReminder(ctx, a.currentDialog, dir)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	fmt.Printf("%s: %s\n", i18n.T(a.lang(ctx), "downloadPassword"), path)
	return nil
}

func (a *App) enterScope(ctx context.Context, dialogID string) {
	a.currentDialog = dialogID
	a.startFeed(ctx, dialogID)
}
