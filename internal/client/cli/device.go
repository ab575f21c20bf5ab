package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/allbox-app/allbox/internal/client/devicestate"
	"github.com/allbox-app/allbox/internal/i18n"
)

// Help prints the commands available in the current scope.
func (a *App) Help(ctx context.Context) {
	if a.inDialog() {
		printlnFn("Available commands: files, upload <path>, download <file-id>, rm <file-id>, (m)essages, send <text>, voice <path>, devices, rename <name>, archive, leave, password-file, back, exit")
	} else {
		printlnFn("Available commands: create, enter, (l)ist, archived, open <dialog-id>, restore <dialog-id>, device-name <name>, theme <dark|light>, lang <en|ru>, exit")
	}
}

// SetDeviceName stores the global device name. It overrides per-dialog
// labels at display time but never rewrites them.
func (a *App) SetDeviceName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		printlnFn("Usage: device-name <name>")
		return nil
	}

	if err := a.store.SetDeviceName(ctx, name); err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	fmt.Printf("%s: %s\n", i18n.T(a.lang(ctx), "deviceName"), name)
	return nil
}

// SetTheme persists the theme preference and switches the prompt palette.
func (a *App) SetTheme(ctx context.Context, theme string) error {
	var t devicestate.Theme
	switch theme {
	case "dark":
		t = devicestate.ThemeDark
	case "light":
		t = devicestate.ThemeLight
	default:
		printlnFn("Usage: theme <dark|light>")
		return nil
	}

	if err := a.store.SetTheme(ctx, t); err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	a.applyTheme(t)

	key := "darkTheme"
	if t == devicestate.ThemeLight {
		key = "lightTheme"
	}
	fmt.Println(i18n.T(a.lang(ctx), key))
	return nil
}

// SetLanguage persists the UI language.
func (a *App) SetLanguage(ctx context.Context, lang string) error {
	switch lang {
	case "en", "ru":
	default:
		printlnFn("Usage: lang <en|ru>")
		return nil
	}

	if err := a.store.SetLanguage(ctx, i18n.Parse(lang)); err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}
	return nil
}
