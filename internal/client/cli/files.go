package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/allbox-app/allbox/internal/common"
	"github.com/allbox-app/allbox/internal/filex"
	"github.com/allbox-app/allbox/internal/i18n"
)

// Files lists the uploaded files of the current dialog.
func (a *App) Files(ctx context.Context) error {
	if !a.inDialog() {
		printlnFn("Open a dialog first")
		return nil
	}
	lang := a.lang(ctx)

	files, err := a.fileService.List(ctx, a.currentDialog)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	if len(files) == 0 {
		fmt.Println(i18n.T(lang, "noFiles"))
		return nil
	}

	fmt.Println(i18n.T(lang, "files") + ":")
	now := time.Now()
	for _, f := range files {
		marker := " "
		if filex.IsImage(f.FileName) {
			marker = "*"
		}
		fmt.Printf(" %s%s  %-30s %-12s %8s  %s  %s\n",
			marker, f.ID, f.FileName, filex.KindOf(f.FileName), filex.FormatSize(f.FileSize),
			f.DeviceLabel, filex.FormatRelative(f.UploadedAt, now))
	}
	return nil
}

// Upload pushes a local file into the current dialog.
func (a *App) Upload(ctx context.Context, path string) error {
	if !a.inDialog() {
		printlnFn("Open a dialog first")
		return nil
	}
	lang := a.lang(ctx)

	fmt.Println(i18n.T(lang, "uploading"))

	file, err := a.fileService.Upload(ctx, a.currentDialog, path)
	if err != nil {
		if errors.Is(err, common.ErrFileTooLarge) {
			fmt.Println(i18n.T(lang, "maxSize", map[string]string{"size": filex.FormatSize(common.MaxFileSize)}))
		} else {
			fmt.Println(i18n.T(lang, "uploadFailed", map[string]string{"name": path}), "-", err.Error())
		}
		return err
	}

	fmt.Println(i18n.T(lang, "uploadSuccess", map[string]string{"n": "1"}), "-", file.FileName)
	return nil
}

// Download fetches a dialog file into ./downloads.
func (a *App) Download(ctx context.Context, fileID string) error {
	if !a.inDialog() {
		printlnFn("Open a dialog first")
		return nil
	}

	files, err := a.fileService.List(ctx, a.currentDialog)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	for _, f := range files {
		if f.ID != fileID {
			continue
		}

		dir, err := filex.EnsureSubDir("downloads")
		if err != nil {
			fmt.Println("Error:", err.Error())
			return err
		}

		path, err := a.fileService.Download(ctx, f, dir)
		if err != nil {
			fmt.Println("Error:", err.Error())
			return err
		}

		fmt.Println("Saved to", path)
		return nil
	}

	fmt.Println("File not found:", fileID)
	return nil
}

// DeleteFile removes a file from the current dialog.
func (a *App) DeleteFile(ctx context.Context, fileID string) error {
	if !a.inDialog() {
		printlnFn("Open a dialog first")
		return nil
	}
	lang := a.lang(ctx)

	if err := a.fileService.Delete(ctx, a.currentDialog, fileID); err != nil {
		fmt.Println(i18n.T(lang, "deleteFailed"), "-", err.Error())
		return err
	}

	fmt.Println(i18n.T(lang, "fileDeleted"))
	return nil
}
