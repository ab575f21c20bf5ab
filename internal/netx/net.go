// Package netx moves file payloads between the client and the object storage
// through presigned URLs. The server only hands out URLs; bytes never pass
// through it.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

// httpClient is a test seam.
var httpClient = &http.Client{Timeout: 5 * time.Minute}

// UploadToPresignedURL PUTs file bytes to a presigned object-storage URL.
// Transient failures are retried with fibonacci backoff, capped at 5
// attempts. A non-2xx response other than 5xx is terminal.
func UploadToPresignedURL(ctx context.Context, url string, file []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	backoff := retry.WithMaxRetries(5, retry.NewFibonacci(1*time.Second))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(file))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", contentType)

		resp, err := httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("upload failed: %s", resp.Status))
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			b, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
		}
		return nil
	})
}

// DownloadFromPresignedURL GETs the object behind a presigned URL.
func DownloadFromPresignedURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed: %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}
