package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/ragchat"
	"github.com/fwojciec/ragchat/api"
)

// uploader is the part of the service client the upload step needs.
type uploader interface {
	Upload(ctx context.Context, name string, r io.Reader) (ragchat.UploadResult, error)
}

// uploadFiles uploads every PDF or TXT file matching pattern and reports
// each outcome to out. Other matches are skipped. Failures do not stop the
// remaining uploads; they are returned together.
func uploadFiles(ctx context.Context, client uploader, pattern string, out io.Writer) error {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("upload: no files match %q", pattern)
	}

	var errs []error
	for _, path := range matches {
		if !api.Uploadable(path) {
			fmt.Fprintf(out, "skipped %s: only PDF and TXT files are supported\n", path)
			continue
		}
		res, err := uploadFile(ctx, client, path)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("upload %s: %w", path, err))
		case !res.OK():
			errs = append(errs, fmt.Errorf("upload %s: %s", path, res.Message))
		default:
			fmt.Fprintf(out, "uploaded %s: %s\n", res.Filename, res.Message)
		}
	}
	return errors.Join(errs...)
}

func uploadFile(ctx context.Context, client uploader, path string) (ragchat.UploadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ragchat.UploadResult{}, err
	}
	defer f.Close()
	return client.Upload(ctx, path, f)
}
