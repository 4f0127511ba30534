package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-music-catalog/internal/application"
	"github.com/oksasatya/go-music-catalog/internal/domain/errs"
)

// formOverhead leaves room for the text fields and multipart boundaries.
const formOverhead = 1 << 20

// readSongForm parses a multipart submission with fields title, artist, audio and image.
// The returned release func closes the opened files and removes temporary ones.
func readSongForm(c *gin.Context, maxBytes int64) (application.SongInput, func(), error) {
	var in application.SongInput
	if maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*maxBytes+formOverhead)
	}
	form, err := c.MultipartForm()
	if err != nil {
		return in, func() {}, fmt.Errorf("multipart form: %v: %w", err, errs.ErrInvalid)
	}

	var opened []interface{ Close() error }
	release := func() {
		for _, f := range opened {
			_ = f.Close()
		}
		_ = form.RemoveAll()
	}

	upload := func(field string) (*application.Upload, error) {
		files := form.File[field]
		if len(files) == 0 {
			return nil, nil
		}
		fh := files[0]
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("%s: %v: %w", field, err, errs.ErrInvalid)
		}
		opened = append(opened, f)
		return &application.Upload{
			Reader:      f,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
		}, nil
	}

	in.Title = formValue(form.Value["title"])
	in.Artist = formValue(form.Value["artist"])
	if in.Audio, err = upload("audio"); err != nil {
		release()
		return in, func() {}, err
	}
	if in.Image, err = upload("image"); err != nil {
		release()
		return in, func() {}, err
	}
	return in, release, nil
}

func formValue(vs []string) string {
	if len(vs) == 0 {
		return ""
	}
	return strings.TrimSpace(vs[0])
}
