// Package intake turns a picked or dropped image file into the in-memory
// data URI used as the selected image.
package intake

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dmitrijs2005/plantguard/internal/client/apperr"
	"github.com/dmitrijs2005/plantguard/internal/filex"
	"github.com/google/uuid"
)

// File is either a picked file (Path set) or a dropped file (Reader set).
// MediaType is the declared type and may be empty for picked files.
type File struct {
	Path      string
	Name      string
	MediaType string
	Reader    io.Reader
}

type Image struct {
	ID        string
	Name      string
	MediaType string
	Data      []byte
	DataURI   string
}

type Intake struct {
	maxBytes int64

	mu        sync.Mutex
	// started numbers every Select; committed is the newest ticket that
	// was stored or cleared. A rejected file never moves committed.
	started   uint64
	committed uint64
	selected  *Image
}

// New creates an Intake. maxBytes of zero or less disables the size limit.
func New(maxBytes int64) *Intake {
	return &Intake{maxBytes: maxBytes}
}

func isImage(mediaType string) bool {
	return strings.HasPrefix(mediaType, "image/")
}

func normalize(mediaType string) string {
	if mt, _, err := mime.ParseMediaType(mediaType); err == nil {
		return mt
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func encodeDataURI(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Select reads f and makes it the selected image. A file that is not an
// image is ignored and reported as false with a nil error. When a newer
// image was stored, or Clear was called, while f was read, f is dropped.
func (in *Intake) Select(ctx context.Context, f File) (bool, error) {
	in.mu.Lock()
	in.started++
	ticket := in.started
	in.mu.Unlock()

	mediaType := normalize(f.MediaType)
	if mediaType != "" && !isImage(mediaType) {
		return false, nil
	}

	var (
		data []byte
		err  error
		name = f.Name
	)
	if f.Reader != nil {
		data, err = filex.ReadLimited(f.Reader, in.maxBytes)
	} else {
		if name == "" {
			name = filepath.Base(f.Path)
		}
		if mediaType == "" {
			mediaType = normalize(mime.TypeByExtension(filepath.Ext(f.Path)))
		}
		if mediaType != "" && !isImage(mediaType) {
			return false, nil
		}
		data, err = filex.ReadFileLimited(f.Path, in.maxBytes)
	}
	if err != nil {
		if errors.Is(err, filex.ErrTooLarge) {
			return false, apperr.Validation(fmt.Sprintf("Image is larger than %d bytes", in.maxBytes))
		}
		return false, fmt.Errorf("read image: %w", err)
	}

	if mediaType == "" {
		mediaType = normalize(http.DetectContentType(data))
	}
	if !isImage(mediaType) {
		return false, nil
	}

	if err := ctx.Err(); err != nil {
		return false, err
	}

	img := &Image{
		ID:        uuid.NewString(),
		Name:      name,
		MediaType: mediaType,
		Data:      data,
		DataURI:   encodeDataURI(mediaType, data),
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if ticket <= in.committed {
		return false, nil
	}
	in.committed = ticket
	in.selected = img
	return true, nil
}

// Selected returns the current image or nil.
func (in *Intake) Selected() *Image {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.selected
}

// Clear drops the selection and any Select still in flight.
func (in *Intake) Clear() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.committed = in.started
	in.selected = nil
}
