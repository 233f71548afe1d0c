package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"subdeck/internal/fileutil"
	"subdeck/internal/services"
	"subdeck/internal/subtitles"
)

// Track names.
const (
	TrackPrimary   = "primary"
	TrackSecondary = "secondary"
)

// InputError identifies which input document could not be read.
type InputError struct {
	Track string
	Path  string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s subtitle %s: %v", e.Track, e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Source is a decoded subtitle document.
type Source struct {
	Track  string `json:"track"`
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
	Text   string `json:"-"`
}

// ReadTrack loads and decodes one subtitle file. Missing files are tagged
// with services.ErrNotFound, undecodable or unreadable ones with
// services.ErrValidation.
func ReadTrack(track, path, encoding string) (Source, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		marker := services.ErrValidation
		if errors.Is(err, fs.ErrNotExist) {
			marker = services.ErrNotFound
		}
		return Source{}, &InputError{
			Track: track,
			Path:  path,
			Err:   services.Wrap(marker, "input", "read", "", err),
		}
	}
	text, err := subtitles.Decode(raw, encoding)
	if err != nil {
		return Source{}, &InputError{
			Track: track,
			Path:  path,
			Err:   services.Wrap(services.ErrValidation, "input", "decode", "", err),
		}
	}
	return Source{Track: track, Path: path, SHA256: fileutil.SHA256Hex(raw), Text: text}, nil
}

// ReadTracks loads both documents. Nothing is returned unless both succeed.
func ReadTracks(primaryPath, secondaryPath, encoding string) (Source, Source, error) {
	primary, err := ReadTrack(TrackPrimary, primaryPath, encoding)
	if err != nil {
		return Source{}, Source{}, err
	}
	secondary, err := ReadTrack(TrackSecondary, secondaryPath, encoding)
	if err != nil {
		return Source{}, Source{}, err
	}
	return primary, secondary, nil
}
