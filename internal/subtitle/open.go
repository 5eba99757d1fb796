package subtitle

import (
	"fmt"
	"os"

	"github.com/mgpai22/subshift/internal/textenc"
)

// Open reads and parses the subtitle file at path. encoding is passed to
// textenc.NewReader; the name actually used is returned alongside the track.
func Open(path, encoding string) (*Track, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open subtitle file: %w", err)
	}
	defer file.Close()

	r, used, err := textenc.NewReader(file, encoding)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode subtitle file: %w", err)
	}

	track, err := ParseReader(r)
	if err != nil {
		return nil, "", err
	}
	return track, used, nil
}
