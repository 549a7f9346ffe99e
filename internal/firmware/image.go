package firmware

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Image describes a firmware file on disk.
type Image struct {
	Path     string
	Size     int64
	Modified time.Time
	SHA256   string
}

// Inspect reads the file at path and returns its size and checksum.
func Inspect(path string) (Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return Image{}, errors.Wrapf(err, "failed to open firmware image: %s", path)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Image{}, errors.Wrapf(err, "failed to stat firmware image: %s", path)
	}

	sum, err := calculateSHA256(file)
	if err != nil {
		return Image{}, err
	}

	return Image{
		Path:     path,
		Size:     info.Size(),
		Modified: info.ModTime(),
		SHA256:   sum,
	}, nil
}

func calculateSHA256(r io.Reader) (string, error) {
	hasher := sha256.New()
	if _, err := io.Copy(hasher, r); err != nil {
		return "", errors.Wrap(err, "failed to read data for checksum")
	}
	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}
