package loaders

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// SavePNG writes img to path as a PNG file
func SavePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close image file: %w", err)
	}
	return nil
}

// LoadPNG reads a PNG file written by SavePNG
func LoadPNG(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode PNG: %w", err)
	}
	return img, nil
}
