package bank

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

//go:embed sentences.txt
var defaultBank embed.FS

const defaultBankName = "sentences.txt"

// Default returns the sentence bank embedded in the binary.
func Default(rnd *rand.Rand) (*Bank, error) {
	data, err := defaultBank.ReadFile(defaultBankName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return Parse(bytes.NewReader(data), rnd)
}

// WriteDefault writes the embedded sentence bank to path atomically so the
// user can edit it. Parent directories are created as needed.
func WriteDefault(path string) error {
	data, err := defaultBank.ReadFile(defaultBankName)
	if err != nil {
		return fmt.Errorf("failed to read embedded bank: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create sentence bank dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "sentences-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp sentence bank: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write sentence bank: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush sentence bank: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close sentence bank: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write sentence bank: %w", err)
	}
	return nil
}
