package replay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

func isYAML(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Encode writes data as JSON, or as YAML when asYAML is set
func Encode(w io.Writer, data ReplayData, asYAML bool) error {
	if asYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// Decode reads a recording and rejects other format versions
func Decode(r io.Reader, asYAML bool) (*ReplayData, error) {
	var data ReplayData
	var err error
	if asYAML {
		err = yaml.NewDecoder(r).Decode(&data)
	} else {
		err = json.NewDecoder(r).Decode(&data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported replay version %q", data.Version)
	}
	return &data, nil
}

// Save writes data to filename, picking YAML for .yaml/.yml and JSON otherwise.
// The file is replaced atomically.
func Save(filename string, data ReplayData) error {
	var buf bytes.Buffer
	if err := Encode(&buf, data, isYAML(filename)); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	if err := renameio.WriteFile(filename, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// LoadReplay reads a recording written by Save
func LoadReplay(filename string) (*ReplayData, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return Decode(bytes.NewReader(raw), isYAML(filename))
}
