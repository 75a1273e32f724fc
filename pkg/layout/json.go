package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Marshal encodes l as indented JSON.
func Marshal(l *Layout) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode layout: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a layout produced by [Marshal].
func Unmarshal(data []byte) (*Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	if l.Width <= 0 || l.Height <= 0 || len(l.Nodes) == 0 {
		return nil, fmt.Errorf("decode layout: empty canvas")
	}
	return &l, nil
}

// ReadFile reads a layout JSON file.
func ReadFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	l, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Write encodes l as indented JSON to w.
func Write(l *Layout, w io.Writer) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
