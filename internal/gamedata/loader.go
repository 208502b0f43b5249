package gamedata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
)

// LoadFS reads and unmarshals a JSON file from fsys. Unknown fields are
// rejected so a typo in a data file fails loudly.
func LoadFS[T any](fsys fs.FS, filename string) (T, error) {
	var result T

	content, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return result, fmt.Errorf("read data file %s: %w", filename, err)
	}

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&result); err != nil {
		return result, fmt.Errorf("parse JSON from %s: %w", filename, err)
	}

	return result, nil
}
