package net

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decode unmarshals JSON or YAML content into target. JSON is detected by
// a leading '{' or '['; YAML, a JSON superset, handles the rest.
func Decode[T any](b []byte, target *T) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return errors.New("empty document")
	}

	if trimmed[0] == '{' || trimmed[0] == '[' {
		d := json.NewDecoder(bytes.NewReader(trimmed))
		d.DisallowUnknownFields()
		if err := d.Decode(target); err != nil {
			return fmt.Errorf("error decoding JSON content: %w", err)
		}
		return nil
	}

	d := yaml.NewDecoder(bytes.NewReader(trimmed))
	d.KnownFields(true)
	if err := d.Decode(target); err != nil {
		return fmt.Errorf("error decoding YAML content: %w", err)
	}
	return nil
}

// GetDocument reads src (file, URL or stdin) and decodes it into target.
func GetDocument[T any](ctx context.Context, src string, target *T) error {
	b, err := ReadSource(ctx, src)
	if err != nil {
		return err
	}
	if err := Decode(b, target); err != nil {
		return fmt.Errorf("%s: %w", strings.TrimSpace(src), err)
	}
	return nil
}
