package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tailscale/hujson"
)

// AddExclude appends patterns to the "exclude" array of the JSON or JSONC
// config at path, creating the file or the array when missing. Comments and
// layout of the existing file are kept. Patterns already listed are skipped.
// It returns the patterns that were added.
func AddExclude(path string, patterns ...string) ([]string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".jsonc":
	default:
		return nil, fmt.Errorf("cannot edit %s: only .json and .jsonc configs are editable", path)
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		data = []byte("{}\n")
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	v, err := hujson.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSONC config %s: %w", path, err)
	}

	existing, err := excludeList(v)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	var added []string
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" || slices.Contains(existing, p) {
			continue
		}
		if err := appendToArray(&v, "/exclude", p); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		existing = append(existing, p)
		added = append(added, p)
	}
	if len(added) == 0 {
		return nil, nil
	}

	v.Format()
	if err := os.WriteFile(path, v.Pack(), 0644); err != nil {
		return nil, fmt.Errorf("failed to write config: %w", err)
	}
	return added, nil
}

func excludeList(v hujson.Value) ([]string, error) {
	found := v.Find("/exclude")
	if found == nil {
		return nil, nil
	}
	if _, ok := found.Value.(*hujson.Array); !ok {
		return nil, fmt.Errorf(`"exclude" is not an array`)
	}

	std := found.Clone()
	std.Standardize()
	var list []string
	if err := json.Unmarshal(std.Pack(), &list); err != nil {
		return nil, fmt.Errorf(`"exclude" must hold strings: %w`, err)
	}
	return list, nil
}

// appendToArray adds val at the end of the array at the JSON Pointer path,
// creating an empty array first if nothing is there.
func appendToArray(v *hujson.Value, path string, val any) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}

	if v.Find(path) == nil {
		patch := fmt.Sprintf(`[{"op":"add","path":"%s","value":[]}]`, path)
		if err := v.Patch([]byte(patch)); err != nil {
			return err
		}
	}
	patch := fmt.Sprintf(`[{"op":"add","path":"%s/-","value":%s}]`, path, b)
	return v.Patch([]byte(patch))
}
