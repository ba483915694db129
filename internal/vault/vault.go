// Package vault reads daily notes from a folder of Markdown files.
//
// Each note's leading YAML frontmatter becomes the day's properties and the
// file's basename becomes its name. Names are not checked here: a folder
// holding "notes.md" yields a record named "notes", and the report engine
// rejects the set.
package vault

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/weekreview/internal/day"
	"github.com/roach88/weekreview/internal/value"
)

// NoteExt is the extension of daily notes.
const NoteExt = ".md"

// Reader lists the notes of one daily folder.
type Reader struct {
	Dir string
}

// NewReader returns a reader for dailyFolder inside vaultDir.
func NewReader(vaultDir, dailyFolder string) *Reader {
	return &Reader{Dir: filepath.Join(vaultDir, dailyFolder)}
}

// Records reads every note directly inside the folder, sorted by name.
// A missing folder yields no records.
func (r *Reader) Records(ctx context.Context) ([]day.Record, error) {
	entries, err := os.ReadDir(r.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []day.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read daily folder %s: %w", r.Dir, err)
	}

	records := make([]day.Record, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || filepath.Ext(entry.Name()) != NoteExt {
			continue
		}
		rec, err := RecordFromFile(filepath.Join(r.Dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// RecordFromFile reads one note. Date is set when the basename is a day
// name and left zero otherwise.
func RecordFromFile(path string) (day.Record, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return day.Record{}, fmt.Errorf("read note %s: %w", path, err)
	}
	props, err := Frontmatter(content)
	if err != nil {
		return day.Record{}, fmt.Errorf("note %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	rec := day.Record{Name: name, Properties: props}
	if date, err := day.ParseName(name); err == nil {
		rec.Date = date
	}
	return rec, nil
}

// Frontmatter decodes the YAML block between a leading "---" line and the
// next "---" line. A note without one has no properties.
func Frontmatter(content []byte) (value.Object, error) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	content = bytes.TrimPrefix(content, []byte("\ufeff"))

	lines := strings.Split(string(content), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return value.Object{}, nil
	}
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end < 0 {
		return value.Object{}, nil
	}

	var raw any
	if err := yaml.Unmarshal([]byte(strings.Join(lines[1:end], "\n")), &raw); err != nil {
		return nil, fmt.Errorf("frontmatter: %w", err)
	}
	if raw == nil {
		return value.Object{}, nil
	}

	v, err := value.FromAny(raw)
	if err != nil {
		return nil, fmt.Errorf("frontmatter: %w", err)
	}
	obj, ok := v.(value.Object)
	if !ok {
		return nil, fmt.Errorf("frontmatter: expected a mapping, got %T", v)
	}
	return obj, nil
}
