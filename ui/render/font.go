package render

import (
	"fmt"
	"strconv"
	"strings"
)

const DefaultFont = "DejaVu Sans Mono 12"

const defaultFontSize = 12

// FontDescription names a font family and a size in points.
type FontDescription struct {
	Family string
	Size   float64
}

// ParseFontDescription parses the "Family Name Size" form, for example
// "DejaVu Sans Mono 12". The size is optional. A vim style "Family:h12"
// is accepted as well.
func ParseFontDescription(desc string) FontDescription {
	desc = strings.TrimSpace(desc)
	if family, size, ok := strings.Cut(desc, ":h"); ok {
		if v, err := strconv.ParseFloat(size, 64); err == nil && v > 0 {
			return FontDescription{Family: strings.ReplaceAll(family, "_", " "), Size: v}
		}
	}
	fd := FontDescription{Family: desc, Size: defaultFontSize}
	if i := strings.LastIndexByte(desc, ' '); i >= 0 {
		if v, err := strconv.ParseFloat(desc[i+1:], 64); err == nil && v > 0 {
			fd.Family = strings.TrimSpace(desc[:i])
			fd.Size = v
		}
	}
	return fd
}

func (f FontDescription) String() string {
	return fmt.Sprintf("%s %s", f.Family, strconv.FormatFloat(f.Size, 'f', -1, 64))
}

// Feature is one OpenType feature setting such as liga=0.
type Feature struct {
	Tag   string
	Value int
}

// FontFeatures is an ordered list of feature settings applied to every
// shaped run.
type FontFeatures []Feature

// ParseFontFeatures parses a comma or space separated list. Every entry
// is one of "tag", "+tag", "-tag" or "tag=N".
func ParseFontFeatures(s string) (FontFeatures, error) {
	var out FontFeatures
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	for _, field := range fields {
		f := Feature{Tag: field, Value: 1}
		switch {
		case strings.HasPrefix(field, "+"):
			f.Tag = field[1:]
		case strings.HasPrefix(field, "-"):
			f.Tag, f.Value = field[1:], 0
		default:
			if tag, value, ok := strings.Cut(field, "="); ok {
				v, err := strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf("font feature %q: %w", field, err)
				}
				f.Tag, f.Value = tag, v
			}
		}
		if f.Tag == "" || len(f.Tag) > 4 {
			return nil, fmt.Errorf("font feature %q: bad tag", field)
		}
		out = append(out, f)
	}
	return out, nil
}

func (ff FontFeatures) String() string {
	parts := make([]string, len(ff))
	for i, f := range ff {
		parts[i] = fmt.Sprintf("%s=%d", f.Tag, f.Value)
	}
	return strings.Join(parts, ",")
}
