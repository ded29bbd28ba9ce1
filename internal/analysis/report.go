package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Output formats accepted by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Write renders res in the named format.
func Write(w io.Writer, res *Result, format string) error {
	switch format {
	case FormatText, "":
		return WriteText(w, res)
	case FormatJSON:
		return WriteJSON(w, res)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// WriteText prints the three-line summary:
//
//	Shapes: 3
//	Colors: 2
//	Colors (RGB): [(255, 0, 0), (0, 0, 255)]
func WriteText(w io.Writer, res *Result) error {
	parts := make([]string, len(res.Colors))
	for i, c := range res.Colors {
		parts[i] = c.String()
	}

	_, err := fmt.Fprintf(w, "Shapes: %d\nColors: %d\nColors (RGB): [%s]\n",
		res.ShapeCount, res.ColorCount, strings.Join(parts, ", "))
	return err
}

// WriteJSON prints res as indented JSON.
func WriteJSON(w io.Writer, res *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
