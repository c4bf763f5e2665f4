package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format represents an output format
type Format string

const (
	FormatPipe   Format = "pipe"
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
	FormatTable  Format = "table"
)

// PipeSeparator joins fields in pipe output
const PipeSeparator = " | "

// Options for rendering
type Options struct {
	Format Format
}

// Renderer handles output rendering
type Renderer struct {
	writer io.Writer
	opts   Options
}

// NewRenderer creates a new renderer
func NewRenderer(writer io.Writer, opts Options) *Renderer {
	if opts.Format == "" {
		opts.Format = FormatPipe
	}
	return &Renderer{
		writer: writer,
		opts:   opts,
	}
}

// Records renders a record listing. items is the slice handed to the
// structured encoders; rows holds the same records as pipe fields.
func (r *Renderer) Records(items interface{}, rows [][]string) error {
	switch r.opts.Format {
	case FormatJSON:
		return r.RenderJSON(items)
	case FormatNDJSON:
		return r.RenderNDJSON(items)
	case FormatYAML:
		return r.RenderYAML(items)
	case FormatPipe:
		return r.RenderPipe(rows)
	default:
		return fmt.Errorf("unsupported output format %q", r.opts.Format)
	}
}

// RenderPipe writes one line per row with fields joined by PipeSeparator.
// No header is written and an empty row set writes nothing.
func (r *Renderer) RenderPipe(rows [][]string) error {
	for _, row := range rows {
		if _, err := fmt.Fprintln(r.writer, strings.Join(row, PipeSeparator)); err != nil {
			return err
		}
	}
	return nil
}

// RenderJSON renders data as indented JSON
func (r *Renderer) RenderJSON(data interface{}) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// RenderNDJSON renders each element of a slice as one JSON line
func (r *Renderer) RenderNDJSON(items interface{}) error {
	// items may be any slice type; split it through its JSON array form
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return fmt.Errorf("ndjson output needs a list: %w", err)
	}

	for _, elem := range elems {
		if _, err := fmt.Fprintln(r.writer, string(elem)); err != nil {
			return err
		}
	}
	return nil
}

// RenderYAML renders data as YAML
func (r *Renderer) RenderYAML(data interface{}) error {
	encoder := yaml.NewEncoder(r.writer)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(data)
}

// RenderTable renders data as a formatted table
func (r *Renderer) RenderTable(headers []string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	if err := r.renderTableRow(headers, widths); err != nil {
		return err
	}
	if err := r.renderTableSeparator(widths); err != nil {
		return err
	}
	for _, row := range rows {
		if err := r.renderTableRow(row, widths); err != nil {
			return err
		}
	}

	return nil
}

func (r *Renderer) renderTableRow(cells []string, widths []int) error {
	var b strings.Builder
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		if i > 0 {
			b.WriteString("  ")
		}
		if i == len(cells)-1 {
			b.WriteString(cell)
		} else {
			fmt.Fprintf(&b, "%-*s", widths[i], cell)
		}
	}
	_, err := fmt.Fprintln(r.writer, b.String())
	return err
}

func (r *Renderer) renderTableSeparator(widths []int) error {
	parts := make([]string, len(widths))
	for i, width := range widths {
		parts[i] = strings.Repeat("-", width)
	}
	_, err := fmt.Fprintln(r.writer, strings.Join(parts, "  "))
	return err
}
