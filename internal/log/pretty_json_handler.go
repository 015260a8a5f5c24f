package log

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
)

type PrettyJSONHandlerOptions struct {
	slog.HandlerOptions
	PrettyPrint bool
}

// NewPrettyJSONHandler returns a JSON handler that optionally indents each
// record, which is easier on the eyes during local development.
func NewPrettyJSONHandler(w io.Writer, opts *PrettyJSONHandlerOptions) slog.Handler {
	if opts == nil {
		opts = &PrettyJSONHandlerOptions{}
	}

	if opts.PrettyPrint {
		w = &indentWriter{writer: w}
	}

	return slog.NewJSONHandler(w, &opts.HandlerOptions)
}

// indentWriter re-indents the single JSON line the handler emits per record.
type indentWriter struct {
	writer io.Writer
}

func (iw *indentWriter) Write(p []byte) (int, error) {
	var indented bytes.Buffer
	if err := json.Indent(&indented, bytes.TrimRight(p, "\n"), "", "  "); err != nil {
		return iw.writer.Write(p)
	}
	indented.WriteByte('\n')

	if _, err := iw.writer.Write(indented.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}
