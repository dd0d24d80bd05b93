package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

// emit sends the rendered output to its destination: stdout when Output is
// empty or "-", a file otherwise. With Copy set the same text also goes to
// the clipboard.
func emit(args OutputArgs, buf *bytes.Buffer, stdout io.Writer) error {
	switch args.Output {
	case "", "-":
		if _, err := stdout.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	default:
		if err := os.WriteFile(args.Output, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write output file %s: %w", args.Output, err)
		}
	}

	if args.Copy {
		if err := copyToClipboard(buf.String()); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Output copied to clipboard")
	}
	return nil
}
