package render

import (
	"fmt"
	"io"

	"github.com/hayeah/apktree/listing"
)

// ListingBanner opens the flat listing.
const ListingBanner = "Entries:"

// Listing writes the banner, one line per entry and the counts.
func Listing(w io.Writer, l *listing.Listing) error {
	if _, err := fmt.Fprintln(w, ListingBanner); err != nil {
		return err
	}
	for _, line := range l.Lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%d directories, %d files\n", l.Dirs, l.Files)
	return err
}
