package content

import (
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	ferrors "git.home.luguber.info/inful/gameshelf/internal/foundation/errors"
	"git.home.luguber.info/inful/gameshelf/internal/markup"
)

// ItemName returns the display name of a fragment: its first heading, else the filename
// without the fragment extension.
func ItemName(src, file, ext string) string {
	if title, ok := markup.Heading(src); ok {
		return title
	}
	return fallbackName(strings.TrimSuffix(file, ext))
}

// CoreTitles returns the title and subtitle of a core document. The title falls back to the
// game's directory name and the subtitle to "".
func CoreTitles(src, dirName string) (title, subtitle string) {
	d := markup.Parse(src)
	if m, ok := d.First(markup.KindHeading); ok {
		title = m.Text
	} else {
		title = fallbackName(dirName)
	}
	if m, ok := d.First(markup.KindSubtitle); ok {
		subtitle = m.Text
	}
	return title, subtitle
}

// fallbackName normalises names taken from the filesystem; macOS hands out decomposed forms.
func fallbackName(name string) string {
	return norm.NFC.String(name)
}

func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path inside the content root
	if err != nil {
		return "", ferrors.FileSystemError(err, "failed to read document").WithContext("path", path).Build()
	}
	return string(data), nil
}
