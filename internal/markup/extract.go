package markup

// Heading returns the raw text of the first plain-text <h1> in src.
func Heading(src string) (string, bool) {
	m, ok := Parse(src).First(KindHeading)
	return m.Text, ok
}

// Subtitle returns the raw text of the first element with class "subtitle" in src.
func Subtitle(src string) (string, bool) {
	m, ok := Parse(src).First(KindSubtitle)
	return m.Text, ok
}
