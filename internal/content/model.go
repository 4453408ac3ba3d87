package content

// Item is a settings or expansion fragment belonging to a game.
type Item struct {
	Name     string // display title
	File     string // filename inside the category folder
	Path     string // slash-joined game/Category/file, used for links from the root
	Category string // category folder name
	AbsPath  string // filesystem path used for reading and rewriting
}

// Game is a directory that holds a core document.
type Game struct {
	Name       string // directory name
	Path       string // relative path from the root, same as Name
	CorePath   string // filesystem path of the core document
	Title      string
	Subtitle   string
	Settings   []Item
	Expansions []Item
}

// HasChildren reports whether the game has any settings or expansions.
func (g Game) HasChildren() bool {
	return len(g.Settings) > 0 || len(g.Expansions) > 0
}

// Items returns settings followed by expansions.
func (g Game) Items() []Item {
	out := make([]Item, 0, len(g.Settings)+len(g.Expansions))
	out = append(out, g.Settings...)
	return append(out, g.Expansions...)
}
