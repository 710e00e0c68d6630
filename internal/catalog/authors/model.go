package authors

type Author struct {
	ID      string
	Name    string
	Enabled bool
	Version int64
}
