package publishers

type Publisher struct {
	ID      string
	Name    string
	Enabled bool
	Version int64
}
