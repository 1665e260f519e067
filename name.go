package ircstate

// A Name is a nick or channel name as the server spelled it, along with the
// folded form it's stored under.
type Name struct {
	Normal string `json:"normal" yaml:"normal"`
	Folded string `json:"folded" yaml:"folded"`
}

func (name Name) String() string {
	return name.Normal
}
