package domain

// Thread is the ordered text of a reply chain. Element 0 is the meal header.
type Thread []string

func (t Thread) Header() string {
	if len(t) == 0 {
		return ""
	}
	return t[0]
}

// StationPosts returns everything after the header.
func (t Thread) StationPosts() []string {
	if len(t) < 2 {
		return nil
	}
	return t[1:]
}
