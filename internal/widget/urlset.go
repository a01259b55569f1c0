package widget

// urlSet is an insertion-ordered set of URLs
type urlSet struct {
	order []string
	seen  map[string]struct{}
}

func newURLSet() *urlSet {
	return &urlSet{seen: make(map[string]struct{})}
}

// Add inserts url unless it is already present and reports whether it was new
func (s *urlSet) Add(url string) bool {
	if _, ok := s.seen[url]; ok {
		return false
	}
	s.seen[url] = struct{}{}
	s.order = append(s.order, url)
	return true
}

// Contains reports whether url has been added
func (s *urlSet) Contains(url string) bool {
	_, ok := s.seen[url]
	return ok
}

// Len returns the number of distinct URLs
func (s *urlSet) Len() int {
	return len(s.order)
}

// Slice returns a copy of the URLs in insertion order
func (s *urlSet) Slice() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
