package stub

import (
	"strconv"
	"sync"
	"time"
)

const firstPostID = 1_000_000

type Storage struct {
	mu       sync.RWMutex
	menus    map[string][]byte // cafe id -> raw menu payload
	posts    []Post
	nextID   int64
	failNext int
}

func NewStorage() *Storage {
	return &Storage{
		menus:  make(map[string][]byte),
		nextID: firstPostID,
	}
}

func (s *Storage) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menus = make(map[string][]byte)
	s.posts = nil
	s.nextID = firstPostID
	s.failNext = 0
}

func (s *Storage) SetMenu(cafeID string, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menus[cafeID] = payload
}

func (s *Storage) Menu(cafeID string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.menus[cafeID]
	return payload, ok
}

// FailNext makes the next n posts fail.
func (s *Storage) FailNext(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = n
}

// AddPost stores a post and returns it, or false when a failure was queued.
func (s *Storage) AddPost(text, replyToID, requestID string) (Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failNext > 0 {
		s.failNext--
		return Post{}, false
	}

	s.nextID++
	post := Post{
		ID:        strconv.FormatInt(s.nextID, 10),
		Text:      text,
		ReplyToID: replyToID,
		RequestID: requestID,
		CreatedAt: time.Now(),
	}
	s.posts = append(s.posts, post)
	return post, true
}

func (s *Storage) Posts() []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Post, len(s.posts))
	copy(out, s.posts)
	return out
}
