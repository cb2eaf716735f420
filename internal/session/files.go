package session

import (
	"sync"

	"github.com/example/recipe-assistant/internal/models"
)

// FileStore holds a session's uploaded files in upload order.
type FileStore struct {
	mu    sync.RWMutex
	files []models.UploadedFile
}

func NewFileStore() *FileStore { return &FileStore{} }

func (s *FileStore) Add(f models.UploadedFile) {
	s.mu.Lock()
	s.files = append(s.files, f)
	s.mu.Unlock()
}

func (s *FileStore) Get(id string) (models.UploadedFile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.files {
		if f.ID == id {
			return f, true
		}
	}
	return models.UploadedFile{}, false
}

func (s *FileStore) List() []models.UploadedFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.UploadedFile, len(s.files))
	copy(out, s.files)
	return out
}

// Remove reports whether a file with that id existed.
func (s *FileStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.files {
		if f.ID == id {
			s.files = append(s.files[:i], s.files[i+1:]...)
			return true
		}
	}
	return false
}

func (s *FileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}
