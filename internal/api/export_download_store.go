package api

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"github.com/maintence-saida/gestion-maintenance/internal/exporter"
)

type exportDownload struct {
	result    *exporter.Result
	expiresAt time.Time
}

// exportDownloadStore prepared exports kept in memory until fetched or expired
type exportDownloadStore struct {
	mu    sync.Mutex
	items map[string]exportDownload
}

func newExportDownloadStore() *exportDownloadStore {
	return &exportDownloadStore{
		items: make(map[string]exportDownload),
	}
}

func (s *exportDownloadStore) put(result *exporter.Result, ttl time.Duration) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	token = newRandomToken(24)
	s.items[token] = exportDownload{
		result:    result,
		expiresAt: time.Now().Add(ttl),
	}
	return token
}

// take returns the export and forgets it
func (s *exportDownloadStore) take(token string) (*exporter.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	v, ok := s.items[token]
	if !ok {
		return nil, false
	}
	delete(s.items, token)
	return v.result, true
}

func (s *exportDownloadStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}

func newRandomToken(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
