package sessions

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const storeFileName = "sessions.yaml"

// StoredCookie is the on-disk form of one credential cookie. Only fields
// needed to resend the cookie verbatim are kept.
type StoredCookie struct {
	Name    string    `yaml:"name"`
	Value   string    `yaml:"value"`
	Path    string    `yaml:"path,omitempty"`
	Domain  string    `yaml:"domain,omitempty"`
	Expires time.Time `yaml:"expires,omitempty"`
}

// StoredSession is one persisted remote session, keyed by API host.
type StoredSession struct {
	Version   string         `yaml:"version"`
	Timestamp time.Time      `yaml:"timestamp"`
	Cookies   []StoredCookie `yaml:"cookies"`
}

// Cookie converts back to the http.Cookie the remote side issued.
func (s StoredSession) Credential() []*http.Cookie {
	cookies := make([]*http.Cookie, 0, len(s.Cookies))
	for _, c := range s.Cookies {
		cookies = append(cookies, &http.Cookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Domain:  c.Domain,
			Expires: c.Expires,
		})
	}
	return cookies
}

// Store persists session credentials between CLI invocations, one record per
// API host, as a YAML file under the user's config directory.
type Store struct {
	lock sync.Mutex
	path string

	// host -> session
	Servers map[string]StoredSession `yaml:"servers"`
}

// NewStore creates a Store rooted at dir. An empty dir selects
// ~/.config/geolearn.
func NewStore(dir string) (*Store, error) {
	if len(dir) == 0 {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".config", "geolearn")
	}

	store := &Store{
		path:    filepath.Join(dir, storeFileName),
		Servers: map[string]StoredSession{},
	}

	if err := store.load(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read session store: %w", err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("failed to parse session store: %w", err)
	}

	if s.Servers == nil {
		s.Servers = map[string]StoredSession{}
	}

	return nil
}

// Get returns the persisted session for host, if any.
func (s *Store) Get(host string) (StoredSession, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	sess, ok := s.Servers[host]
	return sess, ok
}

// Save records the credential cookies for host and commits to disk.
func (s *Store) Save(host string, credential []*http.Cookie) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	stored := StoredSession{
		Version:   "1.0",
		Timestamp: time.Now(),
	}
	for _, c := range credential {
		stored.Cookies = append(stored.Cookies, StoredCookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Domain:  c.Domain,
			Expires: c.Expires,
		})
	}

	s.Servers[host] = stored

	logrus.WithFields(logrus.Fields{
		"host":    host,
		"cookies": len(stored.Cookies),
	}).Debug("Persisting session credential")

	return s.commit()
}

// Remove forgets the persisted session for host and commits to disk.
func (s *Store) Remove(host string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.Servers[host]; !ok {
		return nil
	}
	delete(s.Servers, host)
	return s.commit()
}

func (s *Store) commit() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session store directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session store: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session store: %w", err)
	}

	return nil
}
