package dataset

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/atomview/atomview/errors"
)

const (
	ldaSubdir = "openmx_lda"
	upfSubdir = "pslibrary"
)

// Store caches parsed density datasets, backed by files on disk.
// Missing elements are downloaded through the optional Fetcher.
// All methods are safe for concurrent use.
type Store struct {
	dir     string
	fetcher *Fetcher
	logger  *zap.SugaredLogger

	mu  sync.RWMutex
	lda map[string]*LDAElement
	upf map[string]*UPFElement
}

// NewStore builds a Store rooted at dir. fetcher may be nil, in which
// case only files already on disk are served. A nil logger disables
// logging.
func NewStore(dir string, fetcher *Fetcher, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{
		dir:     dir,
		fetcher: fetcher,
		logger:  logger,
		lda:     make(map[string]*LDAElement),
		upf:     make(map[string]*UPFElement),
	}
}

// LDADir returns the directory holding OpenMX .alog files.
func (s *Store) LDADir() string { return filepath.Join(s.dir, ldaSubdir) }

// UPFDir returns the directory holding PSLibrary UPF files.
func (s *Store) UPFDir() string { return filepath.Join(s.dir, upfSubdir) }

// LDA returns the parsed OpenMX LDA dataset for atomic number z,
// loading it from disk or fetching it on first use.
func (s *Store) LDA(ctx context.Context, z int) (*LDAElement, error) {
	symbol, ok := SymbolForZ(z)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedState, "atomic number %d", z)
	}

	s.mu.RLock()
	if el, ok := s.lda[symbol]; ok {
		s.mu.RUnlock()
		return el, nil
	}
	s.mu.RUnlock()

	path, err := s.ldaPath(ctx, symbol)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: read %s", path)
	}
	el, err := ParseLDA(string(content), symbol)
	if err != nil {
		return nil, err
	}
	s.logger.Debugw("Loaded LDA dataset",
		"symbol", symbol,
		"orbitals", len(el.Orbitals),
		"valence_electrons", el.ValenceElectrons)

	s.mu.Lock()
	s.lda[symbol] = el
	s.mu.Unlock()
	return el, nil
}

// UPF returns the parsed PSLibrary dataset for atomic number z,
// loading it from disk or fetching it on first use.
func (s *Store) UPF(ctx context.Context, z int) (*UPFElement, error) {
	symbol, ok := SymbolForZ(z)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedState, "atomic number %d", z)
	}

	s.mu.RLock()
	if el, ok := s.upf[symbol]; ok {
		s.mu.RUnlock()
		return el, nil
	}
	s.mu.RUnlock()

	path, err := s.upfPath(ctx, symbol, z)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: open %s", path)
	}
	defer f.Close()
	el, err := ParseUPF(f, symbol)
	if err != nil {
		return nil, err
	}
	s.logger.Debugw("Loaded PSLibrary dataset",
		"symbol", symbol,
		"orbitals", len(el.Orbitals))

	s.mu.Lock()
	s.upf[symbol] = el
	s.mu.Unlock()
	return el, nil
}

// Invalidate drops the cached entries for symbol so the next request
// re-reads from disk. It is called by the directory watcher when a
// dataset file changes.
func (s *Store) Invalidate(symbol string) {
	s.mu.Lock()
	delete(s.lda, symbol)
	delete(s.upf, symbol)
	s.mu.Unlock()
	s.logger.Debugw("Invalidated cached dataset", "symbol", symbol)
}

// Reload drops the whole cache.
func (s *Store) Reload() {
	s.mu.Lock()
	s.lda = make(map[string]*LDAElement)
	s.upf = make(map[string]*UPFElement)
	s.mu.Unlock()
	s.logger.Infow("Reloaded dataset cache")
}

// ldaPath locates the on-disk .alog file for symbol, fetching it if
// absent. OpenMX names files like "Fe7.0.alog", so the lookup matches
// any .alog whose name starts with the lowercase symbol followed by a
// digit or dot.
func (s *Store) ldaPath(ctx context.Context, symbol string) (string, error) {
	dir := s.LDADir()
	entries, err := os.ReadDir(dir)
	if err == nil {
		var matches []string
		prefix := strings.ToLower(symbol)
		for _, e := range entries {
			name := strings.ToLower(e.Name())
			if !strings.HasSuffix(name, ".alog") || !strings.HasPrefix(name, prefix) {
				continue
			}
			rest := name[len(prefix):]
			if len(rest) > 0 && (rest[0] == '.' || (rest[0] >= '0' && rest[0] <= '9')) {
				matches = append(matches, filepath.Join(dir, e.Name()))
			}
		}
		if len(matches) > 0 {
			sort.Strings(matches)
			return matches[0], nil
		}
	}

	if s.fetcher == nil {
		return "", errors.Wrapf(ErrUnsupportedState, "no LDA file for %s in %s", symbol, dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "dataset: create LDA dir")
	}
	return s.fetcher.FetchLDA(ctx, symbol, dir)
}

func (s *Store) upfPath(ctx context.Context, symbol string, z int) (string, error) {
	dir := s.UPFDir()
	path := filepath.Join(dir, symbol+".UPF")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if s.fetcher == nil {
		return "", errors.Wrapf(ErrUnsupportedState, "no UPF file for %s in %s", symbol, dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "dataset: create UPF dir")
	}
	return s.fetcher.FetchUPF(ctx, symbol, z, dir)
}

// symbolFromFilename recovers the element symbol from a dataset file
// name, e.g. "fe7.0.alog" -> "Fe", "O.UPF" -> "O". Returns false when
// the name does not look like a dataset file.
func symbolFromFilename(name string) (string, bool) {
	base := filepath.Base(name)
	switch {
	case strings.HasSuffix(base, ".UPF") || strings.HasSuffix(strings.ToLower(base), ".upf"):
		sym := strings.TrimSuffix(strings.TrimSuffix(base, ".UPF"), ".upf")
		return canonicalSymbol(sym)
	case strings.HasSuffix(strings.ToLower(base), ".alog"):
		stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
		letters := stem
		for i, r := range stem {
			if r < 'a' || r > 'z' {
				letters = stem[:i]
				break
			}
		}
		return canonicalSymbol(letters)
	}
	return "", false
}

func canonicalSymbol(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	want := strings.ToLower(s)
	for _, sym := range elementSymbols {
		if strings.ToLower(sym) == want {
			return sym, true
		}
	}
	return "", false
}
