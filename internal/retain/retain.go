// Package retain keeps the best few summaries per company. This is a
// top-K retention policy, not a TTL cache: entries are evicted only by
// rank after each admission.
package retain

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// DefaultCap is the number of summaries kept per company after compaction.
const DefaultCap = 3

// Record is one retained summary: its formatted output artifact, the
// scorer's confidence, and the effective date used for tie-breaks.
type Record struct {
	Formatted     string
	Confidence    float64
	EffectiveDate time.Time

	filename string
}

// Store holds at most Cap records per company. All mutation goes through
// the single mutex so compaction always sees a consistent snapshot.
type Store struct {
	mu        sync.Mutex
	cap       int
	dir       string // empty disables the on-disk mirror
	byCompany map[string][]Record
}

// Option configures a Store.
type Option func(*Store)

// WithCap overrides the per-company retention cap.
func WithCap(k int) Option {
	return func(s *Store) {
		if k > 0 {
			s.cap = k
		}
	}
}

// WithDir mirrors retained records to <dir>/<company>/<file>.md, physically
// deleting evicted files.
func WithDir(dir string) Option {
	return func(s *Store) { s.dir = dir }
}

// NewStore creates an empty retention store with the default cap.
func NewStore(opts ...Option) *Store {
	s := &Store{
		cap:       DefaultCap,
		byCompany: make(map[string][]Record),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cap returns the per-company retention cap.
func (s *Store) Cap() int { return s.cap }

// Admit appends a record for the company and compacts the collection: sort
// descending by (confidence, effective date), keep the top Cap, discard the
// rest. A zero EffectiveDate falls back to the admission time.
func (s *Store) Admit(company string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.EffectiveDate.IsZero() {
		rec.EffectiveDate = time.Now().UTC()
	}

	if s.dir != "" {
		name, err := s.writeFile(company, rec)
		if err != nil {
			return err
		}
		rec.filename = name
	}

	records := append(s.byCompany[company], rec)
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Confidence != records[j].Confidence {
			return records[i].Confidence > records[j].Confidence
		}
		return records[i].EffectiveDate.After(records[j].EffectiveDate)
	})

	if len(records) > s.cap {
		for _, dropped := range records[s.cap:] {
			s.removeFile(company, dropped)
		}
		records = records[:s.cap]
	}
	s.byCompany[company] = records
	return nil
}

// Retained returns a copy of the company's current records, best first.
func (s *Store) Retained(company string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.byCompany[company]
	out := make([]Record, len(records))
	copy(out, records)
	return out
}

// Companies returns the companies with at least one retained record.
func (s *Store) Companies() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.byCompany))
	for c := range s.byCompany {
		if len(s.byCompany[c]) > 0 {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// Reset discards all retained records for the company, including any
// on-disk mirror. Each run starts from an empty store per company.
func (s *Store) Reset(company string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.byCompany[company] {
		s.removeFile(company, rec)
	}
	delete(s.byCompany, company)

	if s.dir != "" {
		// Drop leftovers from previous processes too.
		if err := os.RemoveAll(filepath.Join(s.dir, companyDir(company))); err != nil {
			zap.L().Warn("retain: reset company dir", zap.String("company", company), zap.Error(err))
		}
	}
}

func (s *Store) writeFile(company string, rec Record) (string, error) {
	dir := filepath.Join(s.dir, companyDir(company))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrapf(err, "retain: mkdir %s", dir)
	}

	// The uuid suffix keeps records with identical effective dates from
	// sharing a file, which would make eviction delete a survivor's copy.
	name := rec.EffectiveDate.UTC().Format("20060102T150405") + "-" + uuid.New().String() + ".md"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(rec.Formatted), 0o644); err != nil {
		return "", eris.Wrapf(err, "retain: write %s", name)
	}
	return name, nil
}

func (s *Store) removeFile(company string, rec Record) {
	if s.dir == "" || rec.filename == "" {
		return
	}
	path := filepath.Join(s.dir, companyDir(company), rec.filename)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		zap.L().Warn("retain: remove evicted record", zap.String("path", path), zap.Error(err))
	}
}

func companyDir(company string) string {
	return strings.ToLower(strings.ReplaceAll(company, " ", "_"))
}
