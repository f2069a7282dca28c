package session

import (
	"sort"
	"strings"
	"sync"

	"github.com/npillmayer/kerntool/core"
	"github.com/npillmayer/kerntool/core/kerning"
	"github.com/npillmayer/kerntool/core/kerning/pairlist"
	"github.com/npillmayer/kerntool/core/kerning/query"
	"github.com/npillmayer/kerntool/core/kerning/transform"
	"github.com/npillmayer/schuko/tracing"
)

// Session is the working state for one opened font.
type Session struct {
	sync.Mutex
	ID        string
	font      *kerning.Font
	pairs     *pairlist.List
	rules     []transform.Rule
	lastQuery string
}

// Font returns the font of session s, reflecting all rules applied so far.
func (s *Session) Font() *kerning.Font {
	s.Lock()
	defer s.Unlock()
	return s.font
}

// SetPairList makes l the pair list of s.
func (s *Session) SetPairList(l *pairlist.List) {
	s.Lock()
	defer s.Unlock()
	s.pairs = l
}

// PairList returns the pair list of s, if any.
func (s *Session) PairList() *pairlist.List {
	s.Lock()
	defer s.Unlock()
	return s.pairs
}

// SetRules makes rules the transformation rules of s.
func (s *Session) SetRules(rules []transform.Rule) {
	s.Lock()
	defer s.Unlock()
	s.rules = append([]transform.Rule(nil), rules...)
}

// Rules returns the transformation rules of s.
func (s *Session) Rules() []transform.Rule {
	s.Lock()
	defer s.Unlock()
	return append([]transform.Rule(nil), s.rules...)
}

// LastQuery returns the last expression given to Query.
func (s *Session) LastQuery() string {
	s.Lock()
	defer s.Unlock()
	return s.lastQuery
}

// Query selects the kerning pairs of the session's font matching a kerning
// pair expression. The expression is remembered even if it is invalid.
func (s *Session) Query(expr string) ([]kerning.Pair, error) {
	s.Lock()
	defer s.Unlock()
	s.lastQuery = expr
	return query.FilterPairs(expr, s.font.Pairs(), s.font)
}

// Apply executes the transformation rules of s on the session's font. On
// success the font is replaced by one carrying the transformed kerning.
func (s *Session) Apply() (*kerning.Font, error) {
	s.Lock()
	defer s.Unlock()
	if len(s.rules) == 0 {
		return s.font, core.Error(core.EMISSING, "session %s has no transformation rules", s.ID)
	}
	kern, err := transform.Apply(s.rules, s.font)
	if err != nil {
		return s.font, err
	}
	s.font = s.font.WithKerning(kern)
	return s.font, nil
}

// Registry is a type for holding sessions for opened fonts.
type Registry struct {
	sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

// Open creates a session for font f. The session will be stored using the
// normalized name as a key. If this key is already associated with a
// session, Open fails.
func (r *Registry) Open(name string, f *kerning.Font) (*Session, error) {
	if f == nil {
		return nil, core.Error(core.EINVALID, "cannot open session for null font")
	}
	id := NormalizeID(name)
	if id == "" {
		return nil, core.Error(core.EINVALID, "cannot open session without a name")
	}
	r.Lock()
	defer r.Unlock()
	if _, ok := r.sessions[id]; ok {
		return nil, core.Error(core.EINVALID, "session %s is already open", id)
	}
	s := &Session{ID: id, font: f}
	r.sessions[id] = s
	tracer().Debugf("registry opened session %s for font %q", id, f.Name)
	return s, nil
}

// Lookup returns the session for name.
func (r *Registry) Lookup(name string) (*Session, bool) {
	r.Lock()
	defer r.Unlock()
	s, ok := r.sessions[NormalizeID(name)]
	return s, ok
}

// Close removes the session for name. It returns false if there was none.
func (r *Registry) Close(name string) bool {
	id := NormalizeID(name)
	r.Lock()
	defer r.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	tracer().Debugf("registry closed session %s", id)
	return true
}

// IDs returns the keys of all open sessions, sorted.
func (r *Registry) IDs() []string {
	r.Lock()
	defer r.Unlock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LogSessions is a helper function to dump the list of open sessions
// to the trace-file (log-level Info).
func (r *Registry) LogSessions() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- open sessions ---")
	for _, id := range r.IDs() {
		s, _ := r.Lookup(id)
		tracer().Infof("session [%s] = %v", id, s.Font().Name)
	}
	tracer().Infof("---------------------")
	tracer().SetTraceLevel(level)
}

// NormalizeID derives a session key from a font name or font file name.
func NormalizeID(name string) string {
	name = strings.TrimSpace(name)
	if slash := strings.LastIndexAny(name, `/\`); slash >= 0 {
		name = name[slash+1:]
	}
	name = strings.ReplaceAll(name, " ", "_")
	if dot := strings.LastIndex(name, "."); dot > 0 {
		name = name[:dot]
	}
	return strings.ToLower(name)
}
