package orchestrator

import (
	"strings"

	"gradmatch-backend/internal/catalog"
	"gradmatch-backend/internal/matching"
)

// SessionCache memoizes name resolution and the fallback score list for one
// matching session. It is created per run, passed in explicitly, and
// discarded when the session ends; nothing here outlives a request.
type SessionCache struct {
	universities map[string]resolvedUniversity
	programs     map[string]resolvedProgram

	fallback     []matching.MatchResult
	fallbackDone bool
}

type resolvedUniversity struct {
	university catalog.University
	ok         bool
}

type resolvedProgram struct {
	program catalog.Program
	ok      bool
}

// NewSessionCache constructs an empty cache.
func NewSessionCache() *SessionCache {
	return &SessionCache{
		universities: make(map[string]resolvedUniversity),
		programs:     make(map[string]resolvedProgram),
	}
}

func (c *SessionCache) resolveUniversity(snap catalog.Snapshot, name string) (catalog.University, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if hit, ok := c.universities[key]; ok {
		return hit.university, hit.ok
	}
	u, ok := snap.ResolveUniversity(name)
	c.universities[key] = resolvedUniversity{university: u, ok: ok}
	return u, ok
}

func (c *SessionCache) resolveProgram(snap catalog.Snapshot, universityID, name string) (catalog.Program, bool) {
	key := universityID + "|" + strings.ToLower(strings.TrimSpace(name))
	if hit, ok := c.programs[key]; ok {
		return hit.program, hit.ok
	}
	p, ok := snap.ResolveProgram(universityID, name)
	c.programs[key] = resolvedProgram{program: p, ok: ok}
	return p, ok
}

func (c *SessionCache) putFallback(results []matching.MatchResult) {
	c.fallback = results
	c.fallbackDone = true
}

func (c *SessionCache) getFallback() ([]matching.MatchResult, bool) {
	return c.fallback, c.fallbackDone
}
