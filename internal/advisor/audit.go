package advisor

import (
	"strings"

	"github.com/sadopc/cockpit/internal/dataset"
)

// SearchAuditLog filters the audit trail by the users and systems mentioned
// in a free-text query, e.g. "Show actions by user 'davis_c' on LIMS-PROD".
// Terms of the same kind are OR-ed; users and systems are AND-ed. A query
// naming no known user or system falls back to a substring match on any
// field. An empty query returns the full log.
func SearchAuditLog(log []dataset.AuditEntry, query string) []dataset.AuditEntry {
	query = strings.TrimSpace(query)
	if query == "" {
		return append([]dataset.AuditEntry(nil), log...)
	}

	users := map[string]bool{}
	systems := map[string]bool{}
	for _, e := range log {
		users[strings.ToLower(e.User)] = false
		systems[strings.ToLower(e.System)] = false
	}
	for _, tok := range tokenize(query) {
		if _, ok := users[tok]; ok {
			users[tok] = true
		}
		if _, ok := systems[tok]; ok {
			systems[tok] = true
		}
	}
	wantUser := anyTrue(users)
	wantSystem := anyTrue(systems)

	var out []dataset.AuditEntry
	if !wantUser && !wantSystem {
		needle := strings.ToLower(query)
		for _, e := range log {
			hay := strings.ToLower(strings.Join([]string{e.User, e.System, e.Action, e.Details}, " "))
			if strings.Contains(hay, needle) {
				out = append(out, e)
			}
		}
		return out
	}

	for _, e := range log {
		if wantUser && !users[strings.ToLower(e.User)] {
			continue
		}
		if wantSystem && !systems[strings.ToLower(e.System)] {
			continue
		}
		out = append(out, e)
	}
	return out
}

func tokenize(q string) []string {
	return strings.FieldsFunc(strings.ToLower(q), func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			return false
		}
		return true
	})
}

func anyTrue(m map[string]bool) bool {
	for _, v := range m {
		if v {
			return true
		}
	}
	return false
}
