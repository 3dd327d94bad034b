package domain

import (
	"fmt"
	"strings"
)

// StatusesJQL builds the query selecting a project's issues in any of
// the given workflow statuses, newest first.
func StatusesJQL(project string, statuses []string) string {
	quoted := make([]string, 0, len(statuses))
	for _, s := range statuses {
		quoted = append(quoted, fmt.Sprintf("%q", s))
	}
	return fmt.Sprintf("project = %q AND status in (%s) ORDER BY created DESC",
		project, strings.Join(quoted, ", "))
}

// KeysJQL builds the query selecting specific issues of a project by
// key or free-text mention, newest first.
func KeysJQL(project string, keys []string) string {
	clauses := make([]string, 0, len(keys))
	for _, key := range keys {
		clauses = append(clauses, fmt.Sprintf("(text ~ %q OR issuekey = %s)", key, key))
	}
	return fmt.Sprintf("project = %q AND (%s) ORDER BY created DESC",
		project, strings.Join(clauses, " OR "))
}

// OpenIssuesJQL builds the query selecting a project's issues that are
// not yet in a terminal status category, newest first.
func OpenIssuesJQL(project string) string {
	return fmt.Sprintf("project = %q AND statusCategory != Done ORDER BY created DESC", project)
}
