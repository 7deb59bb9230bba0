package deploy

import (
	"strings"
)

// ChangeAction classifies what a dry-run line says would happen to a path.
type ChangeAction int

// Change actions
const (
	ActionCreate ChangeAction = iota
	ActionUpdate
	ActionDelete
)

func (ca ChangeAction) String() string {
	switch ca {
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Change is one itemized entry from an rsync dry-run. AttrOnly marks updates
// that touch only attributes (times, permissions, ownership); a real transfer
// still applies them, so they count as pending work even though the preview
// folds them into a summary line.
type Change struct {
	Action   ChangeAction `json:"action"`
	Path     string       `json:"path"`
	IsDir    bool         `json:"isDir"`
	AttrOnly bool         `json:"attrOnly"`
}

// ParseItemized extracts the per-file changes from rsync --itemize-changes
// output. Lines that are not itemized entries (file list headers, statistics,
// entries with no change at all) are skipped.
func ParseItemized(output string) []Change {
	var changes []Change

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		if rest, ok := strings.CutPrefix(line, "*deleting"); ok {
			path := strings.TrimSpace(rest)
			if path == "" {
				continue
			}

			changes = append(changes, Change{
				Action: ActionDelete,
				Path:   path,
				IsDir:  strings.HasSuffix(path, "/"),
			})

			continue
		}

		idx := strings.IndexByte(line, ' ')
		if idx < 2 || idx >= len(line)-1 {
			continue
		}

		code := line[:idx]
		path := strings.TrimSpace(line[idx+1:])

		if !isItemizeCode(code) {
			continue
		}

		attrOnly := false
		if code[0] == '.' && !strings.Contains(code[2:], "+") {
			// An all-dot field means nothing changed; rsync only lists it
			// under extra verbosity.
			if strings.Trim(code[2:], ".") == "" {
				continue
			}

			attrOnly = true
		}

		action := ActionUpdate
		if strings.Count(code[2:], "+") == len(code)-2 {
			action = ActionCreate
		}

		changes = append(changes, Change{
			Action:   action,
			Path:     path,
			IsDir:    code[1] == 'd',
			AttrOnly: attrOnly,
		})
	}

	return changes
}

// isItemizeCode reports whether s looks like an rsync change summary field,
// e.g. ">f+++++++++" or "cd+++++++++".
func isItemizeCode(s string) bool {
	if len(s) < 9 {
		return false
	}

	switch s[0] {
	case '<', '>', 'c', 'h', '.':
	default:
		return false
	}

	switch s[1] {
	case 'f', 'd', 'L', 'D', 'S':
	default:
		return false
	}

	for _, r := range s[2:] {
		if !strings.ContainsRune(".+cstTpoguaxnbfACMEN?", r) {
			return false
		}
	}

	return true
}
