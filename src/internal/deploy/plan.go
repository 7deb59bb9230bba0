package deploy

import (
	"path"
	"strings"

	"github.com/stagehand-sh/stagehand/src/internal/config"
)

// Direction identifies one of the synchronization operations offered by the
// menu. Chosen once per run and never persisted.
type Direction int

// Synchronization directions
const (
	DirectionPullContent Direction = iota
	DirectionPushCodebase
	DirectionPushContent
	DirectionPreviewAll
)

func (d Direction) String() string {
	switch d {
	case DirectionPullContent:
		return "pull content"
	case DirectionPushCodebase:
		return "push codebase"
	case DirectionPushContent:
		return "push content"
	case DirectionPreviewAll:
		return "preview all"
	default:
		return "unknown"
	}
}

// Plan is the resolved transfer tuple handed to both the dry-run and the real
// transfer. The same Plan value must be used for both so the preview reflects
// exactly what the real run will do.
type Plan struct {
	Direction Direction     `json:"direction"`
	Kind      OperationKind `json:"kind"`
	Source    string        `json:"source"`
	Dest      string        `json:"dest"`
	Delete    bool          `json:"delete"`
	Rules     []Rule        `json:"rules"`
}

// PullContentPlan resolves the remote-content-to-local-content transfer.
func PullContentPlan(cfg config.Config) Plan {
	return Plan{
		Direction: DirectionPullContent,
		Kind:      KindContent,
		Source:    remoteSpec(cfg.Host, path.Join(cfg.RemotePath, cfg.ContentDir)),
		Dest:      localSpec(cfg.ContentDir),
		Rules:     ContentRules(),
	}
}

// PushCodebasePlan resolves the local-tree-to-remote-path transfer.
func PushCodebasePlan(cfg config.Config) Plan {
	return Plan{
		Direction: DirectionPushCodebase,
		Kind:      KindCodebase,
		Source:    "./",
		Dest:      remoteSpec(cfg.Host, cfg.RemotePath),
		Rules:     CodebaseRules(),
	}
}

// PushContentPlan resolves the local-content-to-remote-content transfer. The
// delete flag makes the remote an exact mirror of the local content tree.
func PushContentPlan(cfg config.Config, deleteExtraneous bool) Plan {
	return Plan{
		Direction: DirectionPushContent,
		Kind:      KindContent,
		Source:    localSpec(cfg.ContentDir),
		Dest:      remoteSpec(cfg.Host, path.Join(cfg.RemotePath, cfg.ContentDir)),
		Delete:    deleteExtraneous,
		Rules:     ContentRules(),
	}
}

// remoteSpec builds an rsync remote location with a trailing slash so the
// directory contents, not the directory itself, are transferred.
func remoteSpec(host, dir string) string {
	return host + ":" + strings.TrimSuffix(dir, "/") + "/"
}

func localSpec(dir string) string {
	return strings.TrimSuffix(dir, "/") + "/"
}
