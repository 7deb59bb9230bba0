// Package stagehand provides public API types and functions for the stagehand
// deployment sync tool.
package stagehand

import (
	"github.com/stagehand-sh/stagehand/src/internal/config"
	"github.com/stagehand-sh/stagehand/src/internal/deploy"
)

// Config and related types are re-exported for public API access.
type (
	Config = config.Config
	// Plan re-exports deploy.Plan for public API consumers.
	Plan = deploy.Plan
	// Rule re-exports deploy.Rule for public API consumers.
	Rule = deploy.Rule
	// Change re-exports deploy.Change for public API consumers.
	Change = deploy.Change
	// Direction re-exports deploy.Direction.
	Direction = deploy.Direction
	// OperationKind re-exports deploy.OperationKind.
	OperationKind = deploy.OperationKind
)

// Re-export constants
const (
	DirectionPullContent  = deploy.DirectionPullContent
	DirectionPushCodebase = deploy.DirectionPushCodebase
	DirectionPushContent  = deploy.DirectionPushContent
	DirectionPreviewAll   = deploy.DirectionPreviewAll

	KindContent  = deploy.KindContent
	KindCodebase = deploy.KindCodebase
)

// LoadConfig loads and validates a configuration file from the specified path.
func LoadConfig(configPath string) (Config, error) {
	loader := config.NewLoader()

	cfg, err := loader.Load(configPath)
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ContentRules returns the filter rules used for content transfers.
func ContentRules() []Rule {
	return deploy.ContentRules()
}

// CodebaseRules returns the whitelist rules used for codebase transfers.
func CodebaseRules() []Rule {
	return deploy.CodebaseRules()
}

// ParseItemized parses rsync --itemize-changes output into change records.
func ParseItemized(output string) []Change {
	return deploy.ParseItemized(output)
}
