package domain

import "context"

// PartsSearchClient issues a single inventory search and returns the raw
// response body of a successful call
type PartsSearchClient interface {
	SearchParts(ctx context.Context, query *PartsQuery) ([]byte, error)
}

// WorkspaceRepository persists design workspaces (serialized graphs)
type WorkspaceRepository interface {
	Save(ctx context.Context, path string, graph []byte) (string, error)
	Load(ctx context.Context, path string) ([]byte, error)
}

// ToolRunner relays the raw output of external tools used by the designer
type ToolRunner interface {
	RunThermalSimulation(ctx context.Context, graph []byte, profile string) (string, error)
	ExecuteGit(ctx context.Context, args []string) (string, error)
}
