package node

import (
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
)

// Node identifies the running process.
type Node struct {
	ID         string
	Hostname   string
	Version    string
	CommitHash string
}

// Set at build time with -ldflags "-X patient-panel/internal/infra/node.Version=...".
var Version = "development"
var CommitHash = "unknown"

var (
	current     *Node
	currentOnce sync.Once
)

func GetNodeInfo() *Node {
	currentOnce.Do(func() {
		hostname, err := os.Hostname()
		if err != nil || hostname == "" {
			hostname = "localhost"
		}

		current = &Node{
			ID:         uuid.NewString(),
			Hostname:   hostname,
			Version:    Version,
			CommitHash: CommitHash,
		}
	})

	return current
}

// LogAttrs are attached to every log line of the process.
func (n *Node) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("version", n.Version),
		slog.String("node_id", n.ID),
	}
}
