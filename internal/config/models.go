package config

import "time"

// Default scan preferences, matching the discovery package defaults.
const (
	DefaultBroadcast   = "255.255.255.255"
	DefaultPort        = 3610
	DefaultScanTimeout = 5
)

// Registry represents the entire user configuration file.
// This stores scan preferences and user-defined metadata for nodes.
type Registry struct {
	Version     int              `yaml:"version"`
	Nodes       map[string]*Node `yaml:"nodes,omitempty"` // Keyed by node IP address
	Preferences *Preferences     `yaml:"preferences,omitempty"`
}

// Node represents user-defined metadata for a single ECHONET Lite
// node. This is keyed by the node's IP address in the Registry; the
// protocol itself carries no stable identifier a human would want to
// type.
type Node struct {
	Nickname string    `yaml:"nickname,omitempty"`  // User-friendly name (e.g., "Living room AC")
	LastSeen time.Time `yaml:"last_seen,omitempty"` // Last time a scan got a reply from this node
}

// Preferences represents application-wide scan preferences. Flags on
// the command line override these; these override the built-in
// defaults.
type Preferences struct {
	Broadcast   string `yaml:"broadcast"`    // Broadcast address for discovery requests
	Port        int    `yaml:"port"`         // UDP port (ECHONET Lite well-known port is 3610)
	ScanTimeout int    `yaml:"scan_timeout"` // Collection window in seconds
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Nodes:   make(map[string]*Node),
		Preferences: &Preferences{
			Broadcast:   DefaultBroadcast,
			Port:        DefaultPort,
			ScanTimeout: DefaultScanTimeout,
		},
	}
}

// EnsureNode returns the metadata entry for ip, creating an empty one
// if it does not exist yet.
func (r *Registry) EnsureNode(ip string) *Node {
	if r.Nodes == nil {
		r.Nodes = make(map[string]*Node)
	}
	node, ok := r.Nodes[ip]
	if !ok {
		node = &Node{}
		r.Nodes[ip] = node
	}
	return node
}

// GetNode returns the metadata entry for ip, or nil if none exists.
func (r *Registry) GetNode(ip string) *Node {
	if r.Nodes == nil {
		return nil
	}
	return r.Nodes[ip]
}

// SetNodeNickname sets the user-friendly name for a node.
func (r *Registry) SetNodeNickname(ip, nickname string) {
	r.EnsureNode(ip).Nickname = nickname
}

// UpdateNodeLastSeen records that a scan received a reply from ip.
func (r *Registry) UpdateNodeLastSeen(ip string) {
	r.EnsureNode(ip).LastSeen = time.Now()
}
