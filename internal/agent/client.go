package agent

import (
	"errors"
	"slices"

	"github.com/spf13/afero"
)

// ServerName is the key the server is registered under in client configs.
const ServerName = "nodejs-snippets"

// Scope selects the workspace or the user's home directory.
type Scope string

// Scopes.
const (
	ScopeProject Scope = "project"
	ScopeGlobal  Scope = "global"
)

// ErrScopeUnsupported is returned when a client has no config file for a scope.
var ErrScopeUnsupported = errors.New("scope not supported by this client")

// Env locates client config files and the command that launches the server.
type Env struct {
	Fs      afero.Fs
	Root    string   // workspace folder, for project scope
	Home    string   // user home directory, for global scope
	Command string   // executable the client should launch
	Args    []string // arguments, typically ["serve"]
}

// Client is an MCP client that can launch the server over stdio.
type Client interface {
	// Name returns the short identifier used on the command line.
	Name() string

	// DisplayName returns the human-readable name.
	DisplayName() string

	// ConfigPath returns the config file for scope.
	ConfigPath(env Env, scope Scope) (string, error)

	// Check reports whether the server is registered at scope.
	Check(env Env, scope Scope) (bool, error)

	// Install registers the server at scope, replacing an older registration.
	Install(env Env, scope Scope) (string, error)

	// Remove deletes the registration at scope. Missing files are not an error.
	Remove(env Env, scope Scope) (string, error)
}

var registry = map[string]Client{}

// Register adds a client to the registry.
func Register(c Client) {
	registry[c.Name()] = c
}

// Get returns a registered client by name, or nil.
func Get(name string) Client {
	return registry[name]
}

// All returns the registered clients sorted by name.
func All() []Client {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)

	clients := make([]Client, 0, len(names))
	for _, name := range names {
		clients = append(clients, registry[name])
	}
	return clients
}

// Names returns the registered client names, sorted.
func Names() []string {
	clients := All()
	names := make([]string, len(clients))
	for i, c := range clients {
		names[i] = c.Name()
	}
	return names
}
