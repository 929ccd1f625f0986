package njalla

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	MethodListServers      = "list-servers"
	MethodListServerImages = "list-server-images"
	MethodListServerTypes  = "list-server-types"
	MethodAddServer        = "add-server"
	MethodStopServer       = "stop-server"
	MethodStartServer      = "start-server"
	MethodRestartServer    = "restart-server"
	MethodResetServer      = "reset-server"
	MethodRemoveServer     = "remove-server"
)

// Server is a virtual server on the account.
type Server struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	ID          string   `json:"id"`
	Status      string   `json:"status"`
	OS          string   `json:"os"`
	Expiry      string   `json:"expiry"`
	AutoRenew   bool     `json:"autorenew"`
	SSHKey      string   `json:"ssh_key"`
	IPs         []string `json:"ips"`
	ReverseName string   `json:"reverse_name"`
	OSState     string   `json:"os_state"`
}

func (s *Server) UnmarshalJSON(data []byte) error {
	err := requireMembers(data, "name", "type", "id", "status", "os", "expiry",
		"autorenew", "ssh_key", "ips", "reverse_name", "os_state")
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	type plain Server
	return json.Unmarshal(data, (*plain)(s))
}

// NewServer is the payload of add-server.
type NewServer struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	OS     string `json:"os"`
	SSHKey string `json:"ssh_key"`
	Months int    `json:"months"`
}

type serversResponse struct {
	Servers []Server `json:"servers"`
}

func (r *serversResponse) UnmarshalJSON(data []byte) error {
	if err := requireMembers(data, "servers"); err != nil {
		return err
	}
	type plain serversResponse
	return json.Unmarshal(data, (*plain)(r))
}

type imagesResponse struct {
	Images []string `json:"images"`
}

func (r *imagesResponse) UnmarshalJSON(data []byte) error {
	if err := requireMembers(data, "images"); err != nil {
		return err
	}
	type plain imagesResponse
	return json.Unmarshal(data, (*plain)(r))
}

type typesResponse struct {
	Types []string `json:"types"`
}

func (r *typesResponse) UnmarshalJSON(data []byte) error {
	if err := requireMembers(data, "types"); err != nil {
		return err
	}
	type plain typesResponse
	return json.Unmarshal(data, (*plain)(r))
}

// ListServers lists all servers on the account.
func (c *Client) ListServers(ctx context.Context) ([]Server, error) {
	resp, err := call[serversResponse](ctx, c, MethodListServers, params{})
	if err != nil {
		return nil, err
	}
	return resp.Servers, nil
}

// ListServerImages lists the OS images available for new servers.
func (c *Client) ListServerImages(ctx context.Context) ([]string, error) {
	resp, err := call[imagesResponse](ctx, c, MethodListServerImages, params{})
	if err != nil {
		return nil, err
	}
	return resp.Images, nil
}

// ListServerTypes lists the available server instance types.
func (c *Client) ListServerTypes(ctx context.Context) ([]string, error) {
	resp, err := call[typesResponse](ctx, c, MethodListServerTypes, params{})
	if err != nil {
		return nil, err
	}
	return resp.Types, nil
}

// AddServer creates a server.
func (c *Client) AddServer(ctx context.Context, server NewServer) (*Server, error) {
	p, err := toParams(server)
	if err != nil {
		return nil, &DecodeError{Method: MethodAddServer, Err: fmt.Errorf("failed to encode params: %w", err)}
	}
	return c.serverCall(ctx, MethodAddServer, p)
}

// StopServer stops a running server. Data is preserved.
func (c *Client) StopServer(ctx context.Context, id string) (*Server, error) {
	return c.serverCall(ctx, MethodStopServer, params{"id": id})
}

// StartServer starts a stopped server.
func (c *Client) StartServer(ctx context.Context, id string) (*Server, error) {
	return c.serverCall(ctx, MethodStartServer, params{"id": id})
}

// RestartServer restarts a server.
func (c *Client) RestartServer(ctx context.Context, id string) (*Server, error) {
	return c.serverCall(ctx, MethodRestartServer, params{"id": id})
}

// ResetServer reinstalls a server with new settings. All data on the server
// is destroyed.
func (c *Client) ResetServer(ctx context.Context, id, os, sshKey, serverType string) (*Server, error) {
	return c.serverCall(ctx, MethodResetServer, params{
		"id":      id,
		"os":      os,
		"ssh_key": sshKey,
		"type":    serverType,
	})
}

// RemoveServer removes a server. All data on the server is destroyed.
func (c *Client) RemoveServer(ctx context.Context, id string) (*Server, error) {
	return c.serverCall(ctx, MethodRemoveServer, params{"id": id})
}

func (c *Client) serverCall(ctx context.Context, method string, p params) (*Server, error) {
	resp, err := call[Server](ctx, c, method, p)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
