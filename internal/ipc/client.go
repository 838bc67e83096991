package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Organize asks the daemon to run one organize pass.
func (c *Client) Organize(req OrganizeRequest) (*OrganizeResponse, error) {
	var resp OrganizeResponse
	if err := c.client.Call("Mediasort.Organize", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Mediasort.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RunList returns recorded runs, newest first.
func (c *Client) RunList(limit int) (*RunListResponse, error) {
	var resp RunListResponse
	if err := c.client.Call("Mediasort.RunList", RunListRequest{Limit: limit}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RunDescribe returns details for a single run.
func (c *Client) RunDescribe(id string) (*RunDescribeResponse, error) {
	var resp RunDescribeResponse
	if err := c.client.Call("Mediasort.RunDescribe", RunDescribeRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RunClear removes all recorded run history.
func (c *Client) RunClear() (*RunClearResponse, error) {
	var resp RunClearResponse
	if err := c.client.Call("Mediasort.RunClear", RunClearRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DatabaseHealth retrieves detailed database diagnostics.
func (c *Client) DatabaseHealth() (*DatabaseHealthResponse, error) {
	var resp DatabaseHealthResponse
	if err := c.client.Call("Mediasort.DatabaseHealth", DatabaseHealthRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
