// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

// ListOptions lists the server-side query options.
func (c *Client) ListOptions() (*Response, error) {
	return c.Request("/config/query", nil, nil)
}

// Options gets a set of server-side query options by name.
func (c *Client) Options(name string) (*Response, error) {
	if name == "" {
		return nil, ErrMissingArgument{What: "name"}
	}
	return c.requestTemplate("/config/query/{name}", map[string]interface{}{"name": name}, nil, nil)
}

// Extension would call a server-side resource extension.
func (c *Client) Extension(name string, params interface{}) (*Response, error) {
	return nil, ErrNotImplemented{Method: "Extension"}
}

// Eval would evaluate an ad-hoc server-side expression.
func (c *Client) Eval(code string, params interface{}) (*Response, error) {
	return nil, ErrNotImplemented{Method: "Eval"}
}

// Invoke would invoke a server-side module.
func (c *Client) Invoke(uri string, params interface{}) (*Response, error) {
	return nil, ErrNotImplemented{Method: "Invoke"}
}
