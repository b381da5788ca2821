// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

// Database returns a view of c with the same settings, which adds
// database=name to every request it sends.  The parameter is set
// after everything else, so a caller-supplied database parameter
// never wins.  Database views cannot be nested, and transactions
// cannot create them.
func (c *Client) Database(name string) (*Client, error) {
	if c.database != "" || c.tx != nil {
		return nil, ErrNotSupported{Method: "Database"}
	}
	if name == "" {
		return nil, ErrMissingArgument{What: "database name"}
	}
	db := c.derive()
	db.database = name
	return db, nil
}
