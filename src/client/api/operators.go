package api

import "context"

const operatorPath = "/api/operators/me"

// OperatorUpdate holds the profile fields to change. Empty fields are left as they are.
type OperatorUpdate struct {
	Name     string `json:"name,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Location string `json:"location,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
}

// IsEmpty reports whether the update changes nothing
func (u OperatorUpdate) IsEmpty() bool {
	return u == OperatorUpdate{}
}

// GetOperator returns the operator owning the API key
func (c *Client) GetOperator(ctx context.Context) (*Operator, error) {
	var resp struct {
		Data Operator `json:"data"`
	}
	if err := c.get(ctx, operatorPath, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// UpdateOperator changes the operator profile
func (c *Client) UpdateOperator(ctx context.Context, updates OperatorUpdate) (*Operator, error) {
	var resp struct {
		Data Operator `json:"data"`
	}
	if err := c.put(ctx, operatorPath, updates, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
