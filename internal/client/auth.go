package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/erazemk/unifind/internal/model"
)

// Login exchanges credentials for a token and user record.
func (c *Client) Login(ctx context.Context, in model.LoginInput) (*model.LoginResult, error) {
	var res model.LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", in, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, &Error{Kind: KindDecode, Op: "POST /api/auth/login", Err: errors.New("response has no token")}
	}
	return &res, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, in model.RegisterInput) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", "", in, nil)
}
