package mediawiki

import (
	"context"
	"fmt"

	"github.com/google/go-querystring/query"
)

// Login performs the two-step token + action=login dance.  Bot passwords
// (Special:BotPasswords) are the supported way to do this for scripts.
func (api *API) Login(ctx context.Context, username string, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("mediawiki: login needs both username and password")
	}

	ep, err := api.loginTokenEndpoint()
	if err != nil {
		return fmt.Errorf("mediawiki: couldn't get tokens endpoint: %w", err)
	}

	var tokens TokensResponse
	if err := api.getJSON(ctx, ep, &tokens); err != nil {
		return fmt.Errorf("mediawiki: couldn't fetch login token: %w", err)
	}
	if tokens.Error != nil {
		return tokens.Error
	}
	if tokens.Query.Tokens.LoginToken == "" {
		return fmt.Errorf("mediawiki: server returned an empty login token")
	}

	form, err := query.Values(LoginForm{
		BaseQuery: newBaseQuery("login"),
		Name:      username,
		Password:  password,
		Token:     tokens.Query.Tokens.LoginToken,
	})
	if err != nil {
		return fmt.Errorf("mediawiki: couldn't encode login form: %w", err)
	}

	var resp LoginResponse
	if err := api.postFormJSON(ctx, form, &resp); err != nil {
		return fmt.Errorf("mediawiki: login request failed: %w", err)
	}
	if resp.Error != nil {
		return resp.Error
	}
	if resp.Login.Result != "Success" {
		return fmt.Errorf("mediawiki: login %s: %s", resp.Login.Result, resp.Login.Reason)
	}

	api.Username = resp.Login.Username
	if api.Username == "" {
		api.Username = username
	}
	return nil
}
