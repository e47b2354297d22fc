package client

import "context"

type registerShopRequest struct {
	Domain      string `json:"domain"`
	AccessToken string `json:"access_token"`
	Scopes      string `json:"scopes"`
}

// RegisterShop registers this client's shop domain with the backend and
// returns the backend's record. Registration is idempotent server-side:
// re-registering a known domain returns the existing record.
func (c *Client) RegisterShop(ctx context.Context) (*Shop, error) {
	return doRequest[Shop](ctx, c, c.rest, epRegisterShop, requestParams{
		body: registerShopRequest{
			Domain:      c.shopDomain,
			AccessToken: c.accessToken,
			Scopes:      c.options.registrationScopes,
		},
	})
}

// GetShopByDomain looks up a shop record by its storefront domain.
func (c *Client) GetShopByDomain(ctx context.Context, domain string) (*Shop, error) {
	return doRequest[Shop](ctx, c, c.rest, epGetShop, requestParams{
		pathParams: map[string]string{"domain": domain},
	})
}

// ResolveShopID turns the configured shop domain into the backend-issued
// shop identifier, registering the shop on first contact. Any lookup
// failure is treated as "not yet known" and answered with a registration
// attempt; if that also fails the error is absorbed and ok is false.
// Callers must treat a false result as "tenant not yet usable" and render
// without shop-scoped data rather than fail the page.
//
// Resolution is idempotent and cheap enough to repeat; identifiers are not
// cached here.
func (c *Client) ResolveShopID(ctx context.Context) (id string, ok bool) {
	shop, err := c.GetShopByDomain(ctx, c.shopDomain)
	if err == nil {
		return shop.ID, true
	}

	c.options.requestLogger.Debugf("shop lookup for %s failed, attempting registration: %v",
		c.shopDomain, err)

	shop, err = c.RegisterShop(ctx)
	if err != nil {
		c.options.requestLogger.Warnf("shop %s is not resolvable: registration failed: %v",
			c.shopDomain, err)
		return "", false
	}

	return shop.ID, true
}
