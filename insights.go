package client

import (
	"context"
	"strconv"
)

type insightAck struct {
	Status string `json:"status"`
}

// ListInsights fetches one page of generated insights for a shop. Unset
// filter fields are left out of the query string entirely so the backend
// applies its own defaults.
func (c *Client) ListInsights(ctx context.Context, shopID string, filter InsightsFilter) (*InsightsPage, error) {
	query := map[string]string{"shop_id": shopID}

	if filter.Page > 0 {
		query["page"] = strconv.Itoa(filter.Page)
	}
	if filter.PageSize > 0 {
		query["page_size"] = strconv.Itoa(filter.PageSize)
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Severity != "" {
		query["severity"] = filter.Severity
	}
	if filter.IncludeDismissed {
		query["include_dismissed"] = "true"
	}

	return doRequest[InsightsPage](ctx, c, c.rest, epListInsights, requestParams{
		queryParams: query,
	})
}

// DismissInsight marks an insight as dismissed so it stops surfacing in
// default listings.
func (c *Client) DismissInsight(ctx context.Context, insightID string) error {
	_, err := doRequest[insightAck](ctx, c, c.rest, epDismissInsight, requestParams{
		pathParams: map[string]string{"id": insightID},
	})
	return err
}

// MarkInsightActioned records that the merchant acted on an insight.
func (c *Client) MarkInsightActioned(ctx context.Context, insightID string) error {
	_, err := doRequest[insightAck](ctx, c, c.rest, epActionInsight, requestParams{
		pathParams: map[string]string{"id": insightID},
	})
	return err
}
