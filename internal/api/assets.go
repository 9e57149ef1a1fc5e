package api

import (
	"context"
	"net/http"
	"strconv"
)

// Assets lists a vendor's capacity units.
func (c *Client) Assets(ctx context.Context, vendorID int64) ([]Asset, error) {
	var payload []Asset
	if err := c.do(ctx, http.MethodGet, vendorPath("/assets/vendor", vendorID), authRequired, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Asset fetches a single asset.
func (c *Client) Asset(ctx context.Context, assetID int64) (*Asset, error) {
	var payload Asset
	if err := c.do(ctx, http.MethodGet, assetPath(assetID), authRequired, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreateAsset adds a capacity unit.
func (c *Client) CreateAsset(ctx context.Context, req AssetCreateRequest) (*Asset, error) {
	var payload Asset
	if err := c.do(ctx, http.MethodPost, "/assets", authRequired, req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateAsset applies a partial update.
func (c *Client) UpdateAsset(ctx context.Context, assetID int64, req AssetUpdateRequest) (*Asset, error) {
	var payload Asset
	if err := c.do(ctx, http.MethodPut, assetPath(assetID), authRequired, req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteAsset removes an asset.
func (c *Client) DeleteAsset(ctx context.Context, assetID int64) error {
	return c.do(ctx, http.MethodDelete, assetPath(assetID), authRequired, nil, nil)
}

// CapacitySummary returns capacity totals by status.
func (c *Client) CapacitySummary(ctx context.Context, vendorID int64) (*CapacitySummary, error) {
	var payload CapacitySummary
	path := vendorPath("/assets/vendor", vendorID) + "/capacity-summary"
	if err := c.do(ctx, http.MethodGet, path, authRequired, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func assetPath(assetID int64) string {
	return "/assets/" + strconv.FormatInt(assetID, 10)
}
