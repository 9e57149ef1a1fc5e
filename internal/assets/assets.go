// Package assets manages a vendor's capacity units: validation, grouping by
// category, capacity totals and batch updates across a category.
package assets

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/five82/inline/internal/api"
	"github.com/five82/inline/internal/validation"
)

// Backend is the part of the API client asset management needs.
type Backend interface {
	Assets(ctx context.Context, vendorID int64) ([]api.Asset, error)
	Asset(ctx context.Context, assetID int64) (*api.Asset, error)
	CreateAsset(ctx context.Context, req api.AssetCreateRequest) (*api.Asset, error)
	UpdateAsset(ctx context.Context, assetID int64, req api.AssetUpdateRequest) (*api.Asset, error)
	DeleteAsset(ctx context.Context, assetID int64) error
	CapacitySummary(ctx context.Context, vendorID int64) (*api.CapacitySummary, error)
}

var _ Backend = (*api.Client)(nil)

// Service wraps Backend with local validation.
type Service struct {
	backend  Backend
	vendorID int64
}

// NewService returns a Service for vendorID.
func NewService(b Backend, vendorID int64) *Service {
	return &Service{backend: b, vendorID: vendorID}
}

// List returns the vendor's assets.
func (s *Service) List(ctx context.Context) ([]api.Asset, error) {
	return s.backend.Assets(ctx, s.vendorID)
}

// ErrForeignAsset means the asset exists but belongs to another vendor.
var ErrForeignAsset = errors.New("asset belongs to another vendor")

// Get fetches one of the vendor's assets.
func (s *Service) Get(ctx context.Context, assetID int64) (*api.Asset, error) {
	asset, err := s.backend.Asset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if asset.VendorID != 0 && asset.VendorID != s.vendorID {
		return nil, ErrForeignAsset
	}
	return asset, nil
}

// Create validates req and creates the asset. Status defaults to available.
func (s *Service) Create(ctx context.Context, req api.AssetCreateRequest) (*api.Asset, error) {
	req.VendorID = s.vendorID
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	req.Type = strings.TrimSpace(req.Type)
	if req.Status == "" {
		req.Status = api.AssetAvailable
	}
	if verr := validation.Struct(req); verr != nil {
		return nil, verr
	}
	return s.backend.CreateAsset(ctx, req)
}

// Update validates and applies a partial update.
func (s *Service) Update(ctx context.Context, assetID int64, req api.AssetUpdateRequest) (*api.Asset, error) {
	if req.Category != nil && strings.TrimSpace(*req.Category) == "" {
		return nil, validation.New("category", "Category is required")
	}
	if verr := validation.Struct(req); verr != nil {
		return nil, verr
	}
	return s.backend.UpdateAsset(ctx, assetID, req)
}

// Delete removes an asset.
func (s *Service) Delete(ctx context.Context, assetID int64) error {
	return s.backend.DeleteAsset(ctx, assetID)
}

// CapacitySummary asks the backend for capacity totals.
func (s *Service) CapacitySummary(ctx context.Context) (*api.CapacitySummary, error) {
	return s.backend.CapacitySummary(ctx, s.vendorID)
}

// ApplyToCategory copies source's capacity, type and status onto every other
// asset in the same category, one update per asset. It stops at the first
// failure and returns how many were updated before it; earlier updates are
// not rolled back.
func (s *Service) ApplyToCategory(ctx context.Context, source api.Asset, all []api.Asset) (int, error) {
	category := strings.TrimSpace(source.Category)
	if category == "" {
		return 0, validation.New("category", "Category is required")
	}
	capacity := source.Capacity
	typ := source.Type
	status := source.Status
	update := api.AssetUpdateRequest{Capacity: &capacity, Type: &typ, Status: &status}
	if verr := validation.Struct(update); verr != nil {
		return 0, verr
	}

	updated := 0
	for _, a := range all {
		if a.ID == source.ID || !strings.EqualFold(strings.TrimSpace(a.Category), category) {
			continue
		}
		if _, err := s.backend.UpdateAsset(ctx, a.ID, update); err != nil {
			return updated, fmt.Errorf("update asset %d: %w", a.ID, err)
		}
		updated++
	}
	return updated, nil
}

// Group is the assets sharing one category.
type Group struct {
	Category string
	Assets   []api.Asset
	Capacity int
}

// GroupByCategory buckets assets by category in alphabetical order. Assets
// within a group keep their input order.
func GroupByCategory(all []api.Asset) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, a := range all {
		category := strings.TrimSpace(a.Category)
		if category == "" {
			category = "Uncategorized"
		}
		key := strings.ToLower(category)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Category: category})
		}
		groups[i].Assets = append(groups[i].Assets, a)
		groups[i].Capacity += a.Capacity
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return strings.ToLower(groups[i].Category) < strings.ToLower(groups[j].Category)
	})
	return groups
}

// Summarize totals capacity by status from a local asset list. Reserved
// capacity counts toward the total only.
func Summarize(all []api.Asset) api.CapacitySummary {
	var sum api.CapacitySummary
	for _, a := range all {
		sum.TotalCapacity += a.Capacity
		switch a.Status {
		case api.AssetAvailable:
			sum.AvailableCapacity += a.Capacity
		case api.AssetOccupied:
			sum.OccupiedCapacity += a.Capacity
		case api.AssetMaintenance:
			sum.MaintenanceCapacity += a.Capacity
		}
	}
	return sum
}
