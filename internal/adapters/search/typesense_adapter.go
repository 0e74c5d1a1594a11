package search

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/kafelab/coffee-lab-backend/internal/domain/entities"
	"github.com/kafelab/coffee-lab-backend/internal/domain/repositories"
	tsclient "github.com/kafelab/coffee-lab-backend/internal/infrastructure/clients/typesense"
)

const collectionName = tsclient.CoffeesCollection

// TypesenseAdapter implements free-text coffee search using Typesense.
// It is a secondary index over the catalog; Postgres stays the source
// of truth and the matcher never reads from here.
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements CoffeeSearchRepository
var _ repositories.CoffeeSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil
	}

	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "origin_name", Type: "string"},
			{Name: "region", Type: "string"},
			{Name: "variety", Type: "string"},
			{Name: "process", Type: "string", Facet: pointer.True()},
			{Name: "flavor_notes", Type: "string[]"},
			{Name: "is_active", Type: "bool"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index indexes a coffee bean
func (a *TypesenseAdapter) Index(ctx context.Context, coffee *entities.CoffeeBean) error {
	document := map[string]interface{}{
		"id":           coffee.ID,
		"name":         coffee.Name,
		"origin_name":  coffee.OriginName,
		"region":       coffee.Region,
		"variety":      coffee.Variety,
		"process":      string(coffee.Process),
		"flavor_notes": coffee.FlavorNotes,
		"is_active":    coffee.IsActive,
		"created_at":   coffee.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index coffee: %w", err)
	}

	return nil
}

// Delete removes a coffee bean from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(collectionName).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete coffee from index: %w", err)
	}
	return nil
}

// Search returns coffee ids ranked by the index
func (a *TypesenseAdapter) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 20
	}

	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String(query),
		QueryBy:  pointer.String("name,origin_name,region,variety,flavor_notes"),
		FilterBy: pointer.String("is_active:true"),
		PerPage:  pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search coffees: %w", err)
	}

	var ids []string
	if result.Hits != nil {
		for _, hit := range *result.Hits {
			if hit.Document == nil {
				continue
			}
			if id, ok := (*hit.Document)["id"].(string); ok {
				ids = append(ids, id)
			}
		}
	}

	return ids, nil
}
