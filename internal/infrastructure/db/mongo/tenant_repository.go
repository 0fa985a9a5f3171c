package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lendstack/agency-system/internal/core/domain"
)

const collectionTenants = "tenants"

// TenantRepository implements ports.TenantRegistry using MongoDB.
type TenantRepository struct {
	col *mongo.Collection
}

func NewTenantRepository(db *mongo.Database) *TenantRepository {
	return &TenantRepository{col: db.Collection(collectionTenants)}
}

type mongoTenant struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Name               string             `bson:"name"`
	RegistrationNumber string             `bson:"registration_number,omitempty"`
	Address            string             `bson:"address,omitempty"`
	City               string             `bson:"city,omitempty"`
	Country            string             `bson:"country"`
	PhoneNumber        string             `bson:"phone_number,omitempty"`
	Email              string             `bson:"email,omitempty"`
	Website            string             `bson:"website,omitempty"`
	Metadata           bson.M             `bson:"metadata,omitempty"`
	CreatedAt          time.Time          `bson:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at"`
}

// Create inserts a tenant with defaults applied. Names are intentionally not
// deduplicated: distinct agencies may register under the same name.
func (r *TenantRepository) Create(ctx context.Context, name string) (*domain.Tenant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoTenant{
		Name:      name,
		Country:   domain.DefaultCountry,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert tenant: %w", err)
	}

	return &domain.Tenant{
		ID:        res.InsertedID.(primitive.ObjectID).Hex(),
		Name:      name,
		Country:   domain.DefaultCountry,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// FindByID retrieves a tenant by id.
func (r *TenantRepository) FindByID(ctx context.Context, id string) (*domain.Tenant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTenantNotFound
	}

	var mt mongoTenant
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, fmt.Errorf("find tenant: %w", err)
	}
	return mt.toDomain(), nil
}

// FindByIDs retrieves all tenants whose id is in ids. Missing ids are
// silently skipped.
func (r *TenantRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Tenant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find tenants: %w", err)
	}
	defer cur.Close(ctx)

	var tenants []*domain.Tenant
	for cur.Next(ctx) {
		var mt mongoTenant
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode tenant: %w", err)
		}
		tenants = append(tenants, mt.toDomain())
	}
	return tenants, cur.Err()
}

func (mt *mongoTenant) toDomain() *domain.Tenant {
	return &domain.Tenant{
		ID:                 mt.ID.Hex(),
		Name:               mt.Name,
		RegistrationNumber: mt.RegistrationNumber,
		Address:            mt.Address,
		City:               mt.City,
		Country:            mt.Country,
		PhoneNumber:        mt.PhoneNumber,
		Email:              mt.Email,
		Website:            mt.Website,
		Metadata:           mt.Metadata,
		CreatedAt:          mt.CreatedAt.UTC(),
		UpdatedAt:          mt.UpdatedAt.UTC(),
	}
}
