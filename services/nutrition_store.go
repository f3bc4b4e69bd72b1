package services

import (
	"context"
	"errors"
	"time"

	"backend/models"
	"backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNutritionNotFound = errors.New("nutrition data not found")

// NutritionStore owns reads and writes of nutrition records. Ownership is
// enforced twice: records live in the owner's collection, and every filter
// still matches on userId.
type NutritionStore struct {
	router *CollectionRouter
}

func NewNutritionStore(router *CollectionRouter) *NutritionStore {
	return &NutritionStore{router: router}
}

func (s *NutritionStore) Create(ctx context.Context, userUUID string, data *models.NutritionData) (*models.NutritionData, error) {
	coll := s.router.Resolve(userUUID)

	now := time.Now().UTC()
	data.UserID = userUUID
	data.CreatedAt = now
	data.UpdatedAt = now

	res, err := coll.InsertOne(ctx, data)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		data.ID = oid
	}

	utils.Logger.Infow("saved nutrition data", "userId", userUUID, "id", data.ID.Hex())
	return data, nil
}

type NutritionPage struct {
	Items      []models.NutritionData `json:"items"`
	Total      int64                  `json:"total"`
	Page       int64                  `json:"page"`
	Limit      int64                  `json:"limit"`
	TotalPages int64                  `json:"totalPages"`
}

// List returns one page of the user's records, newest first, optionally
// filtered by a case-insensitive food name search.
func (s *NutritionStore) List(ctx context.Context, userUUID string, page, limit int64, search string) (*NutritionPage, error) {
	coll := s.router.Resolve(userUUID)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	filter := bson.M{"userId": userUUID}
	if search != "" {
		filter["foodName"] = bson.M{"$regex": search, "$options": "i"}
	}

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []models.NutritionData{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	return &NutritionPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *NutritionStore) GetByID(ctx context.Context, userUUID, id string) (*models.NutritionData, error) {
	coll := s.router.Resolve(userUUID)

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNutritionNotFound
	}

	var data models.NutritionData
	err = coll.FindOne(ctx, bson.M{"_id": oid, "userId": userUUID}).Decode(&data)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNutritionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// Update applies the given fields to the record and returns the updated
// document.
func (s *NutritionStore) Update(ctx context.Context, userUUID, id string, fields map[string]any) (*models.NutritionData, error) {
	coll := s.router.Resolve(userUUID)

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNutritionNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var data models.NutritionData
	err = coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "userId": userUUID},
		bson.M{"$set": set},
		opts,
	).Decode(&data)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNutritionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *NutritionStore) Delete(ctx context.Context, userUUID, id string) error {
	coll := s.router.Resolve(userUUID)

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNutritionNotFound
	}

	err = coll.FindOneAndDelete(ctx, bson.M{"_id": oid, "userId": userUUID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNutritionNotFound
	}
	return err
}
