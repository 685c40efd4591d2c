package mongo

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/logistics-id/mongorepo/common"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ID is the default MongoDB document ID field name.
const ID = "_id"

var errNilEntity = errors.New("entity is nil")

// Document is satisfied by *T when T implements common.Entity[K] with pointer receivers.
type Document[T any, K common.ID] interface {
	*T
	common.Entity[K]
}

// Repository is a typed CRUD surface over one collection. Each method is a
// single round trip; nothing is cached between calls.
type Repository[T any, K common.ID, D Document[T, K]] struct {
	collection   *mongo.Collection
	client       *mongo.Client
	name         string
	searchFields []string
	logger       *zap.Logger
}

var _ common.BaseRepositoryInterface[common.Base, string] = (*Repository[common.Base, string, *common.Base])(nil)

// NewRepository resolves the collection name for T, parses connString and
// connects. It fails before connecting when the collection name is empty or
// the connection string is malformed.
func NewRepository[T any, K common.ID, D Document[T, K]](ctx context.Context, connString string, opts ...Option) (*Repository[T, K, D], error) {
	s := newSettings(opts...)

	name, err := ResolveCollectionName[T](s.collection)
	if err == nil {
		err = ValidateEntity[T, K, D]()
	}
	if err != nil {
		s.logger.Error("MGO/REPO INVALID", zap.Error(err))
		return nil, err
	}

	d, err := ParseDescriptor(connString, s.provider)
	if err != nil {
		s.logger.Error("MGO/CONN INVALID", zap.String("collection", name), zap.Error(err))
		return nil, err
	}

	client, db, err := connect(ctx, d, s)
	if err != nil {
		return nil, err
	}

	r := newRepository[T, K, D](db.Collection(name), s)
	r.client = client

	return r, nil
}

// ValidateEntity checks that T stores its identifier as the top-level _id
// field. It catches an embedded common.Base missing the `bson:",inline"` tag,
// which would nest the id and let the driver generate a different _id.
func ValidateEntity[T any, K common.ID, D Document[T, K]]() error {
	var v T
	D(&v).SetID(common.NewID[K]())

	raw, err := bson.Marshal(&v)
	if err != nil {
		return fmt.Errorf("%w: encode entity %s: %w", common.ErrInvalidConfig, reflect.TypeOf((*T)(nil)).Elem(), err)
	}
	if _, err := bson.Raw(raw).LookupErr(ID); err != nil {
		return fmt.Errorf("%w: entity %s does not store its id as %s; embed the base struct with `bson:\",inline\"`",
			common.ErrInvalidConfig, reflect.TypeOf((*T)(nil)).Elem(), ID)
	}
	return nil
}

// NewRepositoryFromConfig builds a repository from a loaded Config.
func NewRepositoryFromConfig[T any, K common.ID, D Document[T, K]](ctx context.Context, c *Config, opts ...Option) (*Repository[T, K, D], error) {
	base, err := c.Options()
	if err != nil {
		return nil, err
	}
	return NewRepository[T, K, D](ctx, c.Datasource, append(base, opts...)...)
}

// NewRepositoryFromCollection wraps an already resolved collection. The
// repository does not own the client and Close leaves it connected.
func NewRepositoryFromCollection[T any, K common.ID, D Document[T, K]](coll *mongo.Collection, opts ...Option) *Repository[T, K, D] {
	return newRepository[T, K, D](coll, newSettings(opts...))
}

func newRepository[T any, K common.ID, D Document[T, K]](coll *mongo.Collection, s *settings) *Repository[T, K, D] {
	return &Repository[T, K, D]{
		collection:   coll,
		name:         coll.Name(),
		searchFields: s.searchFields,
		logger: s.logger.With(
			zap.String("component", "ds.mongodb"),
			zap.String("collection", coll.Name()),
		),
	}
}

func (r *Repository[T, K, D]) Collection() *mongo.Collection {
	return r.collection
}

func (r *Repository[T, K, D]) CollectionName() string {
	return r.name
}

// Add inserts entity, generating its id first when unset.
func (r *Repository[T, K, D]) Add(ctx context.Context, entity *T) (*T, error) {
	if entity == nil {
		return nil, errNilEntity
	}

	r.ensureID(entity)
	if _, err := r.collection.InsertOne(ctx, entity); err != nil {
		return nil, fmt.Errorf("insert into %s: %w", r.name, err)
	}
	return entity, nil
}

// AddMany inserts entities in order, generating ids for those missing one.
func (r *Repository[T, K, D]) AddMany(ctx context.Context, entities []*T) error {
	if len(entities) == 0 {
		return nil
	}

	for _, e := range entities {
		if e == nil {
			return errNilEntity
		}
	}

	docs := make([]any, 0, len(entities))
	for _, e := range entities {
		r.ensureID(e)
		docs = append(docs, e)
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert many into %s: %w", r.name, err)
	}
	return nil
}

// Update replaces the stored document with the same id. It returns an error
// matching common.ErrNotFound when no document has that id.
func (r *Repository[T, K, D]) Update(ctx context.Context, entity *T) error {
	if entity == nil {
		return errNilEntity
	}

	id := D(entity).GetID()
	if common.IsZeroID(id) {
		return r.notFound(id)
	}

	res, err := r.collection.ReplaceOne(ctx, bson.M{ID: id}, entity)
	if err != nil {
		return fmt.Errorf("replace in %s: %w", r.name, err)
	}
	if res.MatchedCount == 0 {
		return r.notFound(id)
	}
	return nil
}

// UpdateMany replaces each entity in turn and stops at the first failure.
func (r *Repository[T, K, D]) UpdateMany(ctx context.Context, entities []*T) error {
	for _, e := range entities {
		if err := r.Update(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// UpdateFields sets only the named bson fields of entity, or all of them when
// none are given.
func (r *Repository[T, K, D]) UpdateFields(ctx context.Context, entity *T, fields ...string) error {
	if entity == nil {
		return errNilEntity
	}

	id := D(entity).GetID()
	set, err := StructFilter(entity, fields...)
	if err != nil {
		return fmt.Errorf("encode %s update: %w", r.name, err)
	}
	if len(set) == 0 {
		return fmt.Errorf("update %s: no matching fields in %v", r.name, fields)
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{ID: id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update in %s: %w", r.name, err)
	}
	if res.MatchedCount == 0 {
		return r.notFound(id)
	}
	return nil
}

// Delete removes the document with id. Deleting an absent id is not an error.
func (r *Repository[T, K, D]) Delete(ctx context.Context, id K) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{ID: id}); err != nil {
		return fmt.Errorf("delete from %s: %w", r.name, err)
	}
	return nil
}

func (r *Repository[T, K, D]) DeleteEntity(ctx context.Context, entity *T) error {
	if entity == nil {
		return errNilEntity
	}
	return r.Delete(ctx, D(entity).GetID())
}

// DeleteAll removes every document in the collection.
func (r *Repository[T, K, D]) DeleteAll(ctx context.Context) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("delete all from %s: %w", r.name, err)
	}
	return nil
}

// GetByID returns the document with id. A missing document is reported
// through ok, never through err.
func (r *Repository[T, K, D]) GetByID(ctx context.Context, id K) (entity *T, ok bool, err error) {
	var result T
	err = r.collection.FindOne(ctx, bson.M{ID: id}).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find in %s: %w", r.name, err)
	}
	return &result, true, nil
}

func (r *Repository[T, K, D]) Exists(ctx context.Context, id K) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{ID: id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count in %s: %w", r.name, err)
	}
	return n > 0, nil
}

// Count returns the number of documents matching filter; nil matches all.
func (r *Repository[T, K, D]) Count(ctx context.Context, filter any) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	n, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count in %s: %w", r.name, err)
	}
	return n, nil
}

// FindAll returns one page of documents matching filter and the total match count.
func (r *Repository[T, K, D]) FindAll(ctx context.Context, opts *common.QueryOption, filter bson.M) ([]*T, int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	if search := opts.GetSearch(); search != "" && len(r.searchFields) > 0 {
		filter = bson.M{"$and": bson.A{filter, FilterSearch(search, r.searchFields...)}}
	}

	cursor, err := r.collection.Find(ctx, filter,
		options.Find().
			SetLimit(opts.GetLimit()).
			SetSkip(opts.GetOffset()).
			SetSort(RequestSort(opts.GetOrders())),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("find in %s: %w", r.name, err)
	}
	defer cursor.Close(ctx)

	results := []*T{}
	for cursor.Next(ctx) {
		elem := new(T)
		if err := cursor.Decode(elem); err != nil {
			return nil, 0, fmt.Errorf("decode %s: %w", r.name, err)
		}
		results = append(results, elem)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate %s: %w", r.name, err)
	}

	total, err := r.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

// Close disconnects the client when the repository created it.
func (r *Repository[T, K, D]) Close(ctx context.Context) error {
	if r.client == nil {
		return nil
	}

	if err := r.client.Disconnect(ctx); err != nil {
		r.logger.Error("MGO/CONN CLOSE FAILED", zap.Error(err))
		return err
	}
	r.logger.Info("MGO/CONN CLOSED")
	return nil
}

func (r *Repository[T, K, D]) ensureID(entity *T) {
	doc := D(entity)
	if common.IsZeroID(doc.GetID()) {
		doc.SetID(common.NewID[K]())
	}
}

func (r *Repository[T, K, D]) notFound(id K) error {
	return &common.NotFoundError{Collection: r.name, ID: common.IDString(id)}
}
