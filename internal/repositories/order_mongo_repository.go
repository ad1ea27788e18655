package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"pos_order_backend/internal/models"
	"pos_order_backend/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// OrdersCollection is shared with existing order documents.
	OrdersCollection = "orders"

	invoiceIndex   = "invoice_number_unique"
	createdAtIndex = "created_at_desc"
)

// orderDoc is the stored shape: the order fields inline plus the driver id.
type orderDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	models.Order `bson:",inline"`
}

// toOrder unwraps the order. Documents written without items get an empty list.
func (d *orderDoc) toOrder() *models.Order {
	order := d.Order
	if order.Items == nil {
		order.Items = []models.LineItem{}
	}
	return &order
}

type mongoOrderRepository struct {
	collection *mongo.Collection
}

// NewMongoOrderRepository creates the MongoDB backed OrderRepository and
// makes sure the unique invoice index exists.
func NewMongoOrderRepository(ctx context.Context, db *mongo.Database) (OrderRepository, error) {
	repo := &mongoOrderRepository{collection: db.Collection(OrdersCollection)}
	if err := repo.createIndexes(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *mongoOrderRepository) createIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "invoiceNumber", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(invoiceIndex),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName(createdAtIndex),
		},
	}
	names, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("%w: creating indexes: %v", ErrDatabaseError, err)
	}
	utils.LogDebug("MongoDB indexes ensured", map[string]interface{}{"collection": OrdersCollection, "indexes": names})
	return nil
}

func (r *mongoOrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	// BSON datetimes carry milliseconds; truncate so the caller sees what is stored.
	order.CreatedAt = order.CreatedAt.Truncate(time.Millisecond)
	if order.Items == nil {
		order.Items = []models.LineItem{}
	}

	_, err := r.collection.InsertOne(ctx, orderDoc{Order: *order})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: invoice number %q already exists", ErrDuplicateKey, order.InvoiceNumber)
		}
		return fmt.Errorf("%w: inserting order: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *mongoOrderRepository) GetOrderByInvoice(ctx context.Context, invoiceNumber string) (*models.Order, error) {
	var doc orderDoc
	err := r.collection.FindOne(ctx, bson.M{"invoiceNumber": invoiceNumber}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding order %s: %v", ErrDatabaseError, invoiceNumber, err)
	}
	return doc.toOrder(), nil
}

func (r *mongoOrderRepository) GetOrders(ctx context.Context, filters models.OrderFilters) ([]models.Order, error) {
	return r.find(ctx, windowFilter(filters))
}

func (r *mongoOrderRepository) SearchOrders(ctx context.Context, query string) ([]models.Order, error) {
	return r.find(ctx, searchFilter(query))
}

func (r *mongoOrderRepository) UpdateOrderStatus(ctx context.Context, invoiceNumber string, status models.OrderStatus) (*models.Order, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc orderDoc
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"invoiceNumber": invoiceNumber},
		bson.M{"$set": bson.M{"status": string(status)}},
		opts,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: updating status for order %s: %v", ErrDatabaseError, invoiceNumber, err)
	}
	return doc.toOrder(), nil
}

func (r *mongoOrderRepository) DeleteOrder(ctx context.Context, invoiceNumber string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"invoiceNumber": invoiceNumber})
	if err != nil {
		return fmt.Errorf("%w: deleting order %s: %v", ErrDatabaseError, invoiceNumber, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoOrderRepository) GetOrderStats(ctx context.Context, since time.Time) (*models.OrderStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalOrders", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "totalRevenue", Value: bson.D{{Key: "$sum", Value: "$total"}}},
			{Key: "todayOrders", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{bson.D{{Key: "$gte", Value: bson.A{"$createdAt", since}}}, 1, 0}},
			}}}},
			{Key: "todayRevenue", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{bson.D{{Key: "$gte", Value: bson.A{"$createdAt", since}}}, "$total", 0}},
			}}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%w: aggregating order stats: %v", ErrDatabaseError, err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		TotalOrders  int64   `bson:"totalOrders"`
		TodayOrders  int64   `bson:"todayOrders"`
		TotalRevenue float64 `bson:"totalRevenue"`
		TodayRevenue float64 `bson:"todayRevenue"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("%w: decoding order stats: %v", ErrDatabaseError, err)
	}

	stats := &models.OrderStats{}
	if len(rows) > 0 {
		stats.TotalOrders = rows[0].TotalOrders
		stats.TodayOrders = rows[0].TodayOrders
		stats.TotalRevenue = rows[0].TotalRevenue
		stats.TodayRevenue = rows[0].TodayRevenue
	}
	return stats, nil
}

func (r *mongoOrderRepository) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: finding orders: %v", ErrDatabaseError, err)
	}
	defer cursor.Close(ctx)

	var docs []orderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decoding orders: %v", ErrDatabaseError, err)
	}

	orders := make([]models.Order, 0, len(docs))
	for i := range docs {
		orders = append(orders, *docs[i].toOrder())
	}
	return orders, nil
}

// windowFilter translates an OrderFilters window into a createdAt range filter.
func windowFilter(filters models.OrderFilters) bson.M {
	createdAt := bson.M{}
	if filters.From != nil {
		createdAt["$gte"] = *filters.From
	}
	if filters.To != nil {
		createdAt["$lte"] = *filters.To
	}
	if len(createdAt) == 0 {
		return bson.M{}
	}
	return bson.M{"createdAt": createdAt}
}

var searchFields = []string{"invoiceNumber", "customerName", "customerPhone", "roomNumber"}

// searchFilter builds the OR of case-insensitive regex matches. The query is
// quoted so it is matched literally.
func searchFilter(query string) bson.M {
	pattern := regexp.QuoteMeta(query)
	clauses := make(bson.A, 0, len(searchFields))
	for _, field := range searchFields {
		clauses = append(clauses, bson.M{field: primitive.Regex{Pattern: pattern, Options: "i"}})
	}
	return bson.M{"$or": clauses}
}
