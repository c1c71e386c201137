package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/personal-blog-api/internal/models"
)

// articleDocument is the stored shape of an article in MongoDB
type articleDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Subtitle      string             `bson:"subtitle"`
	Excerpt       string             `bson:"excerpt"`
	Content       string             `bson:"content"`
	CoverImage    *string            `bson:"cover_image"`
	Category      string             `bson:"category"`
	Author        string             `bson:"author"`
	Tags          []string           `bson:"tags"`
	Published     bool               `bson:"published"`
	PublishedDate *time.Time         `bson:"published_date"`
	ReadingTime   int                `bson:"reading_time"`
	Views         int                `bson:"views"`
	CreatedDate   time.Time          `bson:"created_date"`
	UpdatedDate   time.Time          `bson:"updated_date"`
}

func toDocument(a *models.Article) articleDocument {
	tags := []string(a.Tags)
	if tags == nil {
		tags = []string{}
	}
	return articleDocument{
		Title:         a.Title,
		Subtitle:      a.Subtitle,
		Excerpt:       a.Excerpt,
		Content:       a.Content,
		CoverImage:    a.CoverImage,
		Category:      string(a.Category),
		Author:        a.Author,
		Tags:          tags,
		Published:     a.Published,
		PublishedDate: a.PublishedDate,
		ReadingTime:   a.ReadingTime,
		Views:         a.Views,
		CreatedDate:   a.CreatedDate,
		UpdatedDate:   a.UpdatedDate,
	}
}

func (d *articleDocument) toModel() *models.Article {
	tags := models.Tags(d.Tags)
	if tags == nil {
		tags = models.Tags{}
	}
	a := &models.Article{
		ID:            d.ID.Hex(),
		Title:         d.Title,
		Subtitle:      d.Subtitle,
		Excerpt:       d.Excerpt,
		Content:       d.Content,
		CoverImage:    d.CoverImage,
		Category:      models.Category(d.Category),
		Author:        d.Author,
		Tags:          tags,
		Published:     d.Published,
		PublishedDate: d.PublishedDate,
		ReadingTime:   d.ReadingTime,
		Views:         d.Views,
		CreatedDate:   d.CreatedDate.UTC(),
		UpdatedDate:   d.UpdatedDate.UTC(),
	}
	if a.PublishedDate != nil {
		t := a.PublishedDate.UTC()
		a.PublishedDate = &t
	}
	return a
}

// mongoArticleRepo is the concrete implementation of ArticleRepository for MongoDB
type mongoArticleRepo struct {
	coll *mongo.Collection
}

// NewMongoArticleRepo creates a new MongoDB article repository
func NewMongoArticleRepo(coll *mongo.Collection) ArticleRepository {
	return &mongoArticleRepo{coll: coll}
}

// Create inserts a new article and assigns its ID
func (r *mongoArticleRepo) Create(ctx context.Context, article *models.Article) error {
	doc := toDocument(article)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}

	article.ID = doc.ID.Hex()
	article.Tags = models.Tags(doc.Tags)
	return nil
}

// GetByID retrieves an article by ID
func (r *mongoArticleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc articleDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

// Update replaces every mutable field of an existing article.
// The view counter is left to IncrementViews.
func (r *mongoArticleRepo) Update(ctx context.Context, article *models.Article) error {
	oid, err := primitive.ObjectIDFromHex(article.ID)
	if err != nil {
		return ErrNotFound
	}

	doc := toDocument(article)
	set := bson.M{
		"title":          doc.Title,
		"subtitle":       doc.Subtitle,
		"excerpt":        doc.Excerpt,
		"content":        doc.Content,
		"cover_image":    doc.CoverImage,
		"category":       doc.Category,
		"author":         doc.Author,
		"tags":           doc.Tags,
		"published":      doc.Published,
		"published_date": doc.PublishedDate,
		"reading_time":   doc.ReadingTime,
		"updated_date":   doc.UpdatedDate,
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete hard-removes an article
func (r *mongoArticleRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementViews adds one to the view counter atomically
func (r *mongoArticleRepo) IncrementViews(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns one page of matching articles and the total match count
func (r *mongoArticleRepo) List(ctx context.Context, q ArticleQuery) ([]*models.Article, int, error) {
	filter := buildFilter(q)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	// null published_date sorts lowest, so descending puts drafts last
	opts := options.Find().SetSort(bson.D{
		{Key: "published_date", Value: -1},
		{Key: "created_date", Value: -1},
	})
	if q.Limit > 0 {
		opts.SetSkip(int64(q.Offset)).SetLimit(int64(q.Limit))
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	articles := []*models.Article{}
	for cursor.Next(ctx) {
		var doc articleDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, err
		}
		articles = append(articles, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}

	return articles, int(total), nil
}

// buildFilter translates query parameters into a MongoDB filter document
func buildFilter(q ArticleQuery) bson.M {
	filter := bson.M{}

	if q.Published != nil {
		filter["published"] = *q.Published
	}

	if q.HasCategory() {
		filter["category"] = q.Category
	}

	if q.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"subtitle": pattern},
			bson.M{"tags": pattern},
		}
	}

	return filter
}

// Stats counts articles by publish state and category
func (r *mongoArticleRepo) Stats(ctx context.Context) (*models.ArticleStats, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	published, err := r.coll.CountDocuments(ctx, bson.M{"published": true})
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	categories := []models.CategoryCount{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}

	return &models.ArticleStats{
		Total:         int(total),
		Published:     int(published),
		Drafts:        int(total - published),
		CategoryStats: categories,
	}, nil
}

// StreamAll streams all articles in creation order
func (r *mongoArticleRepo) StreamAll(ctx context.Context, callback func(*models.Article) error) error {
	opts := options.Find().SetSort(bson.D{{Key: "created_date", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc articleDocument
		if err := cursor.Decode(&doc); err != nil {
			return err
		}
		if err := callback(doc.toModel()); err != nil {
			return err
		}
	}

	return cursor.Err()
}
