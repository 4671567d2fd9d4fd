package analytics

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/Ars145/ZarubaProfile-sub000/internal/constants"
	"github.com/Ars145/ZarubaProfile-sub000/internal/stats"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoConfig struct {
	URI              string
	Database         string
	StatsCollection  string
	ConfigCollection string
}

// MongoSource reads SquadJS documents from a live MongoDB.
type MongoSource struct {
	client *mongo.Client
	stats  *mongo.Collection
	config *mongo.Collection
	logger zerolog.Logger
}

func NewMongoSource(ctx context.Context, cfg MongoConfig, logger zerolog.Logger) (*MongoSource, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.AnalyticsConnectTimeout)
	defer cancel()

	logger.Info().Str("database", cfg.Database).Msg("connecting to analytics store")

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(constants.AnalyticsMaxPoolSize))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to analytics store: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping analytics store: %w", err)
	}

	db := client.Database(cfg.Database)
	logger.Info().Msg("analytics store connection established")

	return &MongoSource{
		client: client,
		stats:  db.Collection(cfg.StatsCollection),
		config: db.Collection(cfg.ConfigCollection),
		logger: logger,
	}, nil
}

func (s *MongoSource) RawCounters(ctx context.Context, playerID string) (*stats.RawPlayerCounters, error) {
	var doc squadDocument
	err := s.stats.FindOne(ctx, bson.M{"_id": playerID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return doc.counters(), nil
}

func (s *MongoSource) TierConfig(ctx context.Context) (stats.TierConfig, error) {
	var doc rankConfigDocument
	err := s.config.FindOne(ctx, bson.M{"type": "score"}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return doc.tierConfig(), nil
}

func (s *MongoSource) Search(ctx context.Context, namePart string, limit int) ([]PlayerSummary, error) {
	filter := bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(namePart), Options: "i"}}
	return s.find(ctx, filter, options.Find().SetLimit(int64(limit)).SetProjection(summaryProjection))
}

func (s *MongoSource) Top(ctx context.Context, sortBy SortField, limit int) ([]PlayerSummary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: mongoSortKey(sortBy), Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(summaryProjection)
	return s.find(ctx, bson.M{}, opts)
}

func (s *MongoSource) find(ctx context.Context, filter any, opts *options.FindOptions) ([]PlayerSummary, error) {
	cur, err := s.stats.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	var docs []squadDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode players: %w", err)
	}

	out := make([]PlayerSummary, len(docs))
	for i, d := range docs {
		out[i] = d.summary()
	}
	return out, nil
}

func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var summaryProjection = bson.M{
	"_id":     1,
	"name":    1,
	"kills":   1,
	"death":   1,
	"matches": 1,
}

func mongoSortKey(f SortField) string {
	switch f {
	case SortDeaths:
		return "death"
	case SortMatches:
		return "matches.matches"
	case SortWins:
		return "matches.won"
	default:
		return "kills"
	}
}
