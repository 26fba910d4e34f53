package recommend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/errgroup"

	"github.com/HendryAvila/cadence/internal/catalog"
	"github.com/HendryAvila/cadence/internal/fuzzy"
)

var (
	// ErrNoSongs is returned when the recommended genre has no songs.
	ErrNoSongs = errors.New("no songs for genre")
	// ErrNoCatalog is returned by operations that need the song catalog
	// when the service was built without one.
	ErrNoCatalog = errors.New("song catalog unavailable")
)

// Catalog is the subset of the catalog store the service needs.
type Catalog interface {
	Songs(ctx context.Context, genre string) ([]catalog.Song, error)
	SaveRecommendation(ctx context.Context, r catalog.Record) error
	RecentRecommendations(ctx context.Context, limit int) ([]catalog.Record, error)
}

// Options tune a Service. Zero values pick the defaults.
type Options struct {
	// SampleSize is the number of songs per recommendation. Default 3.
	SampleSize int
	// CacheSize bounds the score cache. Zero disables it.
	CacheSize int
	// BatchWorkers bounds RecommendBatch concurrency. Default 4.
	BatchWorkers int
	// Rand drives song sampling. Nil seeds a fresh generator.
	Rand   *rand.Rand
	Logger *slog.Logger
}

// Service answers recommendation requests. It is safe for concurrent use.
type Service struct {
	model   *fuzzy.Model
	genres  *GenreMap
	catalog Catalog // nil when the catalog could not be opened
	cache   *lru.Cache
	sampler *sampler
	opts    Options
	logger  *slog.Logger
}

// NewService wires a model, genre map and optional catalog together.
func NewService(model *fuzzy.Model, genres *GenreMap, cat Catalog, opts Options) (*Service, error) {
	if model == nil || genres == nil {
		return nil, errors.New("recommend: model and genres are required")
	}
	if opts.SampleSize <= 0 {
		opts.SampleSize = 3
	}
	if opts.BatchWorkers <= 0 {
		opts.BatchWorkers = 4
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Service{
		model:   model,
		genres:  genres,
		catalog: cat,
		sampler: newSampler(opts.Rand),
		opts:    opts,
		logger:  logger,
	}
	if opts.CacheSize > 0 {
		c, err := lru.New(opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("recommend: score cache: %w", err)
		}
		s.cache = c
	}
	return s, nil
}

// Model returns the underlying inference model.
func (s *Service) Model() *fuzzy.Model { return s.model }

// Genres returns the score-to-genre mapping.
func (s *Service) Genres() *GenreMap { return s.genres }

// HasCatalog reports whether song and history operations are available.
func (s *Service) HasCatalog() bool { return s.catalog != nil }

// ─── Scoring ─────────────────────────────────────────────────────────────────

// Score validates the input and returns the crisp recommendation score.
func (s *Service) Score(in Input) (float64, error) {
	if err := in.Validate(s.model); err != nil {
		inferenceTotal.WithLabelValues("invalid").Inc()
		return 0, err
	}
	if s.cache != nil {
		if v, ok := s.cache.Get(in); ok {
			scoreCacheTotal.WithLabelValues("hit").Inc()
			return v.(float64), nil
		}
		scoreCacheTotal.WithLabelValues("miss").Inc()
	}

	start := time.Now()
	score, err := s.model.Infer(in.Vector())
	inferenceDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		inferenceTotal.WithLabelValues(resultLabel(err)).Inc()
		return 0, err
	}
	inferenceTotal.WithLabelValues("ok").Inc()

	if s.cache != nil {
		s.cache.Add(in, score)
	}
	return score, nil
}

// Categorize reports the dominant term of each input.
func (s *Service) Categorize(in Input) ([]fuzzy.Classification, error) {
	if err := in.Validate(s.model); err != nil {
		return nil, err
	}
	return s.model.Classify(in.Vector())
}

// Explanation breaks one inference down for display.
type Explanation struct {
	Input      Input                    `json:"input"`
	Score      float64                  `json:"score"`
	Genre      string                   `json:"genre"`
	Degrees    map[string]fuzzy.Degrees `json:"degrees"`
	Fired      []fuzzy.RuleStrength     `json:"fired"`
	TotalFired int                      `json:"total_fired"`
	Categories []fuzzy.Classification   `json:"categories"`
}

// Explain evaluates the input and returns up to top fired rules,
// strongest first. top <= 0 returns every fired rule.
func (s *Service) Explain(in Input, top int) (*Explanation, error) {
	if err := in.Validate(s.model); err != nil {
		return nil, err
	}
	res, err := s.model.Evaluate(in.Vector())
	if err != nil {
		return nil, err
	}
	cats, err := s.model.Classify(in.Vector())
	if err != nil {
		return nil, err
	}

	fired := res.Fired()
	exp := &Explanation{
		Input:      in,
		Score:      res.Score,
		Genre:      s.genres.Genre(res.Score),
		Degrees:    res.Degrees,
		TotalFired: len(fired),
		Categories: cats,
	}
	if top > 0 && top < len(fired) {
		fired = fired[:top]
	}
	exp.Fired = fired
	return exp, nil
}

// ─── Recommendations ─────────────────────────────────────────────────────────

// Recommendation is a scored genre with songs drawn from it.
type Recommendation struct {
	ID         string                 `json:"id"`
	Input      Input                  `json:"input"`
	Score      float64                `json:"score"`
	Genre      string                 `json:"genre"`
	Songs      []catalog.Song         `json:"songs"`
	Categories []fuzzy.Classification `json:"categories"`
	CreatedAt  time.Time              `json:"created_at"`
}

// Recommend scores the input, picks the genre and samples count songs
// from it (the configured sample size when count <= 0). The result is
// recorded in the history; a failed write is logged, not returned.
func (s *Service) Recommend(ctx context.Context, in Input, count int) (*Recommendation, error) {
	if s.catalog == nil {
		return nil, ErrNoCatalog
	}
	if count <= 0 {
		count = s.opts.SampleSize
	}

	score, err := s.Score(in)
	if err != nil {
		return nil, err
	}
	cats, err := s.model.Classify(in.Vector())
	if err != nil {
		return nil, err
	}
	genre := s.genres.Genre(score)

	songs, err := s.catalog.Songs(ctx, genre)
	if err != nil {
		return nil, fmt.Errorf("loading %s songs: %w", genre, err)
	}
	if len(songs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSongs, genre)
	}

	rec := &Recommendation{
		ID:         uuid.NewString(),
		Input:      in,
		Score:      score,
		Genre:      genre,
		Songs:      s.sampler.pick(songs, count),
		Categories: cats,
		CreatedAt:  timeNow().UTC(),
	}
	recommendationsTotal.WithLabelValues(genre).Inc()

	if err := s.catalog.SaveRecommendation(ctx, rec.record()); err != nil {
		s.logger.Warn("recommendation not saved to history", "id", rec.ID, "error", err)
	}
	s.logger.Debug("recommended", "id", rec.ID, "score", score, "genre", genre)
	return rec, nil
}

func (r *Recommendation) record() catalog.Record {
	songs := make([]string, len(r.Songs))
	for i, song := range r.Songs {
		songs[i] = song.String()
	}
	return catalog.Record{
		ID:            r.ID,
		Age:           r.Input.Age,
		Mood:          r.Input.Mood,
		ListeningTime: r.Input.ListeningTime,
		Tempo:         r.Input.Tempo,
		Score:         r.Score,
		Genre:         r.Genre,
		Songs:         songs,
		CreatedAt:     r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// BatchResult is the outcome of one RecommendBatch entry. Exactly one
// of Recommendation and Err is set.
type BatchResult struct {
	Recommendation *Recommendation `json:"recommendation,omitempty"`
	Err            string          `json:"error,omitempty"`
}

// RecommendBatch runs Recommend for every input on a bounded pool of
// workers. Per-input failures land in the matching BatchResult; only a
// cancelled context aborts the batch. Results keep input order.
func (s *Service) RecommendBatch(ctx context.Context, inputs []Input, count int) ([]BatchResult, error) {
	if s.catalog == nil {
		return nil, ErrNoCatalog
	}
	results := make([]BatchResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.BatchWorkers)
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := s.Recommend(gctx, in, count)
			if err != nil {
				results[i].Err = err.Error()
				return nil
			}
			results[i].Recommendation = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// History returns the most recent recommendations, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]catalog.Record, error) {
	if s.catalog == nil {
		return nil, ErrNoCatalog
	}
	return s.catalog.RecentRecommendations(ctx, limit)
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, fuzzy.ErrNoActiveRule):
		return "no_active_rule"
	case errors.Is(err, ErrOutOfRange):
		return "invalid"
	default:
		return "error"
	}
}
