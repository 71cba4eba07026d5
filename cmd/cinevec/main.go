// Command cinevec manages a content-based movie recommendation store:
// it ingests catalog items, trains the vocabulary model, generates item
// vectors, and answers similarity queries.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cinevec/cinevec/internal/config"
	"github.com/cinevec/cinevec/internal/db"
	dbredis "github.com/cinevec/cinevec/internal/db/redis"
	"github.com/cinevec/cinevec/internal/domain"
	logpkg "github.com/cinevec/cinevec/internal/logger"
	"github.com/cinevec/cinevec/internal/metrics"
	"github.com/cinevec/cinevec/internal/nlp"
	itemrepo "github.com/cinevec/cinevec/internal/repository/item"
	modelrepo "github.com/cinevec/cinevec/internal/repository/model"
	vectorrepo "github.com/cinevec/cinevec/internal/repository/vector"
	"github.com/cinevec/cinevec/internal/tfidf"
	recommenduc "github.com/cinevec/cinevec/internal/usecase/recommend"
	trainuc "github.com/cinevec/cinevec/internal/usecase/train"
	vectorizeuc "github.com/cinevec/cinevec/internal/usecase/vectorize"
	"github.com/cinevec/cinevec/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "cinevec",
	Short:         "Content-based movie recommendation store",
	Version:       fmt.Sprintf("%s (commit %s, built %s)", version.Version, version.Commit, version.Date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app holds the wired service graph shared by all subcommands.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	store  db.Store

	items   *itemrepo.Repo
	vectors *vectorrepo.Repo

	vectorizer *tfidf.Vectorizer
	fileModel  *modelrepo.FileStore
	redisModel *modelrepo.RedisStore

	vectorize *vectorizeuc.Service
	train     *trainuc.Service
	recommend *recommenduc.Service
}

// newApp loads configuration, connects to the database, and wires the
// service graph. The persisted vocabulary model is loaded when present;
// commands that need a trained model fail with ErrModelNotTrained otherwise.
func newApp(ctx context.Context) (*app, error) {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	metrics.RegisterVectorMetrics()
	metrics.RegisterSimilarityMetrics()

	store, err := dbredis.NewStore(dbredis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("create database store: %w", err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}

	morph, err := nlp.NewMorph()
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("create tokenizer: %w", err)
	}

	a := &app{
		cfg:        cfg,
		logger:     logger,
		store:      store,
		items:      itemrepo.New(store),
		vectors:    vectorrepo.New(store),
		fileModel:  modelrepo.NewFileStore(cfg.Model.Path),
		redisModel: modelrepo.NewRedisStore(store),
	}

	a.vectorizer, err = a.loadModel(ctx, morph)
	if err != nil {
		store.Close()
		return nil, err
	}

	a.vectorize = vectorizeuc.New(a.items, a.vectors, a.vectorizer, logger).
		WithParallelism(cfg.Vectorize.Parallelism)
	a.train = trainuc.New(
		a.items, a.vectorizer,
		[]trainuc.ModelStore{a.fileModel, a.redisModel},
		a.vectorize, logger,
	)
	a.recommend = recommenduc.New(a.vectors, a.items, a.vectorize, logger)

	return a, nil
}

// loadModel restores persisted vocabulary state, preferring the shared
// database copy over the local file. A fresh untrained vectorizer is
// returned when neither exists.
func (a *app) loadModel(ctx context.Context, morph *nlp.Morph) (*tfidf.Vectorizer, error) {
	params := modelParams(a.cfg.Model)

	for _, store := range []interface {
		Load(ctx context.Context) ([]byte, error)
	}{a.redisModel, a.fileModel} {
		blob, err := store.Load(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrModelNotTrained) {
				continue
			}
			return nil, fmt.Errorf("load model: %w", err)
		}
		v, err := tfidf.FromState(blob, morph)
		if err != nil {
			return nil, fmt.Errorf("restore model: %w", err)
		}
		metrics.VocabularySize.Set(float64(v.VocabSize()))
		return v, nil
	}

	return tfidf.New(morph, params), nil
}

func (a *app) Close() {
	a.store.Close()
	_ = a.logger.Sync()
}

func modelParams(m config.ModelConfig) tfidf.Params {
	return tfidf.Params{
		MaxFeatures:     m.MaxFeatures,
		MinDocFreq:      m.MinDocFreq,
		MaxDocFreqRatio: m.MaxDocFreqRatio,
		NGramMin:        m.NGramMin,
		NGramMax:        m.NGramMax,
		SublinearTF:     *m.SublinearTF,
	}
}
