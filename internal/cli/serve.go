package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graphomics/debruijn/internal/api"
	"github.com/graphomics/debruijn/pkg/cache"
	"github.com/graphomics/debruijn/pkg/pipeline"
	"github.com/graphomics/debruijn/pkg/store"
)

// Backend names for the serve command flags.
const (
	storeMemory = "memory"
	storeMongo  = "mongo"

	cacheFile  = "file"
	cacheRedis = "redis"
	cacheNone  = "none"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	storeKind string
	mongoURI  string
	mongoDB   string
	cacheKind string
	redisAddr string
}

// applyConfig fills unset flags from the user config file.
func (o *serveOpts) applyConfig(cfg ServeConfig) {
	if o.addr == "" {
		o.addr = cfg.Addr
	}
	if o.addr == "" {
		o.addr = ":8080"
	}
	if o.storeKind == "" {
		o.storeKind = cfg.Store
	}
	if o.storeKind == "" {
		o.storeKind = storeMemory
	}
	if o.mongoURI == "" {
		o.mongoURI = cfg.MongoURI
	}
	if o.mongoURI == "" {
		o.mongoURI = "mongodb://localhost:27017"
	}
	if o.mongoDB == "" {
		o.mongoDB = cfg.MongoDB
	}
	if o.mongoDB == "" {
		o.mongoDB = appName
	}
	if o.cacheKind == "" {
		o.cacheKind = cfg.Cache
	}
	if o.cacheKind == "" {
		o.cacheKind = cacheFile
	}
	if o.redisAddr == "" {
		o.redisAddr = cfg.RedisAddr
	}
	if o.redisAddr == "" {
		o.redisAddr = "localhost:6379"
	}
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

The server builds, stores, lists, renders, and deletes de Bruijn graphs
over a JSON API. Graphs live in memory by default; --store mongo
persists them to MongoDB. Pipeline results are cached on disk by
default; --cache redis shares the cache between instances, --cache none
disables it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.applyConfig(c.Config.Serve)
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&opts.storeKind, "store", "", "graph store: memory (default), mongo")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB connection URI")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "", "MongoDB database name")
	cmd.Flags().StringVar(&opts.cacheKind, "cache", "", "pipeline cache: file (default), redis, none")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "Redis address for --cache redis")

	return cmd
}

// runServe wires the store and cache backends and runs the server until
// the context is cancelled.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	st, err := c.newStore(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	ch, err := c.newServeCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(ch, nil, c.Logger)
	defer runner.Close()

	server := api.New(api.Config{
		Store:  st,
		Runner: runner,
		Logger: c.Logger,
	})

	c.Logger.Infof("Listening on %s (store=%s, cache=%s)", opts.addr, opts.storeKind, opts.cacheKind)
	return server.Run(ctx, opts.addr)
}

// newStore creates the graph store backend for the server.
func (c *CLI) newStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	switch opts.storeKind {
	case storeMemory:
		return store.NewMemoryStore(), nil
	case storeMongo:
		st, err := store.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB)
		if err != nil {
			return nil, fmt.Errorf("connect to MongoDB: %w", err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("invalid store: %s (must be 'memory' or 'mongo')", opts.storeKind)
	}
}

// newServeCache creates the pipeline cache backend for the server.
func (c *CLI) newServeCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	switch opts.cacheKind {
	case cacheNone:
		return cache.NewNullCache(), nil
	case cacheFile:
		return newCache(false, c.Config.CacheDir)
	case cacheRedis:
		ch, err := cache.NewRedisCache(ctx, opts.redisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect to Redis: %w", err)
		}
		return ch, nil
	default:
		return nil, fmt.Errorf("invalid cache: %s (must be 'file', 'redis', or 'none')", opts.cacheKind)
	}
}
