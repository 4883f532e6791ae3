package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/tennisframework/tennis-api/data"
	"github.com/tennisframework/tennis-api/internal/config"
	"github.com/tennisframework/tennis-api/internal/dataset"
	"github.com/tennisframework/tennis-api/internal/handlers"
	"github.com/tennisframework/tennis-api/internal/logic"
)

// runtime holds the framework and the connections backing it.
type runtime struct {
	framework *logic.Framework
	checks    map[string]handlers.HealthCheck

	pg      *pgxpool.Pool
	mysql   *sql.DB
	ch      driver.Conn
	closers []func()
}

func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
	rt.closers = nil
}

// open connects the configured sources and loads the framework.
func (a *app) open(ctx context.Context) (*runtime, error) {
	rt := &runtime{checks: map[string]handlers.HealthCheck{}}
	sugar := a.logger.Sugar()

	checklistSrc, err := a.checklistSource(ctx, rt)
	if err != nil {
		rt.Close()
		return nil, err
	}
	matchSrc, err := a.matchSource(ctx, rt)
	if err != nil {
		rt.Close()
		return nil, err
	}

	var cache *logic.PerformanceCache
	if a.cfg.RedisURL != "" {
		opts, err := redis.ParseURL(a.cfg.RedisURL)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		rt.closers = append(rt.closers, func() { client.Close() })
		rt.checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		cache = logic.NewPerformanceCache(client, a.cfg.CacheTTL, sugar)
	}

	fw, err := logic.NewFramework(ctx, logic.FrameworkConfig{
		Checklist: dataset.NewChecklistStore(checklistSrc, sugar),
		Matches:   dataset.NewMatchStore(matchSrc, sugar),
		Cache:     cache,
		Logger:    a.logger,
	})
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.framework = fw
	return rt, nil
}

func (a *app) checklistSource(ctx context.Context, rt *runtime) (dataset.ChecklistSource, error) {
	switch a.cfg.ChecklistSource {
	case config.SourcePostgres:
		pool, err := a.postgres(ctx, rt)
		if err != nil {
			return nil, err
		}
		return dataset.NewPostgresSource(pool), nil
	case config.SourceMySQL:
		db, err := a.mysqlDB(rt)
		if err != nil {
			return nil, err
		}
		return dataset.NewMySQLSource(db), nil
	default:
		if a.cfg.ChecklistPath == "" {
			return dataset.NewFileSource(data.FS, data.ChecklistFile), nil
		}
		return dataset.OpenFile(a.cfg.ChecklistPath), nil
	}
}

func (a *app) matchSource(ctx context.Context, rt *runtime) (dataset.MatchSource, error) {
	switch a.cfg.MatchesSource {
	case config.SourcePostgres:
		pool, err := a.postgres(ctx, rt)
		if err != nil {
			return nil, err
		}
		return dataset.NewPostgresSource(pool), nil
	case config.SourceMySQL:
		db, err := a.mysqlDB(rt)
		if err != nil {
			return nil, err
		}
		return dataset.NewMySQLSource(db), nil
	case config.SourceClickHouse:
		if rt.ch == nil {
			conn, err := dataset.OpenClickHouse(ctx, a.cfg.ClickHouseURL)
			if err != nil {
				return nil, err
			}
			rt.ch = conn
			rt.closers = append(rt.closers, func() { conn.Close() })
			rt.checks["clickhouse"] = conn.Ping
		}
		return dataset.NewClickHouseSource(rt.ch), nil
	default:
		if a.cfg.MatchesPath == "" {
			return dataset.NewFileSource(data.FS, data.MatchesFile), nil
		}
		return dataset.OpenFile(a.cfg.MatchesPath), nil
	}
}

// postgres returns the shared pool, connecting on first use.
func (a *app) postgres(ctx context.Context, rt *runtime) (*pgxpool.Pool, error) {
	if rt.pg != nil {
		return rt.pg, nil
	}
	pool, err := pgxpool.New(ctx, a.cfg.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	rt.pg = pool
	rt.closers = append(rt.closers, pool.Close)
	rt.checks["postgres"] = pool.Ping
	return pool, nil
}

func (a *app) mysqlDB(rt *runtime) (*sql.DB, error) {
	if rt.mysql != nil {
		return rt.mysql, nil
	}
	db, err := dataset.OpenMySQL(a.cfg.MySQLDSN)
	if err != nil {
		return nil, err
	}
	rt.mysql = db
	rt.closers = append(rt.closers, func() { db.Close() })
	rt.checks["mysql"] = db.PingContext
	return db, nil
}
