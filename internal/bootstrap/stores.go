// Package bootstrap opens the configured backing store and hands out its repositories.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-admin/adapters/docstore"
	"github.com/khoahotran/portfolio-admin/adapters/memstore"
	"github.com/khoahotran/portfolio-admin/adapters/persistence"
	"github.com/khoahotran/portfolio-admin/internal/config"
	"github.com/khoahotran/portfolio-admin/internal/domain/about"
	"github.com/khoahotran/portfolio-admin/internal/domain/experience"
	"github.com/khoahotran/portfolio-admin/internal/domain/feedback"
	"github.com/khoahotran/portfolio-admin/internal/domain/project"
	"github.com/khoahotran/portfolio-admin/internal/domain/user"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

type Stores struct {
	Driver      string
	Users       user.Repository
	About       about.Repository
	Experiences experience.Repository
	Feedback    feedback.Repository
	Projects    project.Repository

	closers []func()
}

// OpenStores connects to the store selected by db.driver. Close releases it.
func OpenStores(ctx context.Context, cfg config.Config, log logger.Logger) (*Stores, error) {
	s := &Stores{Driver: cfg.DB.Driver}

	switch cfg.DB.Driver {
	case config.DriverMongo, "":
		s.Driver = config.DriverMongo
		client, err := docstore.NewMongoClient(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error("Disconnect MongoDB failed", err)
			}
		})

		db := client.Database(cfg.Mongo.Database)
		if err := docstore.EnsureIndexes(ctx, db); err != nil {
			s.Close()
			return nil, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		s.Users = docstore.NewMongoUserRepo(db)
		s.About = docstore.NewMongoAboutRepo(db)
		s.Experiences = docstore.NewMongoExperienceRepo(db)
		s.Feedback = docstore.NewMongoFeedbackRepo(db)
		s.Projects = docstore.NewMongoProjectRepo(db)

	case config.DriverPostgres:
		if err := persistence.RunMigrations(cfg.DB.DSN, log); err != nil {
			return nil, err
		}
		pool, err := persistence.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, pool.Close)
		s.Users = persistence.NewPostgresUserRepo(pool)
		s.About = persistence.NewPostgresAboutRepo(pool, log)
		s.Experiences = persistence.NewPostgresExperienceRepo(pool)
		s.Feedback = persistence.NewPostgresFeedbackRepo(pool)
		s.Projects = persistence.NewPostgresProjectRepo(pool)

	case config.DriverMemory:
		log.Warn("Using the in-memory store. Data is lost on restart.")
		mem := memstore.New()
		s.Users = mem.Users()
		s.About = mem.About()
		s.Experiences = mem.Experiences()
		s.Feedback = mem.Feedback()
		s.Projects = mem.Projects()

	default:
		return nil, fmt.Errorf("unknown db.driver %q", cfg.DB.Driver)
	}

	log.Info("Store ready", zap.String("driver", s.Driver))
	return s, nil
}

func (s *Stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}
