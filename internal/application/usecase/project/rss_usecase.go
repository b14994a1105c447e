package project

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-admin/internal/domain/project"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

const rssItemLimit = 20

type RSSUseCase struct {
	projectRepo project.Repository
	siteURL     string
	logger      logger.Logger
}

func NewRSSUseCase(pRepo project.Repository, siteURL string, log logger.Logger) *RSSUseCase {
	return &RSSUseCase{
		projectRepo: pRepo,
		siteURL:     strings.TrimSuffix(siteURL, "/"),
		logger:      log,
	}
}

func (uc *RSSUseCase) Execute(ctx context.Context) (*feeds.Feed, error) {
	projects, err := uc.projectRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list projects for RSS", err)
		return nil, err
	}

	feed := &feeds.Feed{
		Title:       "Portfolio - Projects",
		Link:        &feeds.Link{Href: uc.siteURL + "/projects"},
		Description: "Recently published projects.",
		Created:     time.Now().UTC(),
	}

	if len(projects) > rssItemLimit {
		projects = projects[:rssItemLimit]
	}

	items := make([]*feeds.Item, 0, len(projects))
	for _, p := range projects {
		link := p.LiveURL
		if link == "" {
			link = p.GithubURL
		}
		if link == "" {
			link = fmt.Sprintf("%s/projects#%s", uc.siteURL, p.ID)
		}

		item := &feeds.Item{
			Id:          p.ID.String(),
			Title:       p.Title,
			Link:        &feeds.Link{Href: link},
			Description: p.Description,
			Created:     p.CreatedAt,
			Updated:     p.UpdatedAt,
		}
		if p.ImageURL != "" {
			item.Enclosure = &feeds.Enclosure{Url: p.ImageURL, Type: "image/jpeg", Length: "0"}
		}
		items = append(items, item)
	}
	feed.Items = items

	uc.logger.Info("RSS feed generated successfully", zap.Int("item_count", len(feed.Items)))
	return feed, nil
}
