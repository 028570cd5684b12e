// Command ghmcp serves GitHub tools to AI assistants over MCP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/custodia-labs/ghmcp/internal/adapters/driven/auth"
	"github.com/custodia-labs/ghmcp/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ghmcp/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ghmcp/internal/adapters/driven/web"
	"github.com/custodia-labs/ghmcp/internal/adapters/driving/cli"
	"github.com/custodia-labs/ghmcp/internal/connectors/github"
	"github.com/custodia-labs/ghmcp/internal/core/domain"
	"github.com/custodia-labs/ghmcp/internal/core/ports/driven"
	"github.com/custodia-labs/ghmcp/internal/core/ports/driving"
	"github.com/custodia-labs/ghmcp/internal/core/services"
	"github.com/custodia-labs/ghmcp/internal/normalisers/html"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.Execute(ctx, cli.Wiring{
		Settings: openSettings,
		Services: buildServices,
	}, version)
	if err != nil {
		stop()
		os.Exit(1)
	}
}

func openSettings(configPath string) (driving.SettingsService, error) {
	store, err := file.NewConfigStore(configPath)
	if err != nil {
		return nil, err
	}
	return services.NewSettingsService(store, nil), nil
}

func buildServices(settings *domain.AppSettings) (*cli.Services, error) {
	client, err := github.NewClient(
		github.WithBaseURL(settings.GitHub.APIURL),
		github.WithTokenProvider(auth.NewTokenProvider(settings.GitHub.Token)),
		github.WithRequestsPerSecond(settings.GitHub.RequestsPerSecond),
		github.WithVersion(version),
	)
	if err != nil {
		return nil, err
	}

	var gateway driven.Gateway = client
	if settings.Cache.Enabled {
		gateway = services.NewCachedGateway(gateway, memory.NewResponseCache(), settings.Cache.TTL)
	}

	normaliser := html.New()
	articles := services.NewArticleService(web.NewFetcher(nil, normaliser), normaliser, settings.Articles)

	return &cli.Services{
		GitHub:     services.NewGitHubService(gateway, settings.GitHub.Timeout),
		Articles:   articles,
		AuthMethod: client.AuthMethod(),
	}, nil
}
