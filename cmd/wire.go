package cmd

import (
	"fmt"
	"time"

	statusadapter "github.com/bankrkit/bankr/internal/adapters/render/status"
	tomlrepo "github.com/bankrkit/bankr/internal/adapters/repo/toml"
	"github.com/bankrkit/bankr/internal/application"
	"github.com/bankrkit/bankr/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	service        *application.Service
	statusRenderer func(application.Status, statusadapter.RenderOptions) (string, error)
	now            func() time.Time
}

func wireApp() (*app, error) {
	repo, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire ledger repository: %w", err)
	}

	return &app{
		service:        application.NewService(repo, ports.SystemClock{}),
		statusRenderer: statusadapter.Render,
		now:            time.Now,
	}, nil
}
