package http

import (
	"github.com/ennichirag3/blue-carbon-frontend/internal/logging"
	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/domain"
	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/repository"
)

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	repo repository.Repository
	log  *logging.Logger
}

func New(repo repository.Repository, log *logging.Logger) *Handler {
	if log == nil {
		log = logging.NewNop()
	}
	return &Handler{repo: repo, log: log}
}

type createReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	CarbonSaved any    `json:"carbonSaved"`
}

type listResp struct {
	OK       bool             `json:"ok"`
	Projects []domain.Project `json:"projects"`
}
