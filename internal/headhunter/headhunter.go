package headhunter

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL    = "https://api.hh.ru"
	userAgent = "spigell/hh-matcher (spigelly@gmail.com)"
	// Max value for search per page.
	perPage = "100"
)

type Client struct {
	// ctx used only for http requests right now
	ctx    context.Context
	token  string
	logger *zap.Logger

	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
	// RequestDelay is a pause between consecutive requests (pages and details).
	RequestDelay time.Duration
}

// New returns a client for the hh.ru API. The token is optional: vacancy search and
// vacancy details are public endpoints.
func New(ctx context.Context, logger *zap.Logger, token string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		ctx:    ctx,
		token:  token,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

func (c *Client) Search(params *SearchParams) (*Vacancies, error) {
	return c.search(params)
}

// GetVacancy returns a single vacancy with full description and key skills.
func (c *Client) GetVacancy(id string) (*Vacancy, error) {
	return c.getVacancy(id)
}
