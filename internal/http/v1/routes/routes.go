package routes

import (
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/memberdesk/memberdesk/internal/cache"
	memberhandler "github.com/memberdesk/memberdesk/internal/http/v1/members"
	memberssvc "github.com/memberdesk/memberdesk/internal/service/members"
)

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, svc memberssvc.Service, store *cache.Store) {
	prefix := apiPrefix(api)

	memberhandler.Register(api, svc, store, prefix)
}

func apiPrefix(api huma.API) string {
	for _, s := range api.OpenAPI().Servers {
		if u, err := url.Parse(s.URL); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return ""
}
