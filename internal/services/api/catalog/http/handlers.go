// Package http provides http transport for the catalog
package http

import (
	stdhttp "net/http"
	"net/url"
	"strconv"
	"strings"

	"streamdex/internal/modkit/httpkit"
	perr "streamdex/internal/platform/errors"
	"streamdex/internal/platform/net/http/bind"
	"streamdex/internal/services/api/catalog/domain"
	svc "streamdex/internal/services/api/catalog/service"
)

// Register mounts catalog endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/streams", h.list)
	httpkit.PostJSON[domain.ListQuery](r, "/streams/search", h.search)
	httpkit.Get(r, "/streams/{id}", h.stream)
	httpkit.Get(r, "/tags", h.tags)
	httpkit.Post(r, "/tags/{name}/cycle", h.cycle)
	httpkit.Delete(r, "/tags", h.reset)
	httpkit.Post(r, "/reload", h.reload)
	httpkit.Get(r, "/channel", h.channel)
	httpkit.Get(r, "/stats", h.stats)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /catalog/streams Catalog catalogList
// @Summary Filtered and sorted streams
// @Tags Catalog
// @Produce json
// @Param q query string false "Text search over title, channel and date"
// @Param mode query string false "Duration mode" Enums(total, preMarker, postMarker)
// @Param min_minutes query number false "Duration window lower bound"
// @Param max_minutes query number false "Duration window upper bound, open when absent"
// @Param min_friends query number false "Friend window lower bound"
// @Param max_friends query number false "Friend window upper bound, open when absent"
// @Param sort query string false "Sort key" Enums(newest, oldest, shortest, longest)
// @Param include query []string false "Tags that must be truthy" collectionFormat(multi)
// @Param exclude query []string false "Tags that must not be truthy" collectionFormat(multi)
// @Success 200 {object} domain.ListResult "ok"
// @Failure 400 {object} httpkit.Envelope
// @Failure 503 {object} httpkit.Envelope
// @Router /catalog/streams [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	in, err := parseListQuery(r.URL.Query())
	if err != nil {
		return nil, err
	}
	if err := bind.Validate(in); err != nil {
		return nil, err
	}
	return h.svc.List(r.Context(), in)
}

// swagger:route POST /catalog/streams/search Catalog catalogSearch
// @Summary Filtered and sorted streams from a JSON query
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body domain.ListQuery true "Query"
// @Success 200 {object} domain.ListResult "ok"
// @Failure 400 {object} httpkit.Envelope
// @Router /catalog/streams/search [post]
func (h *handlers) search(r *stdhttp.Request, in domain.ListQuery) (any, error) {
	return h.svc.List(r.Context(), in)
}

// swagger:route GET /catalog/streams/{id} Catalog catalogStream
// @Summary One stream by video id
// @Tags Catalog
// @Produce json
// @Param id path string true "Video id"
// @Success 200 {object} domain.Stream "ok"
// @Failure 404 {object} httpkit.Envelope
// @Router /catalog/streams/{id} [get]
func (h *handlers) stream(r *stdhttp.Request) (any, error) {
	return h.svc.Stream(r.Context(), httpkit.Param(r, "id"))
}

// swagger:route GET /catalog/tags Catalog catalogTags
// @Summary Known tags and their selection state
// @Tags Catalog
// @Produce json
// @Success 200 {array} domain.Tag "ok"
// @Router /catalog/tags [get]
func (h *handlers) tags(r *stdhttp.Request) (any, error) {
	return h.svc.Tags(r.Context())
}

// swagger:route POST /catalog/tags/{name}/cycle Catalog catalogCycleTag
// @Summary Advance a tag unset, include, exclude, unset
// @Tags Catalog
// @Produce json
// @Param name path string true "Tag name"
// @Success 200 {object} domain.Tag "ok"
// @Router /catalog/tags/{name}/cycle [post]
func (h *handlers) cycle(r *stdhttp.Request) (any, error) {
	name, err := url.PathUnescape(httpkit.Param(r, "name"))
	if err != nil {
		return nil, perr.InvalidArgf("invalid tag name")
	}
	return h.svc.CycleTag(r.Context(), name)
}

// swagger:route DELETE /catalog/tags Catalog catalogResetTags
// @Summary Clear every tag selection
// @Tags Catalog
// @Produce json
// @Success 200 {array} domain.Tag "ok"
// @Router /catalog/tags [delete]
func (h *handlers) reset(r *stdhttp.Request) (any, error) {
	return h.svc.ResetTags(r.Context())
}

// swagger:route POST /catalog/reload Catalog catalogReload
// @Summary Refetch uploads and tag tables and replace the catalog
// @Tags Catalog
// @Produce json
// @Success 200 {object} domain.Reload "ok"
// @Failure 404 {object} httpkit.Envelope
// @Failure 409 {object} httpkit.Envelope
// @Failure 503 {object} httpkit.Envelope
// @Router /catalog/reload [post]
func (h *handlers) reload(r *stdhttp.Request) (any, error) {
	return h.svc.Reload(r.Context())
}

// swagger:route GET /catalog/channel Catalog catalogChannel
// @Summary Channel of the loaded catalog
// @Tags Catalog
// @Produce json
// @Success 200 {object} domain.Channel "ok"
// @Router /catalog/channel [get]
func (h *handlers) channel(r *stdhttp.Request) (any, error) {
	return h.svc.Channel(r.Context())
}

// swagger:route GET /catalog/stats Catalog catalogStats
// @Summary Catalog counts and window bounds
// @Tags Catalog
// @Produce json
// @Success 200 {object} domain.Stats "ok"
// @Router /catalog/stats [get]
func (h *handlers) stats(r *stdhttp.Request) (any, error) {
	return h.svc.Stats(r.Context())
}

// parseListQuery reads a ListQuery from url values
// include and exclude accept repeated keys and comma lists
func parseListQuery(v url.Values) (domain.ListQuery, error) {
	in := domain.ListQuery{
		Q:       v.Get("q"),
		Mode:    strings.TrimSpace(v.Get("mode")),
		Sort:    strings.TrimSpace(v.Get("sort")),
		Include: list(v["include"]),
		Exclude: list(v["exclude"]),
	}
	nums := []struct {
		key string
		set func(float64)
	}{
		{"min_minutes", func(f float64) { in.MinMinutes = f }},
		{"max_minutes", func(f float64) { in.MaxMinutes = &f }},
		{"min_friends", func(f float64) { in.MinFriends = f }},
		{"max_friends", func(f float64) { in.MaxFriends = &f }},
	}
	for _, n := range nums {
		raw := strings.TrimSpace(v.Get(n.key))
		if raw == "" {
			continue
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return in, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s must be a number", n.key), n.key)
		}
		n.set(f)
	}
	return in, nil
}

func list(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
