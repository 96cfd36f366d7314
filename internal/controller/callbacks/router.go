package callbacks

import (
	"context"
	"sort"
	"strings"
)

// Func handles a callback. arg is the token with the matched prefix removed.
type Func func(ctx context.Context, chatID int64, arg string)

type route struct {
	prefix string
	fn     Func
}

// Router matches tokens against registered prefixes. The longest matching
// prefix wins, so desp_pag_pix reaches desp_pag_ and not desp_.
type Router struct {
	routes []route
}

func NewRouter() *Router {
	return &Router{}
}

func (r *Router) Handle(prefix string, fn Func) *Router {
	r.routes = append(r.routes, route{prefix: prefix, fn: fn})
	sort.SliceStable(r.routes, func(i, j int) bool {
		return len(r.routes[i].prefix) > len(r.routes[j].prefix)
	})
	return r
}

// Match returns the handler and argument for token.
func (r *Router) Match(token string) (Func, string, bool) {
	for _, rt := range r.routes {
		if strings.HasPrefix(token, rt.prefix) {
			return rt.fn, strings.TrimPrefix(token, rt.prefix), true
		}
	}
	return nil, "", false
}

// Prefixes lists registered prefixes, longest first.
func (r *Router) Prefixes() []string {
	out := make([]string, len(r.routes))
	for i, rt := range r.routes {
		out[i] = rt.prefix
	}
	return out
}
