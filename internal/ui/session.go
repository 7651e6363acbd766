package ui

import (
	"net/http"
	"net/url"

	"github.com/leapstack-labs/tablekit/pkg/tablestate"
)

const (
	sessionName    = "tablekit_view"
	sessionViewKey = "view"
)

// sessionNavigator persists the last committed query map in the visitor's
// session cookie, so opening the page without parameters restores the
// previous view. It is the server-side counterpart of browser history.
type sessionNavigator struct {
	server *Server
	w      http.ResponseWriter
	r      *http.Request
}

func (s *Server) navigator(w http.ResponseWriter, r *http.Request) *sessionNavigator {
	return &sessionNavigator{server: s, w: w, r: r}
}

// Read returns the last committed map, or an empty map for a fresh
// session. A corrupt cookie degrades to empty rather than failing: the
// saved view is a convenience, not a source of truth.
func (n *sessionNavigator) Read() tablestate.QueryMap {
	sess, err := n.server.sessionStore.Get(n.r, sessionName)
	if err != nil {
		return tablestate.QueryMap{}
	}
	raw, _ := sess.Values[sessionViewKey].(string)
	if raw == "" {
		return tablestate.QueryMap{}
	}
	vals, err := url.ParseQuery(raw)
	if err != nil {
		return tablestate.QueryMap{}
	}
	return tablestate.FromValues(vals)
}

// Commit replaces the saved view with q.
func (n *sessionNavigator) Commit(q tablestate.QueryMap) error {
	sess, err := n.server.sessionStore.Get(n.r, sessionName)
	if err != nil {
		// Get returns a usable blank session alongside decode errors.
		if sess == nil {
			return err
		}
	}
	sess.Values[sessionViewKey] = q.Encode()
	return sess.Save(n.r, n.w)
}
