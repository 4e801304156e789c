package gate

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/CareerPrix/CP-Backend/internal/utils"
	"gorm.io/gorm"
)

// SessionFetcher resolves a session cookie value to session data. The gate
// looks the session up fresh on every request; nothing is cached between
// requests.
type SessionFetcher interface {
	FindSessionByID(id string) (utils.SessionData, error)
}

// Middleware is the access router: for every request it decides between
// pass-through, redirect to sign-in, and redirect to the role's dashboard.
//
// A failed session lookup (anything other than "no such row") fails open:
// the request passes through and the error is logged. Role-gated pages must
// never be served from a cache after a role change, so every response
// (redirect or pass-through) carries no-store headers.
func Middleware(table PathTable, fetcher SessionFetcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			setNoCache(w)
			path := r.URL.Path

			session, failOpen := resolveSession(r, fetcher)
			if failOpen {
				next.ServeHTTP(w, r)
				return
			}

			if session != nil && table.IsSignIn(path) {
				http.Redirect(w, r, DashboardPath(session.role), http.StatusSeeOther)
				return
			}

			if table.IsPublic(path) {
				next.ServeHTTP(w, r)
				return
			}

			if session == nil {
				if table.IsProtected(path) {
					http.Redirect(w, r, "/login?redirect="+url.QueryEscape(path), http.StatusFound)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			switch {
			case session.role == RoleCompany && table.IsStudentOnly(path):
				http.Redirect(w, r, DashboardPath(RoleCompany), http.StatusSeeOther)
				return
			case session.role == RoleStudent && table.IsCompanyOnly(path):
				http.Redirect(w, r, DashboardPath(RoleStudent), http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type gateSession struct {
	userID string
	role   Role
}

// resolveSession returns the caller's session, or nil when there is none
// (missing cookie, unknown session, expired session). The second return is
// true only for internal lookup failures, which the gate must not block on.
func resolveSession(r *http.Request, fetcher SessionFetcher) (*gateSession, bool) {
	cookie, err := r.Cookie("session_id")
	if err != nil {
		return nil, false
	}

	data, err := fetcher.FindSessionByID(cookie.Value)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false
		}
		log.Printf("[gate] session lookup failed, failing open: %v", err)
		return nil, true
	}

	if data.ExpiresAt.Before(time.Now()) {
		return nil, false
	}

	role, err := ParseRole(data.Role)
	if err != nil {
		// Unknown role rows are treated like students for redirect purposes.
		role = RoleStudent
	}
	return &gateSession{userID: data.UserID, role: role}, false
}

func setNoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}
