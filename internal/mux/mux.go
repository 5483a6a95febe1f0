package mux

import (
	"context"
	"net/http"
	"strings"

	"chatpoker-server/internal/jwt"
	"chatpoker-server/internal/rng"
	"chatpoker-server/internal/util"
	"chatpoker-server/pkg/room"
	"chatpoker-server/pkg/table"
	gmux "github.com/gorilla/mux"
)

type ctxKey int

const (
	ctxIdentityKey ctxKey = iota
	ctxSnapshotKey
)

// TableStore is the storage the HTTP routes need
type TableStore interface {
	table.Store
	List(ctx context.Context) ([]string, error)
}

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss
	store   TableStore

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string, pitBoss *room.PitBoss, store TableStore) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
		store:   store,
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	}

	// requires bearer authorization
	{
		r := this.authRouter

		r.Methods(http.MethodGet).Path("/table").Handler(this.getTable())
		r.Methods(http.MethodPost).Path("/table").Handler(this.postTable())

		tr := r.PathPrefix("/table/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		tr.Use(this.tableMiddleware)

		tr.Methods(http.MethodGet).Path("").Handler(this.getTableUUID())
		tr.Methods(http.MethodGet).Path("/ws").Handler(this.getTableUUIDWS())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		claims, err := jwt.Validate(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		identity := table.Identity{ID: claims.Subject, Name: claims.Name}
		if identity.Name == "" {
			identity.Name = util.GetRandomName(rng.Crypto{})
		}

		newCtx := context.WithValue(r.Context(), ctxIdentityKey, identity)
		w.Header().Set("ChatPoker-UserID", identity.ID)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
