package integration_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"
	"github.com/uptrace/bun/migrate"

	"github.com/wallcal/wallcal.go/db"
	"github.com/wallcal/wallcal.go/db/migrations"
	"github.com/wallcal/wallcal.go/lib"
	"github.com/wallcal/wallcal.go/lib/logging"
	"github.com/wallcal/wallcal.go/lib/responses"
	"github.com/wallcal/wallcal.go/lib/service"
	"github.com/wallcal/wallcal.go/lib/transport"
)

const (
	aliceAddr = "192.168.2.10"
	bobAddr   = "192.168.2.11"
)

// WallcalTestServiceInit spins up a service against a fresh in-memory
// sqlite database with the full migration set applied.
func WallcalTestServiceInit() (*service.WallcalService, error) {
	c := &service.Config{
		// a unique name per call keeps test databases isolated
		DatabaseUri: fmt.Sprintf("sqlite://file:%s?mode=memory&cache=shared", random.String(12)),
	}

	dbConn, err := db.Open(c)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return nil, err
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		return nil, err
	}

	return &service.WallcalService{
		Config:      c,
		DB:          dbConn,
		Logger:      logging.Logger(""),
		EventPubSub: service.NewPubsub(),
	}, nil
}

// NewTestEcho wires the service's routes the way cmd/server does, minus
// rate limiting and request logging.
func NewTestEcho(svc *service.WallcalService) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: validator.New()}

	noopMw := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	transport.RegisterEndpoints(svc, e, noopMw, noopMw)
	return e
}

type apiRequest struct {
	method string
	path   string
	addr   string
	accept string
	body   interface{}
}

// doRequest runs a request against the echo instance from a given
// client address and decodes the JSON response into out when non-nil.
func doRequest(e *echo.Echo, r apiRequest, out interface{}) (*httptest.ResponseRecorder, error) {
	var buf bytes.Buffer
	if r.body != nil {
		if err := json.NewEncoder(&buf).Encode(r.body); err != nil {
			return nil, err
		}
	}
	req := httptest.NewRequest(r.method, r.path, &buf)
	req.RemoteAddr = r.addr + ":51234"
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if r.accept != "" {
		req.Header.Set(echo.HeaderAccept, r.accept)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

type errorBody struct {
	Error   bool   `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func registerUser(e *echo.Echo, addr, name string) (user struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}, status int, err error) {
	rec, err := doRequest(e, apiRequest{
		method: http.MethodPost,
		path:   "/api/user",
		addr:   addr,
		body:   map[string]string{"name": name},
	}, &user)
	if err != nil {
		return user, 0, err
	}
	return user, rec.Code, nil
}
