package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/compass/backend/internal/analytics"
	"github.com/compass/backend/internal/config"
	"github.com/compass/backend/internal/ledger"
	"github.com/compass/backend/internal/settings"
)

type testEnv struct {
	E  *echo.Echo
	DB *gorm.DB

	Orders    *OrderHandler
	Payments  *PaymentHandler
	Expenses  *ExpenseHandler
	Leads     *LeadHandler
	Projects  *ProjectHandler
	Analytics *AnalyticsHandler
	Settings  *SettingsHandler

	Svc *ledger.Service
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open("file:handlers_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	svc := ledger.NewService(db)

	return &testEnv{
		E:         echo.New(),
		DB:        db,
		Orders:    &OrderHandler{Svc: svc},
		Payments:  &PaymentHandler{Svc: svc},
		Expenses:  &ExpenseHandler{DB: db},
		Leads:     &LeadHandler{DB: db},
		Projects:  &ProjectHandler{DB: db},
		Analytics: &AnalyticsHandler{DB: db, Agg: analytics.NewAggregator(db)},
		Settings:  &SettingsHandler{Svc: settings.NewService(db, 20)},
		Svc:       svc,
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
