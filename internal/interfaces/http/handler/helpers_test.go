package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	basketapp "github.com/storefront/backend/internal/application/basket"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	orderingapp "github.com/storefront/backend/internal/application/ordering"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

// testEnv wires real services over an in-memory database and basket store
// behind a gin engine, so handler tests exercise the full request path.
type testEnv struct {
	engine *gin.Engine
	db     *gorm.DB
	store  *cache.InMemoryBasketStore
	units  *persistence.UnitOfWorkFactory
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Product{},
		&ordering.DeliveryMethod{},
		&ordering.Order{},
		&ordering.OrderItem{},
	))

	store := cache.NewInMemoryBasketStore()
	units := persistence.NewUnitOfWorkFactory(db, store)

	engine := gin.New()
	r := router.NewRouter(engine)
	r.Register(NewProductHandler(catalogapp.NewProductService(func() catalogapp.WorkUnit { return units.New() })))
	r.Register(NewBasketHandler(basketapp.NewBasketService(func() basketapp.WorkUnit { return units.New() })))
	r.Register(NewOrderHandler(orderingapp.NewOrderService(func() orderingapp.WorkUnit { return units.New() }, nil)))
	r.Setup()

	return &testEnv{engine: engine, db: db, store: store, units: units}
}

func (e *testEnv) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// decodeResponse unmarshals the standard envelope, decoding Data into out
// when out is non-nil
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder, out any) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	if out != nil && resp.Data != nil {
		data, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, out))
	}
	return resp
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decodeResponse(t, w, nil)
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func (e *testEnv) seedProduct(t *testing.T, name string, price float64, quantity int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "seeded", decimal.NewFromFloat(price), quantity, "pic.png", "tools", "Acme", "seller-1")
	require.NoError(t, err)
	require.NoError(t, e.db.Create(p).Error)
	return p
}

func (e *testEnv) seedDeliveryMethod(t *testing.T, shortName string, price float64) *ordering.DeliveryMethod {
	t.Helper()
	dm, err := ordering.NewDeliveryMethod(shortName, "3-5 days", "Ground shipping", decimal.NewFromFloat(price))
	require.NoError(t, err)
	require.NoError(t, e.db.Create(dm).Error)
	return dm
}

func (e *testEnv) addToBasket(t *testing.T, basketID string, productID int64) {
	t.Helper()
	w := e.request(t, http.MethodPost, "/api/v1/baskets/"+basketID+"/items",
		basketapp.AddItemRequest{ProductID: productID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
