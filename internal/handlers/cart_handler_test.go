package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ehson200611/Chocoberryy/internal/cart"
	"github.com/ehson200611/Chocoberryy/internal/db"
	"github.com/ehson200611/Chocoberryy/internal/handlers"
	"github.com/ehson200611/Chocoberryy/internal/models"
)

// openTestDB gives each test suite its own named in-memory SQLite
// database so suites cannot see each other's rows.
func openTestDB(t *testing.T, name string) *gorm.DB {
	testDB, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	if err != nil {
		panic("failed to connect test database: " + err.Error())
	}

	err = testDB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Location{},
		&models.ContactInquiry{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		panic("failed to auto-migrate models: " + err.Error())
	}

	originalDB := db.DB
	db.SetTestDB(testDB)

	t.Cleanup(func() {
		db.SetTestDB(originalDB)
	})

	return testDB
}

func newSessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte("test-secret-key"))
	r.Use(sessions.Sessions("chocosess", store))

	return r
}

// performRequest sends a request carrying the given session cookie and
// returns the recorder plus the cookie to use for the next request.
func performRequest(router *gin.Engine, method, path string, body interface{}, sessionCookie string) (*httptest.ResponseRecorder, string) {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if sessionCookie != "" {
		req.Header.Set("Cookie", sessionCookie)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	next := sessionCookie
	if sc := recorder.Header().Get("Set-Cookie"); sc != "" {
		next = sc
	}
	return recorder, next
}

func mustPrice(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type cartViewResponse struct {
	Items          []cart.Line     `json:"items"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	CartItemsCount int             `json:"cart_items_count"`
}

func setupCartTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	testDB := openTestDB(t, "carthandler")

	r := newSessionRouter()
	api := r.Group("/api")
	{
		api.GET("/cart", handlers.ViewCart)
		api.POST("/cart/items/:id", handlers.AddToCart)
		api.PUT("/cart/items/:id", handlers.UpdateCartItem)
		api.DELETE("/cart/items/:id", handlers.RemoveFromCart)
		api.DELETE("/cart", handlers.ClearCart)
	}

	return r, testDB
}

func TestCartHandlers(t *testing.T) {
	router, testDB := setupCartTestRouter(t)

	berries := models.Product{Name: "Chocolate Strawberries", Price: mustPrice("10.00"), Category: "Strawberries"}
	box := models.Product{Name: "Berry Box", Price: mustPrice("5.00"), Category: "Boxes"}
	testDB.Create(&berries)
	testDB.Create(&box)

	t.Run("Adding the same product twice yields one entry with quantity 2", func(t *testing.T) {
		recorder, sessCookie := performRequest(router, http.MethodPost, fmt.Sprintf("/api/cart/items/%d", berries.ID), nil, "")
		assert.Equal(t, http.StatusOK, recorder.Code)

		var addResp map[string]interface{}
		json.Unmarshal(recorder.Body.Bytes(), &addResp)
		assert.Equal(t, float64(1), addResp["cart_items_count"])
		assert.Equal(t, "Chocolate Strawberries added to cart!", addResp["message"])

		recorder, sessCookie = performRequest(router, http.MethodPost, fmt.Sprintf("/api/cart/items/%d", berries.ID), nil, sessCookie)
		assert.Equal(t, http.StatusOK, recorder.Code)
		json.Unmarshal(recorder.Body.Bytes(), &addResp)
		assert.Equal(t, float64(2), addResp["cart_items_count"])

		recorder, _ = performRequest(router, http.MethodGet, "/api/cart", nil, sessCookie)
		var view cartViewResponse
		json.Unmarshal(recorder.Body.Bytes(), &view)
		assert.Len(t, view.Items, 1)
		assert.Equal(t, 2, view.Items[0].Quantity)
		assert.True(t, view.TotalPrice.Equal(mustPrice("20.00")))
	})

	t.Run("Returns 404 when adding an unknown product", func(t *testing.T) {
		recorder, _ := performRequest(router, http.MethodPost, "/api/cart/items/99999", nil, "")
		assert.Equal(t, http.StatusNotFound, recorder.Code)

		var response map[string]string
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Contains(t, response["error"], "Product not found with ID: 99999")
	})

	t.Run("Updating quantity of a product never added is a no-op", func(t *testing.T) {
		_, sessCookie := performRequest(router, http.MethodPost, fmt.Sprintf("/api/cart/items/%d", berries.ID), nil, "")

		recorder, sessCookie := performRequest(router, http.MethodPut, fmt.Sprintf("/api/cart/items/%d", box.ID),
			handlers.UpdateCartItemRequest{Quantity: 3}, sessCookie)
		assert.Equal(t, http.StatusOK, recorder.Code)

		recorder, _ = performRequest(router, http.MethodGet, "/api/cart", nil, sessCookie)
		var view cartViewResponse
		json.Unmarshal(recorder.Body.Bytes(), &view)
		assert.Len(t, view.Items, 1)
		assert.Equal(t, fmt.Sprint(berries.ID), view.Items[0].Product.ID)
		assert.Equal(t, 1, view.CartItemsCount)
	})

	t.Run("Updating quantity to zero removes the entry", func(t *testing.T) {
		_, sessCookie := performRequest(router, http.MethodPost, fmt.Sprintf("/api/cart/items/%d", berries.ID), nil, "")

		recorder, sessCookie := performRequest(router, http.MethodPut, fmt.Sprintf("/api/cart/items/%d", berries.ID),
			handlers.UpdateCartItemRequest{Quantity: 0}, sessCookie)
		assert.Equal(t, http.StatusOK, recorder.Code)

		recorder, _ = performRequest(router, http.MethodGet, "/api/cart", nil, sessCookie)
		var view cartViewResponse
		json.Unmarshal(recorder.Body.Bytes(), &view)
		assert.Empty(t, view.Items)
		assert.Equal(t, 0, view.CartItemsCount)
	})

	t.Run("Removing twice in succession is the same as removing once", func(t *testing.T) {
		_, sessCookie := performRequest(router, http.MethodPost, fmt.Sprintf("/api/cart/items/%d", berries.ID), nil, "")

		recorder, sessCookie := performRequest(router, http.MethodDelete, fmt.Sprintf("/api/cart/items/%d", berries.ID), nil, sessCookie)
		assert.Equal(t, http.StatusOK, recorder.Code)

		recorder, sessCookie = performRequest(router, http.MethodDelete, fmt.Sprintf("/api/cart/items/%d", berries.ID), nil, sessCookie)
		assert.Equal(t, http.StatusOK, recorder.Code)

		recorder, _ = performRequest(router, http.MethodGet, "/api/cart", nil, sessCookie)
		var view cartViewResponse
		json.Unmarshal(recorder.Body.Bytes(), &view)
		assert.Empty(t, view.Items)
	})

	t.Run("Clearing empties the cart", func(t *testing.T) {
		_, sessCookie := performRequest(router, http.MethodPost, fmt.Sprintf("/api/cart/items/%d", berries.ID), nil, "")
		_, sessCookie = performRequest(router, http.MethodPost, fmt.Sprintf("/api/cart/items/%d", box.ID), nil, sessCookie)

		recorder, sessCookie := performRequest(router, http.MethodDelete, "/api/cart", nil, sessCookie)
		assert.Equal(t, http.StatusOK, recorder.Code)

		recorder, _ = performRequest(router, http.MethodGet, "/api/cart", nil, sessCookie)
		var view cartViewResponse
		json.Unmarshal(recorder.Body.Bytes(), &view)
		assert.Empty(t, view.Items)
		assert.Equal(t, 0, view.CartItemsCount)
	})

	t.Run("Projection skips entries whose product was deleted but keeps them in the cart", func(t *testing.T) {
		doomed := models.Product{Name: "Seasonal Special", Price: mustPrice("7.50"), Category: "Specials"}
		testDB.Create(&doomed)

		_, sessCookie := performRequest(router, http.MethodPost, fmt.Sprintf("/api/cart/items/%d", doomed.ID), nil, "")
		_, sessCookie = performRequest(router, http.MethodPost, fmt.Sprintf("/api/cart/items/%d", box.ID), nil, sessCookie)

		testDB.Delete(&models.Product{}, doomed.ID)

		recorder, sessCookie := performRequest(router, http.MethodGet, "/api/cart", nil, sessCookie)
		var view cartViewResponse
		json.Unmarshal(recorder.Body.Bytes(), &view)

		assert.Len(t, view.Items, 1)
		assert.Equal(t, fmt.Sprint(box.ID), view.Items[0].Product.ID)
		assert.True(t, view.TotalPrice.Equal(mustPrice("5.00")))
		// The stale entry still counts toward the raw cart size.
		assert.Equal(t, 2, view.CartItemsCount)
	})
}
