package cms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/coralstore-backend/internal/config"
	"github.com/your-org/coralstore-backend/internal/domain/catalog"
)

func newTestClient(baseURL string) *Client {
	cfg := &config.Config{}
	cfg.CMS.BaseURL = baseURL
	cfg.CMS.Dataset = "production"
	cfg.CMS.APIToken = "sk-test"
	cfg.CMS.Timeout = 5 * time.Second
	return NewClient(cfg)
}

func TestQueryProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/query/production", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body struct {
			Query  string                 `json:"query"`
			Params map[string]interface{} `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.True(t, strings.Contains(body.Query, `_type == "product"`))
		assert.Equal(t, []interface{}{"p1", "p2"}, body.Params["ids"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"result": []map[string]interface{}{
				{
					"_id":       "p1",
					"name":      "Purple Tang",
					"price":     100.0,
					"category":  "fish",
					"tags":      []string{"Tang"},
					"inventory": 3,
					"imageUrl":  "https://cdn.example/tang.jpg",
				},
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	products, err := client.QueryProducts(context.Background(), []string{"p1", "p2"})

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Purple Tang", products[0].Name)
	assert.Equal(t, 3, products[0].Inventory)
}

func TestQueryActiveSales(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query  string                 `json:"query"`
			Params map[string]interface{} `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.True(t, strings.Contains(body.Query, "isActive == true"))
		assert.NotEmpty(t, body.Params["now"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"result": []map[string]interface{}{
				{
					"_id":              "s1",
					"title":            "Fish Frenzy",
					"isActive":         true,
					"discountType":     "percentage",
					"amount":           20.0,
					"startDate":        "2025-06-01T00:00:00Z",
					"targetCategories": []string{"fish"},
				},
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	sales, err := client.QueryActiveSales(context.Background(), time.Now().UTC())

	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "Fish Frenzy", sales[0].Title)
	require.NotNil(t, sales[0].StartDate)
	assert.Equal(t, 2025, sales[0].StartDate.Year())
}

func TestQueryCheckoutSettings_Missing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"result": nil})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	settings, err := client.QueryCheckoutSettings(context.Background())

	require.NoError(t, err)
	assert.Nil(t, settings)
}

func TestDecrementInventory(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/mutate/production", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]interface{}{"transactionId": "tx1"})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	err := client.DecrementInventory(context.Background(), "p1", 2)

	require.NoError(t, err)
	mutations := captured["mutations"].([]interface{})
	patch := mutations[0].(map[string]interface{})["patch"].(map[string]interface{})
	assert.Equal(t, "p1", patch["id"])
	assert.Equal(t, 2.0, patch["dec"].(map[string]interface{})["inventory"])
}

func TestCreateSubscriber(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]interface{}{"transactionId": "tx2"})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	err := client.CreateSubscriber(context.Background(), catalog.Subscriber{
		Email:    "reef@example.com",
		Name:     "Reef Keeper",
		JoinedAt: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	mutations := captured["mutations"].([]interface{})
	create := mutations[0].(map[string]interface{})["create"].(map[string]interface{})
	assert.Equal(t, "subscriber", create["_type"])
	assert.Equal(t, "reef@example.com", create["email"])
}

func TestQuery_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid token"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.QueryProducts(context.Background(), []string{"p1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
