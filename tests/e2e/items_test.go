package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

func createItem(t *testing.T, c *TestClient, ctx context.Context, token string, name string, price string) ItemDTO {
	t.Helper()

	b, err := json.Marshal(map[string]interface{}{
		"name":        name,
		"description": "e2e item",
		"price":       json.Number(price),
	})
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/seller/items", token, nil, b)
	requireStatus(t, resp, http.StatusCreated, body)

	var item ItemDTO
	mustDecode(t, body, &item)
	if item.ID == "" {
		t.Fatalf("item id is empty: body=%s", string(body))
	}
	return item
}

func TestSellerCreatesItem_PublicCanRead(t *testing.T) {
	c := requireServer(t)
	ctx := context.Background()

	websiteID := newUUID()
	seller := sellerToken(t, newUUID(), websiteID)

	item := createItem(t, c, ctx, seller, "Coffee Beans", "1200")

	//商品詳細は認証なしで読める
	resp, body := c.doJSON(ctx, t, http.MethodGet, "/items/"+item.ID, "", nil, nil)
	requireStatus(t, resp, http.StatusOK, body)

	var got ItemDTO
	mustDecode(t, body, &got)
	if got.Name != "Coffee Beans" {
		t.Fatalf("name=%q want %q", got.Name, "Coffee Beans")
	}
	if got.WebsiteID != websiteID {
		t.Fatalf("website_id=%q want %q", got.WebsiteID, websiteID)
	}
}

func TestBuyerCannotCreateItem(t *testing.T) {
	c := requireServer(t)
	ctx := context.Background()

	buyer := buyerToken(t, newUUID())

	b, _ := json.Marshal(map[string]interface{}{"name": "X", "price": json.Number("100")})
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/seller/items", buyer, nil, b)
	requireStatus(t, resp, http.StatusForbidden, body)
}

func TestSellerUpdatesDiscount_OtherTenantHidden(t *testing.T) {
	c := requireServer(t)
	ctx := context.Background()

	seller := sellerToken(t, newUUID(), newUUID())
	item := createItem(t, c, ctx, seller, "Tea", "500")

	//割引を有効化
	exp := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	b, _ := json.Marshal(map[string]interface{}{
		"active":     true,
		"price":      json.Number("400"),
		"expires_at": exp,
	})
	resp, body := c.doJSON(ctx, t, http.MethodPatch, "/seller/items/"+item.ID+"/discount", seller, nil, b)
	requireStatus(t, resp, http.StatusOK, body)

	//別テナントの販売者からは「存在しない扱い」
	other := sellerToken(t, newUUID(), newUUID())
	resp, body = c.doJSON(ctx, t, http.MethodPatch, "/seller/items/"+item.ID+"/discount", other, nil, b)
	requireStatus(t, resp, http.StatusNotFound, body)
}
