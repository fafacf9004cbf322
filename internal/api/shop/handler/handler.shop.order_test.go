// Package shophdl - Test route quản trị đơn hàng trên Fiber app thật,
// service chạy trên fake store (không cần database).
package shophdl

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/buggerbugsbunny/kriptopazar/internal/api/base/service"
	shopmodels "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/models"
	shopsvc "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/service"
	"github.com/buggerbugsbunny/kriptopazar/internal/common"
	"github.com/buggerbugsbunny/kriptopazar/internal/global"
)

// fakeOrderData giả lập tầng dữ liệu đơn hàng cho handler test.
// Chỉ cài các phương thức route dùng đến.
type fakeOrderData struct {
	basesvc.BaseServiceMongo[shopmodels.Order]

	updateCalls  int
	updateResult shopmodels.Order
	updateErr    error

	deleteResult shopmodels.Order
	deleteErr    error
	exists       bool
}

func (f *fakeOrderData) UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (shopmodels.Order, error) {
	f.updateCalls++
	if f.updateErr != nil {
		return shopmodels.Order{}, f.updateErr
	}
	return f.updateResult, nil
}

func (f *fakeOrderData) FindOneAndDelete(ctx context.Context, filter interface{}, opts *options.FindOneAndDeleteOptions) (shopmodels.Order, error) {
	if f.deleteErr != nil {
		return shopmodels.Order{}, f.deleteErr
	}
	return f.deleteResult, nil
}

func (f *fakeOrderData) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	return f.exists, nil
}

// newAdminOrderApp dựng Fiber app với các route quản trị đơn hàng cần test
func newAdminOrderApp(store *fakeOrderData) *fiber.App {
	global.InitValidator()

	handler := NewOrderAdminHandler(&shopsvc.OrderService{BaseServiceMongo: store})

	app := fiber.New()
	app.Patch("/admin/orders/:id/status", handler.HandleSetStatus)
	app.Delete("/admin/orders/:id", handler.HandleDeleteArchived)
	return app
}

func TestHandleSetStatus(t *testing.T) {
	id := primitive.NewObjectID()

	t.Run("đổi trạng thái thành công", func(t *testing.T) {
		store := &fakeOrderData{updateResult: shopmodels.Order{
			ID:          id,
			OrderNumber: "EM-AABBCCDD",
			Status:      shopmodels.OrderStatusCompleted,
		}}
		app := newAdminOrderApp(store)

		req := httptest.NewRequest("PATCH", "/admin/orders/"+id.Hex()+"/status", strings.NewReader(`{"status":"completed"}`))
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, common.StatusOK, resp.StatusCode)
		assert.Equal(t, 1, store.updateCalls)

		var envelope map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		assert.Equal(t, "success", envelope["status"])
	})

	t.Run("trạng thái ngoài danh sách bị chặn", func(t *testing.T) {
		store := &fakeOrderData{}
		app := newAdminOrderApp(store)

		req := httptest.NewRequest("PATCH", "/admin/orders/"+id.Hex()+"/status", strings.NewReader(`{"status":"shipped"}`))
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, common.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, 0, store.updateCalls, "không được đụng tới dữ liệu khi input sai")
	})

	t.Run("id sai định dạng", func(t *testing.T) {
		store := &fakeOrderData{}
		app := newAdminOrderApp(store)

		req := httptest.NewRequest("PATCH", "/admin/orders/khong-phai-objectid/status", strings.NewReader(`{"status":"completed"}`))
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, common.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, 0, store.updateCalls)
	})
}

func TestHandleDeleteArchived(t *testing.T) {
	id := primitive.NewObjectID()

	t.Run("xóa được đơn đã lưu trữ", func(t *testing.T) {
		store := &fakeOrderData{deleteResult: shopmodels.Order{
			ID:          id,
			OrderNumber: "EM-AABBCCDD",
			IsArchived:  true,
		}}
		app := newAdminOrderApp(store)

		req := httptest.NewRequest("DELETE", "/admin/orders/"+id.Hex(), nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, common.StatusOK, resp.StatusCode)
	})

	t.Run("đơn tồn tại nhưng chưa lưu trữ", func(t *testing.T) {
		store := &fakeOrderData{deleteErr: common.ErrNotFound, exists: true}
		app := newAdminOrderApp(store)

		req := httptest.NewRequest("DELETE", "/admin/orders/"+id.Hex(), nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, common.StatusBadRequest, resp.StatusCode)
	})

	t.Run("đơn không tồn tại", func(t *testing.T) {
		store := &fakeOrderData{deleteErr: common.ErrNotFound, exists: false}
		app := newAdminOrderApp(store)

		req := httptest.NewRequest("DELETE", "/admin/orders/"+id.Hex(), nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, common.StatusNotFound, resp.StatusCode)
	})
}
