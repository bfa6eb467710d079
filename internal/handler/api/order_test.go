//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"storefront/internal/domain/order"
	"storefront/internal/handler/api"
	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/handler/middleware"
	"storefront/internal/infra"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"
	"storefront/tests/common/builder"
	"storefront/tests/common/httptest"
	"storefront/tests/common/testutil"
	commandsmock "storefront/tests/mock/commands"
	queriesmock "storefront/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockOrderCommands
	mockQueries  *queriesmock.MockOrderQueries
	handler      *api.OrderHandler

	userID uuid.UUID
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.Actor())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.handler = api.NewOrderHandler(s.mockCommands, s.mockQueries)

	s.userID = uuid.New()

	s.router.POST("/orders", middleware.RequireActor(), s.handler.PlaceOrder)
	s.router.GET("/orders", middleware.RequireActor(), s.handler.ListOrders)
	s.router.GET("/orders/:id", middleware.RequireActor(), s.handler.GetOrder)
	s.router.PATCH("/orders/:id/status", middleware.RequireAdmin(), s.handler.UpdateStatus)
	s.router.PATCH("/orders/:id/pay", middleware.RequireAdmin(), s.handler.MarkPaid)
	s.router.PATCH("/orders/:id/deliver", middleware.RequireAdmin(), s.handler.MarkDelivered)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

type testCaseOrder struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestPlaceOrder
// ================================================================================

func (s *OrderHandlerTestSuite) TestPlaceOrder() {
	url := "/orders"

	reqBody := builder.NewOrderBuilder().BuildPlaceRequestDTO()
	orderID := uuid.New()

	validation := []testCaseOrder{
		{name: "missing field: items (required)", mutate: testutil.Field("items", nil), expectCode: http.StatusBadRequest},
		{name: "empty items array", mutate: testutil.Field("items", []any{}), expectCode: http.StatusBadRequest},
		{name: "zero item qty", mutate: testutil.Field("items", []map[string]any{{"product_id": uuid.New().String(), "qty": 0, "unit_price_cents": 100}}), expectCode: http.StatusBadRequest},
		{name: "missing field: shipping_address (required)", mutate: testutil.Field("shipping_address", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: payment_method (required)", mutate: testutil.Field("payment_method", nil), expectCode: http.StatusBadRequest},
		{name: "zero total_cents", mutate: testutil.Field("total_cents", 0), expectCode: http.StatusBadRequest},
	}

	s.Run("success: returns 201 Created with the new order ID", func() {
		s.mockCommands.EXPECT().PlaceOrder(gomock.Any(), s.userID, reqBody.ToInput()).
			Return(orderID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.userID.String(), middleware.RoleCustomer)

		var body resdto.PlaceOrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(orderID, body.ID)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, tc := range validation {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, s.userID.String(), middleware.RoleCustomer)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "", "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Authentication required")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "unknown product",
				commandsError:  commands.ErrProductNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Product not found",
			},
			{
				name:           "insufficient stock",
				commandsError:  commands.ErrInsufficientStock,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Insufficient stock",
			},
			{
				name:           "insufficient stock marked over a repository error",
				commandsError:  errs.Mark(infra.WrapRepoErr("decrement stock", errors.New("stock check failed"), infra.KindConflict), commands.ErrInsufficientStock),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Insufficient stock",
			},
			{
				name:           "domain validation error",
				commandsError:  commands.ErrDomainValidation,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Domain validation failed",
			},
			{
				name:           "store unavailable",
				commandsError:  commands.ErrStoreUnavailable,
				expectedStatus: http.StatusServiceUnavailable,
				expectedMsg:    "temporarily unavailable",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().PlaceOrder(gomock.Any(), s.userID, reqBody.ToInput()).
					Return(uuid.Nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.userID.String(), middleware.RoleCustomer)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGetOrder
// ================================================================================

func (s *OrderHandlerTestSuite) TestGetOrder() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String()

	returnView := builder.NewOrderBuilder().BuildViewQuery()
	returnView.ID = orderID

	s.Run("success: returns 200 OK with OrderResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), orderID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.userID.String(), middleware.RoleCustomer)

		var response resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(orderID, response.ID)
		s.Equal(returnView.TotalCents, response.TotalCents)
		s.Require().Len(response.Items, 1)
		s.Equal(returnView.Items[0].ProductName, response.Items[0].ProductName)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/invalid-uuid", nil, s.userID.String(), middleware.RoleCustomer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid order ID")
	})

	s.Run("error: 404 Not Found for missing order", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), orderID).
			Return(nil, infra.WrapRepoErr("order not found", errors.New("no rows"), infra.KindNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.userID.String(), middleware.RoleCustomer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})

	s.Run("error: 500 Internal Server Error on query failure", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), orderID).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.userID.String(), middleware.RoleCustomer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestListOrders
// ================================================================================

func (s *OrderHandlerTestSuite) TestListOrders() {
	url := "/orders"

	items := []*queries.OrderListItem{
		builder.NewOrderBuilder().BuildListItem(),
		builder.NewOrderBuilder().BuildListItem(),
	}

	s.Run("success: non-admin callers only see their own orders", func() {
		expectedFilter := queries.OrderListFilter{UserID: &s.userID}
		s.mockQueries.EXPECT().List(gomock.Any(), expectedFilter, int32(50), int32(0)).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.userID.String(), middleware.RoleCustomer)

		var response []resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, len(items))
	})

	s.Run("success: admin callers see all orders", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), queries.OrderListFilter{}, int32(50), int32(0)).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.userID.String(), middleware.RoleAdmin)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: status filter and paging are forwarded", func() {
		status := string(order.StatusPending)
		expectedFilter := queries.OrderListFilter{UserID: &s.userID, Status: &status}
		s.mockQueries.EXPECT().List(gomock.Any(), expectedFilter, int32(10), int32(20)).
			Return(items[:1], nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?status=Pending&limit=10&offset=20", nil, s.userID.String(), middleware.RoleCustomer)

		var response []resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("error: 400 Bad Request for unknown status filter", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?status=bogus", nil, s.userID.String(), middleware.RoleCustomer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid status filter")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "", "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Authentication required")
	})
}

// ================================================================================
// TestUpdateStatus
// ================================================================================

func (s *OrderHandlerTestSuite) TestUpdateStatus() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String() + "/status"

	reqBody := map[string]any{"status": "Processing"}

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), orderID, order.StatusProcessing).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, s.userID.String(), middleware.RoleAdmin)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusNoContent, nil)
	})

	s.Run("error: 400 Bad Request for unknown status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "Teleported"}, s.userID.String(), middleware.RoleAdmin)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Unknown order status")
	})

	s.Run("error: 403 Forbidden for non-admin", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, s.userID.String(), middleware.RoleCustomer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Admin privileges required")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "order not found",
				commandsError:  commands.ErrOrderNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Order not found",
			},
			{
				name:           "illegal transition",
				commandsError:  commands.ErrIllegalStatusTransition,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Illegal status transition",
			},
			{
				name:           "store timeout marked as unavailable",
				commandsError:  errs.Mark(infra.WrapRepoErr("set status", errors.New("deadline exceeded"), infra.KindTimeout), commands.ErrStoreUnavailable),
				expectedStatus: http.StatusServiceUnavailable,
				expectedMsg:    "temporarily unavailable",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), orderID, order.StatusProcessing).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, s.userID.String(), middleware.RoleAdmin)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestMarkPaid
// ================================================================================

func (s *OrderHandlerTestSuite) TestMarkPaid() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String() + "/pay"

	s.Run("success: returns 204 with a payment reference", func() {
		ref := "pay_123"
		s.mockCommands.EXPECT().MarkPaid(gomock.Any(), orderID, &ref).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"payment_ref": ref}, s.userID.String(), middleware.RoleAdmin)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusNoContent, nil)
	})

	s.Run("success: returns 204 without a body", func() {
		s.mockCommands.EXPECT().MarkPaid(gomock.Any(), orderID, (*string)(nil)).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, s.userID.String(), middleware.RoleAdmin)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusNoContent, nil)
	})

	s.Run("error: 409 Conflict when already paid", func() {
		s.mockCommands.EXPECT().MarkPaid(gomock.Any(), orderID, (*string)(nil)).
			Return(commands.ErrOrderAlreadyPaid).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, s.userID.String(), middleware.RoleAdmin)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already paid")
	})

	s.Run("error: 404 Not Found for missing order", func() {
		s.mockCommands.EXPECT().MarkPaid(gomock.Any(), orderID, (*string)(nil)).
			Return(commands.ErrOrderNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, s.userID.String(), middleware.RoleAdmin)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})
}

// ================================================================================
// TestMarkDelivered
// ================================================================================

func (s *OrderHandlerTestSuite) TestMarkDelivered() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String() + "/deliver"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().MarkDelivered(gomock.Any(), orderID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, s.userID.String(), middleware.RoleAdmin)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusNoContent, nil)
	})

	s.Run("error: 409 Conflict when already delivered", func() {
		s.mockCommands.EXPECT().MarkDelivered(gomock.Any(), orderID).
			Return(commands.ErrOrderAlreadyDelivered).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, s.userID.String(), middleware.RoleAdmin)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already delivered")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, "", "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Authentication required")
	})
}
