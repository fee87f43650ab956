package handlers_test

import (
	"net/http"

	"github.com/bazaarhq/storefront_backoffice/internal/apperrors"
	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/bazaarhq/storefront_backoffice/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestCheckDelivery_Available() {
	match := &domain.DeliveryMatch{
		Delivery: domain.DeliveryArea{AreaID: "area-1", City: "Dhaka", RadiusKm: 5, IsActive: true},
		Distance: 1.26,
		Radius:   5,
		Area:     "Dhaka",
	}
	suite.mockDelivery.On("CheckDeliveryAvailability", mock.Anything, 23.81, 90.41, "Dhaka").Return(match, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/delivery/check", `{"latitude":"23.81","longitude":90.41,"city":"Dhaka"}`, false)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CheckDeliveryResponse
	suite.decode(w, &resp)
	suite.True(resp.Available)
	suite.Require().NotNil(resp.Distance)
	suite.Equal(1.3, *resp.Distance)
	suite.Require().NotNil(resp.DeliveryArea)
	suite.Equal("area-1", resp.DeliveryArea.AreaID)
}

func (suite *HandlerTestSuite) TestCheckDelivery_NotAvailable() {
	suite.mockDelivery.On("CheckDeliveryAvailability", mock.Anything, 1.0, 2.0, "").Return(nil, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/delivery/check", `{"latitude":1,"longitude":2}`, false)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CheckDeliveryResponse
	suite.decode(w, &resp)
	suite.False(resp.Available)
	suite.NotEmpty(resp.Message)
	suite.Nil(resp.Distance)
}

func (suite *HandlerTestSuite) TestCheckDelivery_NonNumericCoordinates() {
	w := suite.do(http.MethodPost, "/api/v1/delivery/check", `{"latitude":"north","longitude":90}`, false)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockDelivery.AssertNotCalled(suite.T(), "CheckDeliveryAvailability", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCheckDelivery_OutOfRange() {
	suite.mockDelivery.On("CheckDeliveryAvailability", mock.Anything, 91.0, 0.0, "").Return(nil, apperrors.ErrValidation).Once()

	w := suite.do(http.MethodPost, "/api/v1/delivery/check", `{"latitude":91,"longitude":0}`, false)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCheckDelivery_RateLimited() {
	suite.mockDelivery.On("CheckDeliveryAvailability", mock.Anything, 1.0, 2.0, "").Return(nil, nil)

	for i := 0; i < 3; i++ {
		w := suite.do(http.MethodPost, "/api/v1/delivery/check", `{"latitude":1,"longitude":2}`, false)
		suite.Equal(http.StatusOK, w.Code)
	}
	w := suite.do(http.MethodPost, "/api/v1/delivery/check", `{"latitude":1,"longitude":2}`, false)

	suite.Equal(http.StatusTooManyRequests, w.Code)
	suite.Equal("0", w.Header().Get("X-RateLimit-Remaining"))
}

func (suite *HandlerTestSuite) TestDeliveryAreas_RequireAuth() {
	w := suite.do(http.MethodPost, "/api/v1/delivery-areas", `{"city":"Dhaka"}`, false)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestCreateDeliveryArea() {
	lat, lng := 23.8, 90.4
	area := &domain.DeliveryArea{AreaID: "area-1", City: "Dhaka", ShopLat: &lat, ShopLng: &lng, RadiusKm: 5, IsActive: true}
	suite.mockDelivery.On("CreateDeliveryArea", mock.Anything, mock.MatchedBy(func(r dto.DeliveryAreaRequest) bool {
		return r.City == "Dhaka" && r.RadiusKm == 5 && *r.ShopLat == lat
	}), suite.userID).Return(area, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/delivery-areas", `{"city":"Dhaka","shopLat":23.8,"shopLng":90.4,"radiusKm":5}`, true)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.DeliveryAreaResponse
	suite.decode(w, &resp)
	suite.Equal("area-1", resp.AreaID)
	suite.NotNil(resp.SubAreas)
}

func (suite *HandlerTestSuite) TestDeleteDeliveryArea() {
	suite.mockDelivery.On("DeleteDeliveryArea", mock.Anything, "area-1").Return(nil).Once()
	suite.mockDelivery.On("DeleteDeliveryArea", mock.Anything, "gone").Return(apperrors.ErrNotFound).Once()

	suite.Equal(http.StatusNoContent, suite.do(http.MethodDelete, "/api/v1/delivery-areas/area-1", nil, true).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodDelete, "/api/v1/delivery-areas/gone", nil, true).Code)
}
