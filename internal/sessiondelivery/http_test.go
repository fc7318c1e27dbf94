package sessiondelivery

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/go-bankist/bankist/internal/domain"
	"github.com/go-bankist/bankist/internal/middleware"
	"github.com/go-bankist/bankist/pkg/randompkg"
	"github.com/go-bankist/bankist/pkg/tokenpkg"
)

type staticToucher int

func (s staticToucher) Touch(ctx context.Context, username string) (int, error) {
	return int(s), nil
}

func TestLoginAPI(t *testing.T) {
	username := "js"
	pin := int32(1111)

	testCases := []struct {
		name        string
		requestBody gin.H
		buildStubs  func(service *MockService)
		wantStatus  int
	}{
		{
			name:        "OK",
			requestBody: gin.H{"username": username, "pin": pin},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Login(gomock.Any(), gomock.Eq(username), gomock.Eq(pin)).
					Times(1).
					Return("token", time.Now().Add(time.Minute), domain.Account{Username: username}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:        "WrongCredentials",
			requestBody: gin.H{"username": username, "pin": 9999},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return("", time.Time{}, domain.Account{}, domain.ErrAuthenticationFailure)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:        "MissingPin",
			requestBody: gin.H{"username": username},
			buildStubs: func(service *MockService) {
				service.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:        "NonAlphanumUsername",
			requestBody: gin.H{"username": "j s!", "pin": pin},
			buildStubs: func(service *MockService) {
				service.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			handler := NewHandler(service)

			gin.SetMode(gin.TestMode)
			engine := gin.New()
			engine.POST("/sessions", handler.Login)

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			request := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewReader(body))
			recorder := httptest.NewRecorder()
			engine.ServeHTTP(recorder, request)

			require.Equal(t, tc.wantStatus, recorder.Code)

			if tc.wantStatus == http.StatusOK {
				var res struct {
					AccessToken string `json:"access_token"`
				}
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
				require.Equal(t, "token", res.AccessToken)
			}
		})
	}
}

func TestLogoutAPI(t *testing.T) {
	username := "js"

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	testCases := []struct {
		name       string
		setupAuth  func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker)
		buildStubs func(service *MockService)
		wantStatus int
	}{
		{
			name: "OK",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, username, time.Minute)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Logout(gomock.Any(), gomock.Eq(username)).Times(1).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "SessionAlreadyGone",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, username, time.Minute)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Logout(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.ErrSessionNotFound)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:      "NoAuthorization",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {},
			buildStubs: func(service *MockService) {
				service.EXPECT().Logout(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			handler := NewHandler(service)

			gin.SetMode(gin.TestMode)
			engine := gin.New()
			engine.Use(middleware.AuthMiddleware(tokenMaker, staticToucher(300)))
			engine.DELETE("/sessions", handler.Logout)

			request := httptest.NewRequest(http.MethodDelete, "/sessions", nil)
			tc.setupAuth(t, request, tokenMaker)

			recorder := httptest.NewRecorder()
			engine.ServeHTTP(recorder, request)

			require.Equal(t, tc.wantStatus, recorder.Code)
		})
	}
}
