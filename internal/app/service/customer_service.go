package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mirakh/gallery-backend/config"
	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/internal/app/repository"
	"github.com/mirakh/gallery-backend/pkg/logger"
	"github.com/mirakh/gallery-backend/pkg/util"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

var ErrGoogleAuthFailed = errors.New("google authentication failed")

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type googleUserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

type CustomerAuthService interface {
	AuthCodeURL(state string) string
	LoginWithGoogle(ctx context.Context, code string) (*model.Customer, string, error)
	GetCustomerByID(id uint) (*model.Customer, error)
}

type customerAuthService struct {
	customerRepo repository.CustomerRepository
	oauthConfig  *oauth2.Config
	jwtSecret    string
	accessExpiry time.Duration
}

func NewCustomerAuthService(
	customerRepo repository.CustomerRepository,
	cfg config.GoogleOAuthConfig,
	jwtSecret string,
	accessExpiry time.Duration,
) CustomerAuthService {
	return &customerAuthService{
		customerRepo: customerRepo,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		jwtSecret:    jwtSecret,
		accessExpiry: accessExpiry,
	}
}

func (s *customerAuthService) AuthCodeURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (s *customerAuthService) LoginWithGoogle(ctx context.Context, code string) (*model.Customer, string, error) {
	oauthToken, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		logger.Warn("Google code exchange failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, "", ErrGoogleAuthFailed
	}

	info, err := s.fetchUserInfo(ctx, oauthToken)
	if err != nil {
		logger.Error("Failed to fetch Google user info", err, nil)
		return nil, "", ErrGoogleAuthFailed
	}
	if info.Email == "" || !info.VerifiedEmail {
		logger.Warn("Google login rejected: unverified email", map[string]interface{}{
			"email": info.Email,
		})
		return nil, "", ErrGoogleAuthFailed
	}

	customer, err := s.findOrCreateCustomer(info)
	if err != nil {
		return nil, "", err
	}

	token, err := util.GenerateToken(customer.ID, customer.Email, "customer", s.jwtSecret, s.accessExpiry)
	if err != nil {
		logger.Error("Failed to generate customer token", err, map[string]interface{}{
			"email": customer.Email,
		})
		return nil, "", err
	}

	logger.Info("Customer logged in with Google", map[string]interface{}{
		"customer_id": customer.ID,
		"email":       customer.Email,
	})
	return customer, token, nil
}

func (s *customerAuthService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := s.oauthConfig.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request returned %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *customerAuthService) findOrCreateCustomer(info *googleUserInfo) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByEmail(info.Email)
	if err == nil {
		// Refresh the profile on every login.
		if customer.Name != info.Name || customer.Picture != info.Picture {
			customer.Name = info.Name
			customer.Picture = info.Picture
			if err := s.customerRepo.Update(customer); err != nil {
				logger.Warn("Failed to refresh customer profile", map[string]interface{}{
					"email": info.Email,
					"error": err.Error(),
				})
			}
		}
		return customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	customer = &model.Customer{
		Email:    info.Email,
		Name:     info.Name,
		Picture:  info.Picture,
		Provider: "google",
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerAuthService) GetCustomerByID(id uint) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoogleAuthFailed
		}
		return nil, err
	}
	return customer, nil
}
