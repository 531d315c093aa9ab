package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/dataroom/backend/internal/config"
	"github.com/dataroom/backend/internal/models"
	"github.com/dataroom/backend/pkg/logger"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

// Scope that lets the browser picker open files the user selects.
const driveFileScope = "https://www.googleapis.com/auth/drive.file"

type SSOService struct {
	DB  *gorm.DB
	Cfg *config.Config

	verifierMu sync.Mutex
	verifier   *oidc.IDTokenVerifier
}

func NewSSOService(db *gorm.DB, cfg *config.Config) *SSOService {
	return &SSOService{DB: db, Cfg: cfg}
}

type IdentityProfile struct {
	Email     string
	Name      string
	AvatarURL *string
}

func (s *SSOService) OAuthConfig() (*oauth2.Config, error) {
	if !s.Cfg.SSO.Google.Enabled {
		return nil, errors.New("google sso is not enabled")
	}
	return &oauth2.Config{
		ClientID:     s.Cfg.SSO.Google.ClientID,
		ClientSecret: s.Cfg.SSO.Google.ClientSecret,
		RedirectURL:  s.Cfg.SSO.Google.RedirectURL,
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile", driveFileScope},
		Endpoint:     google.Endpoint,
	}, nil
}

func (s *SSOService) GenerateState() (string, error) {
	nonceBytes := make([]byte, 32)
	if _, err := rand.Read(nonceBytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(nonceBytes), nil
}

func (s *SSOService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	oauthCfg, err := s.OAuthConfig()
	if err != nil {
		return nil, err
	}

	token, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		logger.Warn("oauth_exchange_failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, errors.New("failed to exchange code for token")
	}
	return token, nil
}

// VerifyIDToken validates the id_token from the OAuth exchange against the
// Google issuer and extracts the identity the rest of the system trusts as
// the owner-scope key.
func (s *SSOService) VerifyIDToken(ctx context.Context, token *oauth2.Token) (*IdentityProfile, error) {
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.New("token response is missing id_token")
	}

	verifier, err := s.idTokenVerifier(ctx)
	if err != nil {
		return nil, err
	}

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, err
	}

	var claims struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, err
	}
	if claims.Email == "" {
		return nil, errors.New("id_token carries no email claim")
	}

	profile := &IdentityProfile{Email: claims.Email, Name: claims.Name}
	if claims.Picture != "" {
		picture := claims.Picture
		profile.AvatarURL = &picture
	}
	return profile, nil
}

// idTokenVerifier returns the OIDC verifier, building it from issuer
// discovery on first use. Callbacks arrive on concurrent goroutines, so the
// lazy init is guarded.
func (s *SSOService) idTokenVerifier(ctx context.Context) (*oidc.IDTokenVerifier, error) {
	s.verifierMu.Lock()
	defer s.verifierMu.Unlock()

	if s.verifier == nil {
		provider, err := oidc.NewProvider(ctx, s.Cfg.SSO.Google.IssuerURL)
		if err != nil {
			return nil, err
		}
		s.verifier = provider.Verifier(&oidc.Config{ClientID: s.Cfg.SSO.Google.ClientID})
	}
	return s.verifier, nil
}

// FindOrCreateUser resolves the authenticated identity to a local user row,
// creating it on first login, and records the fresh access token for the
// picker session endpoint.
func (s *SSOService) FindOrCreateUser(ctx context.Context, profile *IdentityProfile, token *oauth2.Token) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, "email = ?", profile.Email).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Email:     profile.Email,
			Name:      profile.Name,
			AvatarURL: profile.AvatarURL,
		}
		if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, err
		}
		logger.InfoWithUser(user.ID.String(), "user_registered", map[string]interface{}{
			"email": user.Email,
		})
	}

	updates := map[string]interface{}{
		"name":       profile.Name,
		"avatar_url": profile.AvatarURL,
	}
	if token != nil {
		updates["access_token"] = token.AccessToken
		if !token.Expiry.IsZero() {
			expiry := token.Expiry
			updates["token_expiry"] = &expiry
		}
	}
	if err := s.DB.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &user, nil
}
