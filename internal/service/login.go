package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/rfd-tracker/internal/identity"
	"github.com/pribylovaa/rfd-tracker/internal/models"
	"github.com/pribylovaa/rfd-tracker/internal/pkg/log"
	"github.com/pribylovaa/rfd-tracker/internal/pkg/redact"
	"github.com/pribylovaa/rfd-tracker/internal/storage"
)

// accessTokenLeeway — access-токен, истекающий раньше, считается истёкшим.
const accessTokenLeeway = 30 * time.Second

// AuthCodeURL — адрес согласия у провайдера.
func (s *Service) AuthCodeURL(state, verifier string) string {
	return s.identity.AuthCodeURL(state, verifier)
}

// Login завершает вход: обмен кода, профиль, allow-list, upsert по externalId,
// синхронизация аватара и новая сессия.
//
// Ошибки: ErrInvalidArgument — провайдер отверг код; ErrMissingRefreshToken;
// *RevokedError — домен e-mail не в allow-list; ErrUpstream — сбой провайдера.
func (s *Service) Login(ctx context.Context, code, verifier string) (*models.User, *models.Session, error) {
	const op = "service.login.Login"

	lg := log.From(ctx)

	tokens, err := s.identity.Exchange(ctx, code, verifier)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCode) {
			return nil, nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidArgument, err)
		}

		lg.Error("oauth_exchange_failed", slog.String("op", op), slog.String("err", err.Error()))
		return nil, nil, fmt.Errorf("%s: %w", op, ErrUpstream)
	}

	if tokens.RefreshToken == "" {
		lg.Error("oauth_no_refresh_token", slog.String("op", op))
		return nil, nil, fmt.Errorf("%s: %w", op, ErrMissingRefreshToken)
	}

	profile, err := s.identity.Profile(ctx, tokens.AccessToken)
	if err != nil {
		lg.Error("oauth_profile_failed", slog.String("op", op), slog.String("err", err.Error()))
		return nil, nil, fmt.Errorf("%s: %w", op, ErrUpstream)
	}

	if !s.allow.Allows(profile.Email) {
		lg.Warn("login_domain_denied", slog.String("email", redact.Email(profile.Email)))
		return nil, nil, fmt.Errorf("%s: %w", op, &RevokedError{Email: profile.Email})
	}

	user, err := s.upsertUser(ctx, profile, tokens)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	s.syncAvatar(ctx, user, profile.AvatarURL)

	sess, err := s.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("login_succeeded",
		slog.String("user_id", user.ID.String()),
		slog.String("email", redact.Email(user.Email)),
	)

	return user, sess, nil
}

// upsertUser — поиск только по externalId: e-mail у провайдера может меняться.
// Роль admin выдаётся по списку admin_emails только при создании.
func (s *Service) upsertUser(ctx context.Context, p models.Profile, tokens models.ProviderTokens) (*models.User, error) {
	user, err := s.storage.UserByExternalID(ctx, p.ExternalID)
	switch {
	case err == nil:
		return s.refreshLogin(ctx, user, p, tokens)
	case !errors.Is(err, storage.ErrNotFound):
		return nil, err
	}

	now := s.clock()
	user = &models.User{
		ID:           uuid.New(),
		ExternalID:   p.ExternalID,
		Email:        p.Email,
		Name:         p.Name,
		Role:         models.RoleMember,
		Avatar:       p.AvatarURL,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if !tokens.Expiry.IsZero() {
		exp := tokens.Expiry.UTC()
		user.TokenExpiresAt = &exp
	}
	if _, ok := s.adminEmails[strings.ToLower(p.Email)]; ok {
		user.Role = models.RoleAdmin
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, storage.ErrAlreadyExists) {
			return nil, err
		}

		// Параллельный первый вход того же пользователя: берём созданную запись.
		existing, err := s.storage.UserByExternalID(ctx, p.ExternalID)
		if err != nil {
			return nil, err
		}

		return s.refreshLogin(ctx, existing, p, tokens)
	}

	log.From(ctx).Info("user_created",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

func (s *Service) refreshLogin(ctx context.Context, user *models.User, p models.Profile, tokens models.ProviderTokens) (*models.User, error) {
	err := s.storage.UpdateUserLogin(ctx, user.ID, storage.LoginUpdate{
		Email:  p.Email,
		Name:   p.Name,
		Tokens: tokens,
	})
	if err != nil {
		return nil, err
	}

	user.Email = p.Email
	user.Name = p.Name
	user.AccessToken = tokens.AccessToken
	user.RefreshToken = tokens.RefreshToken
	if !tokens.Expiry.IsZero() {
		exp := tokens.Expiry.UTC()
		user.TokenExpiresAt = &exp
	}

	return user, nil
}

// AccessToken возвращает рабочий access-токен пользователя, при необходимости
// обновляя его через провайдера. Любой сбой — ErrDriveAccessRequired: функция,
// которой нужен токен, становится недоступной, а сессия не трогается.
func (s *Service) AccessToken(ctx context.Context, user *models.User) (string, error) {
	const op = "service.login.AccessToken"

	if user.AccessToken == "" {
		return "", fmt.Errorf("%s: %w", op, ErrDriveAccessRequired)
	}

	now := s.clock()
	if user.TokenExpiresAt == nil || user.TokenExpiresAt.After(now.Add(accessTokenLeeway)) {
		return user.AccessToken, nil
	}

	if user.RefreshToken == "" {
		return "", fmt.Errorf("%s: %w", op, ErrDriveAccessRequired)
	}

	lg := log.From(ctx)

	tokens, err := s.identity.Refresh(ctx, user.RefreshToken)
	if err != nil {
		lg.Warn("access_token_refresh_failed",
			slog.String("user_id", user.ID.String()),
			slog.String("err", err.Error()),
		)
		return "", fmt.Errorf("%s: %w", op, ErrDriveAccessRequired)
	}

	if err := s.storage.UpdateUserTokens(ctx, user.ID, tokens); err != nil {
		lg.Warn("access_token_store_failed",
			slog.String("user_id", user.ID.String()),
			slog.String("err", err.Error()),
		)
	}

	user.AccessToken = tokens.AccessToken
	if tokens.RefreshToken != "" {
		user.RefreshToken = tokens.RefreshToken
	}
	if !tokens.Expiry.IsZero() {
		exp := tokens.Expiry.UTC()
		user.TokenExpiresAt = &exp
	}

	return tokens.AccessToken, nil
}
