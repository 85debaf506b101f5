package service

import (
	"context"
	"log/slog"

	cfg "github.com/easy-post-ia-1/easy-post-ia-backend/configs"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/models"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/repository"
	"github.com/easy-post-ia-1/easy-post-ia-backend/pkg/utils"
)

// CredentialsService resolves a company's platform credentials, decrypted and
// ready to construct a client. Environment secrets are honored only behind the
// AllowEnvCredentials flag, for local development.
type CredentialsService interface {
	ResolveTwitter(ctx context.Context, companyID int64) (*models.TwitterCredentials, error)
}

type credentialsService struct {
	cfg cfg.Config
	cr  repository.CredentialsRepository
}

func NewCredentialsService(cfg cfg.Config, cr repository.CredentialsRepository) CredentialsService {
	return &credentialsService{cfg: cfg, cr: cr}
}

func (s *credentialsService) ResolveTwitter(ctx context.Context, companyID int64) (*models.TwitterCredentials, error) {
	record, err := s.cr.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if record == nil {
		if s.cfg.AllowEnvCredentials {
			slog.Warn("using environment twitter credentials, development override", "company_id", companyID)
			return &models.TwitterCredentials{
				CompanyID:         companyID,
				APIKey:            s.cfg.DevTwitter.APIKey,
				APIKeySecret:      s.cfg.DevTwitter.APIKeySecret,
				AccessToken:       s.cfg.DevTwitter.AccessToken,
				AccessTokenSecret: s.cfg.DevTwitter.AccessTokenSecret,
			}, nil
		}
		return nil, nil
	}

	key := []byte(s.cfg.SecretKey)
	decrypted := &models.TwitterCredentials{
		ID:        record.ID,
		CompanyID: record.CompanyID,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}

	fields := []struct {
		src string
		dst *string
	}{
		{record.APIKey, &decrypted.APIKey},
		{record.APIKeySecret, &decrypted.APIKeySecret},
		{record.AccessToken, &decrypted.AccessToken},
		{record.AccessTokenSecret, &decrypted.AccessTokenSecret},
	}
	for _, f := range fields {
		if f.src == "" {
			continue
		}
		plain, err := utils.Decrypt(f.src, key)
		if err != nil {
			slog.Error("failed to decrypt twitter credential", "company_id", companyID)
			return nil, err
		}
		*f.dst = plain
	}

	return decrypted, nil
}
