package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/models"
)

type CredentialsRepository interface {
	GetByCompanyID(ctx context.Context, companyID int64) (*models.TwitterCredentials, error)
}

type credentialsRepository struct {
	db *sql.DB
}

func NewCredentialsRepository(db *sql.DB) CredentialsRepository {
	return &credentialsRepository{db: db}
}

func (r *credentialsRepository) GetByCompanyID(ctx context.Context, companyID int64) (*models.TwitterCredentials, error) {
	query := `SELECT id, company_id, api_key, api_key_secret, access_token, access_token_secret, created_at, updated_at FROM credentials_twitter WHERE company_id = $1`
	row := r.db.QueryRowContext(ctx, query, companyID)

	var creds models.TwitterCredentials
	err := row.Scan(&creds.ID, &creds.CompanyID, &creds.APIKey, &creds.APIKeySecret, &creds.AccessToken, &creds.AccessTokenSecret, &creds.CreatedAt, &creds.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &creds, nil
}
