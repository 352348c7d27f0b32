package repositories

import (
	"context"

	"clientdesk/internal/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.User, error)
}

type userRepo struct {
	db Database
}

func NewUserRepo(db Database) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, role, client_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, user.ID, user.Email, user.Role, user.ClientID)
	return mapError("create user", err)
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, role, client_id, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Email, &user.Role,
		&user.ClientID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, mapError("get user", err)
	}
	return user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, role, client_id, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	err := r.db.QueryRow(ctx, query, email).Scan(&user.ID, &user.Email, &user.Role,
		&user.ClientID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, mapError("get user by email", err)
	}
	return user, nil
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return mapError("delete user", errNoRowsAffected)
	}
	return nil
}

func (r *userRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.User, error) {
	query := `
		SELECT id, email, role, client_id, created_at, updated_at
		FROM users
		WHERE client_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, mapError("list users", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Email, &user.Role, &user.ClientID,
			&user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, mapError("list users", err)
		}
		users = append(users, user)
	}
	return users, mapError("list users", rows.Err())
}
