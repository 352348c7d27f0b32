package repositories

import (
	"context"

	"clientdesk/internal/models"

	"github.com/google/uuid"
)

type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	GetByEmail(ctx context.Context, email string) (*models.Client, error)
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Client, error)
}

type clientRepo struct {
	db Database
}

func NewClientRepo(db Database) ClientRepository {
	return &clientRepo{db: db}
}

func (r *clientRepo) Create(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (id, primary_contact, email, company_name, phone, status, brand_colors, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, client.ID, client.PrimaryContact, client.Email,
		client.CompanyName, client.Phone, client.Status, client.BrandColors, client.Notes)
	return mapError("create client", err)
}

func (r *clientRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	client := &models.Client{}
	query := `
		SELECT id, primary_contact, email, company_name, phone, status, brand_colors, notes, created_at, updated_at
		FROM clients
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&client.ID, &client.PrimaryContact, &client.Email,
		&client.CompanyName, &client.Phone, &client.Status, &client.BrandColors, &client.Notes,
		&client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		return nil, mapError("get client", err)
	}
	return client, nil
}

func (r *clientRepo) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	client := &models.Client{}
	query := `
		SELECT id, primary_contact, email, company_name, phone, status, brand_colors, notes, created_at, updated_at
		FROM clients
		WHERE email = $1
	`
	err := r.db.QueryRow(ctx, query, email).Scan(&client.ID, &client.PrimaryContact, &client.Email,
		&client.CompanyName, &client.Phone, &client.Status, &client.BrandColors, &client.Notes,
		&client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		return nil, mapError("get client by email", err)
	}
	return client, nil
}

func (r *clientRepo) Update(ctx context.Context, client *models.Client) error {
	query := `
		UPDATE clients
		SET primary_contact = $1, email = $2, company_name = $3, phone = $4, status = $5, brand_colors = $6, notes = $7, updated_at = NOW()
		WHERE id = $8
	`
	tag, err := r.db.Exec(ctx, query, client.PrimaryContact, client.Email, client.CompanyName,
		client.Phone, client.Status, client.BrandColors, client.Notes, client.ID)
	if err != nil {
		return mapError("update client", err)
	}
	if tag.RowsAffected() == 0 {
		return mapError("update client", errNoRowsAffected)
	}
	return nil
}

func (r *clientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return mapError("delete client", err)
	}
	if tag.RowsAffected() == 0 {
		return mapError("delete client", errNoRowsAffected)
	}
	return nil
}

func (r *clientRepo) List(ctx context.Context, limit, offset int) ([]*models.Client, error) {
	query := `
		SELECT id, primary_contact, email, company_name, phone, status, brand_colors, notes, created_at, updated_at
		FROM clients
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, mapError("list clients", err)
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		client := &models.Client{}
		if err := rows.Scan(&client.ID, &client.PrimaryContact, &client.Email, &client.CompanyName,
			&client.Phone, &client.Status, &client.BrandColors, &client.Notes,
			&client.CreatedAt, &client.UpdatedAt); err != nil {
			return nil, mapError("list clients", err)
		}
		clients = append(clients, client)
	}
	return clients, mapError("list clients", rows.Err())
}
