package repositories

import (
	"context"

	"clientdesk/internal/models"

	"github.com/google/uuid"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*models.Project, error)
}

type projectRepo struct {
	db Database
}

func NewProjectRepo(db Database) ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (id, client_id, name, project_type, status, total_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, project.ID, project.ClientID, project.Name,
		project.ProjectType, project.Status, project.TotalValue)
	return mapError("create project", err)
}

func (r *projectRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project := &models.Project{}
	query := `
		SELECT id, client_id, name, project_type, status, total_value, created_at, updated_at
		FROM projects
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&project.ID, &project.ClientID, &project.Name,
		&project.ProjectType, &project.Status, &project.TotalValue, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return nil, mapError("get project", err)
	}
	return project, nil
}

func (r *projectRepo) Update(ctx context.Context, project *models.Project) error {
	query := `
		UPDATE projects
		SET name = $1, project_type = $2, status = $3, total_value = $4, updated_at = NOW()
		WHERE id = $5
	`
	tag, err := r.db.Exec(ctx, query, project.Name, project.ProjectType, project.Status,
		project.TotalValue, project.ID)
	if err != nil {
		return mapError("update project", err)
	}
	if tag.RowsAffected() == 0 {
		return mapError("update project", errNoRowsAffected)
	}
	return nil
}

func (r *projectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return mapError("delete project", err)
	}
	if tag.RowsAffected() == 0 {
		return mapError("delete project", errNoRowsAffected)
	}
	return nil
}

func (r *projectRepo) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*models.Project, error) {
	query := `
		SELECT id, client_id, name, project_type, status, total_value, created_at, updated_at
		FROM projects
		WHERE client_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, clientID, limit, offset)
	if err != nil {
		return nil, mapError("list projects", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project := &models.Project{}
		if err := rows.Scan(&project.ID, &project.ClientID, &project.Name, &project.ProjectType,
			&project.Status, &project.TotalValue, &project.CreatedAt, &project.UpdatedAt); err != nil {
			return nil, mapError("list projects", err)
		}
		projects = append(projects, project)
	}
	return projects, mapError("list projects", rows.Err())
}
