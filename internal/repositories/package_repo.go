package repositories

import (
	"context"

	"clientdesk/internal/models"
)

type PackageRepository interface {
	GetByName(ctx context.Context, name string) (*models.ServicePackage, error)
}

type packageRepo struct {
	db Database
}

func NewPackageRepo(db Database) PackageRepository {
	return &packageRepo{db: db}
}

func (r *packageRepo) GetByName(ctx context.Context, name string) (*models.ServicePackage, error) {
	pkg := &models.ServicePackage{}
	query := `
		SELECT id, name, price, active, created_at
		FROM service_packages
		WHERE name = $1 AND active = TRUE
	`
	err := r.db.QueryRow(ctx, query, name).Scan(&pkg.ID, &pkg.Name, &pkg.Price, &pkg.Active, &pkg.CreatedAt)
	if err != nil {
		return nil, mapError("get service package", err)
	}
	return pkg, nil
}
