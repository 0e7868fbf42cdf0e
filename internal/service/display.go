package service

import (
	"github.com/google/uuid"
	"github.com/ventia/ventia-backend/internal/domain"
)

// Display resolution for relation fields interpolated into change-log notes.
// A missing row falls back to the bare identifier instead of failing the
// mutation.

func companyDisplay(repo domain.CompanyRepository, workspaceID, id uuid.UUID) string {
	company, err := repo.GetByID(workspaceID, id)
	if err != nil {
		return id.String()
	}
	return company.Name
}

func userDisplay(repo domain.UserRepository, id uuid.UUID) string {
	user, err := repo.GetByID(id)
	if err != nil {
		return id.String()
	}
	return user.Name
}

func contactDisplay(repo domain.ContactRepository, workspaceID, id uuid.UUID) string {
	contact, err := repo.GetByID(workspaceID, id)
	if err != nil {
		return id.String()
	}
	return contact.FullName()
}
