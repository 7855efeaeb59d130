package repository

import "gorm.io/gorm"

// New builds every repository on db.
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(db),
		Projects: NewProjectRepository(db),
		Tasks:    NewTaskRepository(db),
		Tickets:  NewTicketRepository(db),
		Logworks: NewLogworkRepository(db),
	}
}
