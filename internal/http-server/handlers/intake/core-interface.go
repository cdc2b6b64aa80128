package intake

import "gojobot/entity"

// Core defines the database operations behind the intake listings.
type Core interface {
	ListRegistrations() ([]entity.Registration, error)
	ListTrainings() ([]entity.Training, error)
	ListJobApplications() ([]entity.JobApplication, error)
	GetRegistration(telegramId int64) (*entity.Registration, error)
	GetTraining(telegramId int64) (*entity.Training, error)
	GetJobApplicationsByUser(telegramId int64) ([]entity.JobApplication, error)
	UpdateJobStatus(id, status string) (*entity.JobApplication, error)
}
