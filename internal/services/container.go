package services

import (
	"task-tracker/internal/datetime"
	"task-tracker/internal/repository"
	"task-tracker/internal/validation"
)

// NewServiceContainer wires every service to one repository and parser.
func NewServiceContainer(repo repository.Repository, parser *datetime.Parser, taskValidator *validation.TaskValidator) *ServiceContainer {
	return &ServiceContainer{
		TaskService:       NewTaskService(repo, parser, taskValidator),
		ScheduleService:   NewScheduleService(repo, parser),
		SuggestionService: NewSuggestionService(repo, parser),
	}
}
