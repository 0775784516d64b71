package service

import "errors"

var (
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidPlan        = errors.New("invalid pomodoro plan")
	ErrSessionFinished    = errors.New("session already finished")
)
