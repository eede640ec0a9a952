package service

import "errors"

var (
	ErrSurveyNotFound   = errors.New("survey not found")
	ErrResponseNotFound = errors.New("response not found")
	ErrSurveyInactive   = errors.New("survey is not accepting responses")
	ErrInvalidSurvey    = errors.New("invalid survey")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrRateLimited      = errors.New("rate limit exceeded")
)
