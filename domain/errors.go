package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your item already exist")
	// ErrForbidden will throw if the caller has no right for the action
	ErrForbidden = errors.New("you have no permission for this action")
	// ErrPrivatePlan will throw when a hidden trip is requested
	ErrPrivatePlan = errors.New("this is a private plan")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrCacheMiss will throw if the requested key is absent from cache
	ErrCacheMiss = errors.New("cache miss")
)
