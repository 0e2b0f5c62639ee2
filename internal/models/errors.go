package models

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrTagNotFound          = errors.New("tag not found")
	ErrSearchEngineNotFound = errors.New("search engine not found")
	ErrSettingKeyRequired   = errors.New("setting key is required")
)
