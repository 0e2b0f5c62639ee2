package models

// AllModels lists every table managed by the migrator, parents first.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Tag{},
		&SearchEngine{},
		&Setting{},
	}
}
